package toggle

import (
	"context"
	"foodgram/domain"
	"foodgram/internal/utils"
	"github.com/google/uuid"
)

type (
	ToggleService interface {
		Add(ctx context.Context, kind Kind, userID, targetID string) error
		Remove(ctx context.Context, kind Kind, userID, targetID string) error
		// Related returns the subset of targetIDs the user holds a relation of
		// this kind to. An anonymous user (empty id) has none.
		Related(ctx context.Context, kind Kind, userID string, targetIDs []string) (map[string]bool, error)
	}

	toggleService struct {
		toggleRepository ToggleRepository
	}
)

func NewToggleService(toggleRepository ToggleRepository) ToggleService {
	return &toggleService{toggleRepository: toggleRepository}
}

func parseIDs(userID, targetID string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return userUUID, targetUUID, nil
}

func (s *toggleService) Add(ctx context.Context, kind Kind, userID, targetID string) error {
	userUUID, targetUUID, err := parseIDs(userID, targetID)
	if err != nil {
		return err
	}

	rel, ok := lookup(kind)
	if !ok {
		return domain.NewValidationError("unknown relation")
	}

	exists, err := s.toggleRepository.Exists(ctx, kind, userUUID, targetUUID)
	if err != nil {
		return err
	}
	if exists {
		return rel.errExists
	}

	if err := s.toggleRepository.Create(ctx, kind, userUUID, targetUUID); err != nil {
		// lost a race with a concurrent add of the same pair
		if utils.IsUniqueViolation(err) {
			return rel.errExists
		}
		return err
	}
	return nil
}

func (s *toggleService) Remove(ctx context.Context, kind Kind, userID, targetID string) error {
	userUUID, targetUUID, err := parseIDs(userID, targetID)
	if err != nil {
		return err
	}

	rel, ok := lookup(kind)
	if !ok {
		return domain.NewValidationError("unknown relation")
	}

	deleted, err := s.toggleRepository.Delete(ctx, kind, userUUID, targetUUID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return rel.errMissing
	}
	return nil
}

func (s *toggleService) Related(ctx context.Context, kind Kind, userID string, targetIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(targetIDs))
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(targetIDs))
	for _, id := range targetIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			ids = append(ids, parsed)
		}
	}

	found, err := s.toggleRepository.TargetIDs(ctx, kind, userUUID, ids)
	if err != nil {
		return nil, err
	}
	for id := range found {
		result[id.String()] = true
	}
	return result, nil
}
