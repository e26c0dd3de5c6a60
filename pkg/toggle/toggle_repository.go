package toggle

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ToggleRepository interface {
		Exists(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (bool, error)
		Create(ctx context.Context, kind Kind, userID, targetID uuid.UUID) error
		Delete(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (int64, error)
		TargetIDs(ctx context.Context, kind Kind, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	toggleRepository struct {
		db *gorm.DB
	}
)

func NewToggleRepository(db *gorm.DB) ToggleRepository {
	return &toggleRepository{db: db}
}

func (r *toggleRepository) scope(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (*gorm.DB, relation, error) {
	rel, ok := lookup(kind)
	if !ok {
		return nil, relation{}, fmt.Errorf("unknown relation kind %d", kind)
	}
	query := r.db.WithContext(ctx).
		Model(rel.newRow(uuid.Nil, uuid.Nil)).
		Where("user_id = ? AND "+rel.targetColumn+" = ?", userID, targetID)
	return query, rel, nil
}

func (r *toggleRepository) Exists(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (bool, error) {
	query, _, err := r.scope(ctx, kind, userID, targetID)
	if err != nil {
		return false, err
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *toggleRepository) Create(ctx context.Context, kind Kind, userID, targetID uuid.UUID) error {
	rel, ok := lookup(kind)
	if !ok {
		return fmt.Errorf("unknown relation kind %d", kind)
	}
	return r.db.WithContext(ctx).Create(rel.newRow(userID, targetID)).Error
}

func (r *toggleRepository) Delete(ctx context.Context, kind Kind, userID, targetID uuid.UUID) (int64, error) {
	rel, ok := lookup(kind)
	if !ok {
		return 0, fmt.Errorf("unknown relation kind %d", kind)
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+rel.targetColumn+" = ?", userID, targetID).
		Delete(rel.newRow(uuid.Nil, uuid.Nil))
	return res.RowsAffected, res.Error
}

// TargetIDs reports which of targetIDs the user is related to.
func (r *toggleRepository) TargetIDs(ctx context.Context, kind Kind, userID uuid.UUID, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	rel, ok := lookup(kind)
	if !ok {
		return nil, fmt.Errorf("unknown relation kind %d", kind)
	}

	result := make(map[uuid.UUID]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(rel.newRow(uuid.Nil, uuid.Nil)).
		Where("user_id = ? AND "+rel.targetColumn+" IN ?", userID, targetIDs).
		Pluck(rel.targetColumn, &found).Error; err != nil {
		return nil, err
	}

	for _, id := range found {
		result[id] = true
	}
	return result, nil
}
