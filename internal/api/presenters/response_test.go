package presenters

import (
	"errors"
	"foodgram/domain"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrInvalidCookingTime, fiber.StatusBadRequest},
		{"conflict", domain.ErrAlreadyFavorited, fiber.StatusBadRequest},
		{"not found", domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{"permission", domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
		{"unauthorized", domain.ErrTokenInvalid, fiber.StatusUnauthorized},
		{"wrapped", errors.Join(errors.New("ctx"), domain.ErrTagNotFound), fiber.StatusNotFound},
		{"internal", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}
