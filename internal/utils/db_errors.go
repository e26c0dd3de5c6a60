package utils

import (
	"errors"
	"gorm.io/gorm"
	"strings"
)

// IsUniqueViolation reports whether err is a rejected insert or update on a
// unique index, for both the postgres and the sqlite driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
