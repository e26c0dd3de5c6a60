package entities

import (
	"github.com/google/uuid"
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newID fills an empty primary key before insert; the SQLite test store has
// no uuid_generate_v4() default to fall back on.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
