package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:200;not null" json:"name"`
	Color string    `gorm:"size:7" json:"color"`
	Slug  string    `gorm:"size:200;uniqueIndex:idx_tags_slug;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	newID(&t.ID)
	return nil
}
