package models

import (
	"time"

	"gorm.io/gorm"
)

// Topic is the relational backend's row model. The file backend never touches
// it; both backends speak TopicSummary/TopicDetail at the repository seam.
type Topic struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Title     string         `json:"title" gorm:"not null"`
	Body      string         `json:"body" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TopicSummary is a listing/search row. IDs are strings at the seam: the
// relational backend formats its integer key, the file backend uses the
// filename stem. CreatedAt is nil for backends without timestamps.
type TopicSummary struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type TopicDetail struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug,omitempty"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
