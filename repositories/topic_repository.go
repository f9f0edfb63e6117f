package repositories

import (
	"topic-board/models"
)

// TopicRepository is the storage contract for topics. Two interchangeable
// implementations exist: a directory of markdown files and a relational
// table. The backend is chosen at construction time; callers never branch
// on which one they got.
//
// IDs are opaque strings at this seam. The file backend derives them from
// filenames, the relational backend formats its integer primary key.
type TopicRepository interface {
	// ListTopics returns id/title summaries, newest-first where timestamps
	// exist. limit <= 0 means no limit. An empty store yields an empty slice.
	ListTopics(limit int) ([]models.TopicSummary, error)

	// GetTopic returns the full record. models.ErrNotFound when no topic
	// matches, models.ErrInvalidID when the id fails the backend's syntax
	// check.
	GetTopic(id string) (*models.TopicDetail, error)

	// CreateTopic stores a new topic atomically and returns its id.
	// models.ErrInvalidInput when title or body is empty.
	CreateTopic(title, body string) (string, error)

	// DeleteTopic removes the record. models.ErrNotFound when nothing
	// matched; storage failures surface as models.ErrStorageUnavailable.
	DeleteTopic(id string) error

	// RandomTopicID picks one id with uniform probability over all current
	// topics. ok is false when the store is empty.
	RandomTopicID() (id string, ok bool, err error)

	// Search matches query case-insensitively against title and body and
	// returns at most limit summaries (default 50 when limit <= 0).
	Search(query string, limit int) ([]models.TopicSummary, error)
}

const defaultSearchLimit = 50
