package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"topic-board/helper"
	"topic-board/models"
)

// slugRetries bounds how often a create re-probes after losing a slug race
// to a concurrent insert. The unique constraint on topics.slug is the
// authoritative guard; the probe is a best-effort pre-check.
const slugRetries = 5

type sqlTopicRepository struct {
	db *gorm.DB
}

// NewSQLTopicRepository stores topics in the relational `topics` table
// (sqlite or postgres, whichever the *gorm.DB was opened against).
func NewSQLTopicRepository(db *gorm.DB) TopicRepository {
	return &sqlTopicRepository{db: db}
}

func (r *sqlTopicRepository) ListTopics(limit int) ([]models.TopicSummary, error) {
	query := r.db.Model(&models.Topic{}).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var topics []models.Topic
	if err := query.Find(&topics).Error; err != nil {
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	out := make([]models.TopicSummary, 0, len(topics))
	for _, t := range topics {
		created := t.CreatedAt
		out = append(out, models.TopicSummary{
			ID:        strconv.FormatUint(uint64(t.ID), 10),
			Title:     t.Title,
			CreatedAt: &created,
		})
	}
	return out, nil
}

func (r *sqlTopicRepository) GetTopic(id string) (*models.TopicDetail, error) {
	numericID, err := parseTopicID(id)
	if err != nil {
		return nil, err
	}
	var topic models.Topic
	if err := r.db.First(&topic, numericID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic %q: %w", id, models.ErrNotFound)
		}
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	created, updated := topic.CreatedAt, topic.UpdatedAt
	return &models.TopicDetail{
		ID:        id,
		Slug:      topic.Slug,
		Title:     topic.Title,
		Body:      topic.Body,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}, nil
}

func (r *sqlTopicRepository) CreateTopic(title, body string) (string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", fmt.Errorf("title and body are required: %w", models.ErrInvalidInput)
	}

	base := helper.Slugify(title)
	for attempt := 0; attempt < slugRetries; attempt++ {
		slug, err := r.uniqueSlug(base)
		if err != nil {
			return "", err
		}
		topic := models.Topic{Slug: slug, Title: title, Body: body}
		err = r.db.Create(&topic).Error
		if err == nil {
			return strconv.FormatUint(uint64(topic.ID), 10), nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the slug to a concurrent create between probe and
			// insert; probe again.
			continue
		}
		return "", errors.Join(models.ErrStorageUnavailable, err)
	}
	return "", fmt.Errorf("could not allocate a unique slug for %q", base)
}

func (r *sqlTopicRepository) DeleteTopic(id string) error {
	numericID, err := parseTopicID(id)
	if err != nil {
		return err
	}
	res := r.db.Unscoped().Delete(&models.Topic{}, numericID)
	if res.Error != nil {
		return errors.Join(models.ErrStorageUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("topic %q: %w", id, models.ErrNotFound)
	}
	return nil
}

// SoftDeleteTopic marks the row deleted without removing it. Not part of the
// TopicRepository contract; the default delete path is the hard delete above.
func (r *sqlTopicRepository) SoftDeleteTopic(id string) error {
	numericID, err := parseTopicID(id)
	if err != nil {
		return err
	}
	res := r.db.Delete(&models.Topic{}, numericID)
	if res.Error != nil {
		return errors.Join(models.ErrStorageUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("topic %q: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *sqlTopicRepository) RandomTopicID() (string, bool, error) {
	var topic models.Topic
	err := r.db.Model(&models.Topic{}).Order("RANDOM()").Take(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(models.ErrStorageUnavailable, err)
	}
	return strconv.FormatUint(uint64(topic.ID), 10), true, nil
}

func (r *sqlTopicRepository) Search(query string, limit int) ([]models.TopicSummary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var topics []models.Topic
	err := r.db.Raw(
		`SELECT topics.id, topics.title FROM topics `+
			`JOIN topics_fts ON topics_fts.rowid = topics.id `+
			`WHERE topics_fts MATCH ? AND topics.deleted_at IS NULL LIMIT ?`,
		query, limit,
	).Scan(&topics).Error
	if err != nil {
		// Full-text index missing or query unsupported: degrade to a
		// substring scan instead of failing.
		log.Debug().Err(err).Msg("full-text search unavailable, falling back to LIKE")
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		err = r.db.Model(&models.Topic{}).
			Where(`lower(title) LIKE ? ESCAPE '\' OR lower(body) LIKE ? ESCAPE '\'`, pattern, pattern).
			Limit(limit).
			Find(&topics).Error
		if err != nil {
			return nil, errors.Join(models.ErrStorageUnavailable, err)
		}
	}

	out := make([]models.TopicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, models.TopicSummary{
			ID:    strconv.FormatUint(uint64(t.ID), 10),
			Title: t.Title,
		})
	}
	return out, nil
}

// uniqueSlug probes the table and appends -1, -2, ... until no collision
// remains. The caller still has to handle a duplicate-key error from the
// insert itself.
func (r *sqlTopicRepository) uniqueSlug(base string) (string, error) {
	slug := base
	for i := 1; ; i++ {
		var count int64
		// Unscoped: soft-deleted rows still hold their slug under the
		// unique constraint.
		err := r.db.Unscoped().Model(&models.Topic{}).Where("slug = ?", slug).Count(&count).Error
		if err != nil {
			return "", errors.Join(models.ErrStorageUnavailable, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func parseTopicID(id string) (uint64, error) {
	numericID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("topic id %q: %w", id, models.ErrInvalidID)
	}
	return numericID, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
