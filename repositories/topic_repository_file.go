package repositories

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"topic-board/helper"
	"topic-board/models"
)

// safeIDPattern restricts ids to the character class filenames are built
// from. Anything else is rejected before it can reach the filesystem.
var safeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type fileTopicRepository struct {
	dir string
}

// NewFileTopicRepository stores one markdown file per topic under dir:
// first line is the title, the remainder is the body. The directory is
// created if missing.
func NewFileTopicRepository(dir string) (TopicRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	return &fileTopicRepository{dir: dir}, nil
}

func (r *fileTopicRepository) ListTopics(limit int) ([]models.TopicSummary, error) {
	files, err := r.topicFiles()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	out := make([]models.TopicSummary, 0, len(files))
	for _, name := range files {
		title, _, _ := r.readTopicFile(name)
		out = append(out, models.TopicSummary{
			ID:    strings.TrimSuffix(name, ".md"),
			Title: title,
		})
	}
	return out, nil
}

func (r *fileTopicRepository) GetTopic(id string) (*models.TopicDetail, error) {
	if !safeIDPattern.MatchString(id) {
		return nil, fmt.Errorf("topic id %q: %w", id, models.ErrInvalidID)
	}
	title, body, err := r.readTopicFile(id + ".md")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("topic %q: %w", id, models.ErrNotFound)
		}
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	return &models.TopicDetail{ID: id, Title: title, Body: body}, nil
}

func (r *fileTopicRepository) CreateTopic(title, body string) (string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", fmt.Errorf("title and body are required: %w", models.ErrInvalidInput)
	}

	slug := helper.Slugify(title)
	stamp := time.Now().UTC().Format("20060102_150405")
	dest := filepath.Join(r.dir, fmt.Sprintf("%s_%s.md", stamp, slug))

	// Write to a temp file in the same directory, then rename: readers
	// never observe a half-written topic.
	tmp := filepath.Join(r.dir, "topic_"+uuid.NewString()+".tmp")
	content := title + "\n" + body + "\n"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		r.cleanupTemp(tmp)
		return "", errors.Join(models.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		r.cleanupTemp(tmp)
		return "", errors.Join(models.ErrStorageUnavailable, err)
	}
	return strings.TrimSuffix(filepath.Base(dest), ".md"), nil
}

func (r *fileTopicRepository) DeleteTopic(id string) error {
	if !safeIDPattern.MatchString(id) {
		return fmt.Errorf("topic id %q: %w", id, models.ErrInvalidID)
	}
	err := os.Remove(filepath.Join(r.dir, id+".md"))
	if os.IsNotExist(err) {
		return fmt.Errorf("topic %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return errors.Join(models.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *fileTopicRepository) RandomTopicID() (string, bool, error) {
	files, err := r.topicFiles()
	if err != nil {
		return "", false, err
	}
	if len(files) == 0 {
		return "", false, nil
	}
	name := files[rand.Intn(len(files))]
	return strings.TrimSuffix(name, ".md"), true, nil
}

func (r *fileTopicRepository) Search(query string, limit int) ([]models.TopicSummary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	files, err := r.topicFiles()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := []models.TopicSummary{}
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(string(raw)), q) {
			continue
		}
		title, _, _ := strings.Cut(string(raw), "\n")
		out = append(out, models.TopicSummary{
			ID:    strings.TrimSuffix(name, ".md"),
			Title: strings.TrimSpace(title),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// topicFiles returns the *.md filenames in stable lexical order. Timestamp
// prefixes make that chronological as well.
func (r *fileTopicRepository) topicFiles() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}
	files := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func (r *fileTopicRepository) readTopicFile(name string) (title, body string, err error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return "", "", err
	}
	first, rest, _ := strings.Cut(string(raw), "\n")
	return strings.TrimSpace(first), strings.Trim(rest, "\n"), nil
}

// cleanupTemp removes a leftover temp file from an aborted create. Failure
// to clean up is logged, not escalated.
func (r *fileTopicRepository) cleanupTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove temp topic file")
	}
}
