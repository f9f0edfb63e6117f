package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topic-board/models"
)

func newFileRepo(t *testing.T) TopicRepository {
	t.Helper()
	repo, err := NewFileTopicRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestFileCreateAndGetRoundTrip(t *testing.T) {
	repo := newFileRepo(t)

	id, err := repo.CreateTopic("Hello World", "Some **markdown** body.\n\nA second paragraph.")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Contains(t, id, "hello-world")

	topic, err := repo.GetTopic(id)
	require.NoError(t, err)
	assert.Equal(t, id, topic.ID)
	assert.Equal(t, "Hello World", topic.Title)
	assert.Equal(t, "Some **markdown** body.\n\nA second paragraph.", topic.Body)
}

func TestFileCreateRejectsEmptyInput(t *testing.T) {
	repo := newFileRepo(t)

	_, err := repo.CreateTopic("", "body")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = repo.CreateTopic("title", "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestFileCreateLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileTopicRepository(dir)
	require.NoError(t, err)

	_, err = repo.CreateTopic("Hello", "world")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestFileListTopics(t *testing.T) {
	repo := newFileRepo(t)

	topics, err := repo.ListTopics(0)
	require.NoError(t, err)
	assert.Empty(t, topics)

	_, err = repo.CreateTopic("First Topic", "body one")
	require.NoError(t, err)
	_, err = repo.CreateTopic("Second Topic", "body two")
	require.NoError(t, err)

	topics, err = repo.ListTopics(0)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	titles := []string{topics[0].Title, topics[1].Title}
	assert.Contains(t, titles, "First Topic")
	assert.Contains(t, titles, "Second Topic")

	limited, err := repo.ListTopics(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFileGetTopicInvalidID(t *testing.T) {
	repo := newFileRepo(t)

	for _, id := range []string{"../etc/passwd", "a/b", "a b", "", "a.md"} {
		_, err := repo.GetTopic(id)
		assert.ErrorIs(t, err, models.ErrInvalidID, "id %q", id)
	}
}

func TestFileGetTopicNotFound(t *testing.T) {
	repo := newFileRepo(t)

	_, err := repo.GetTopic("20240101_000000_missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileDeleteTopic(t *testing.T) {
	repo := newFileRepo(t)

	id, err := repo.CreateTopic("Doomed", "short-lived body")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTopic(id))

	_, err = repo.GetTopic(id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.DeleteTopic(id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileRandomTopicID(t *testing.T) {
	repo := newFileRepo(t)

	_, ok, err := repo.RandomTopicID()
	require.NoError(t, err)
	assert.False(t, ok)

	only, err := repo.CreateTopic("Only One", "single body")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		id, ok, err := repo.RandomTopicID()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, only, id)
	}
}

func TestFileRandomTopicIDBalance(t *testing.T) {
	repo := newFileRepo(t)

	first, err := repo.CreateTopic("Topic A", "body a")
	require.NoError(t, err)
	second, err := repo.CreateTopic("Topic B", "body b")
	require.NoError(t, err)

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		id, ok, err := repo.RandomTopicID()
		require.NoError(t, err)
		require.True(t, ok)
		counts[id]++
	}

	// Roughly balanced, not exact: each side should land well clear of
	// never/always.
	assert.Greater(t, counts[first], 300)
	assert.Greater(t, counts[second], 300)
}

func TestFileSearch(t *testing.T) {
	repo := newFileRepo(t)

	withToken, err := repo.CreateTopic("Interesting", "this body mentions unique-token somewhere")
	require.NoError(t, err)
	_, err = repo.CreateTopic("Boring", "nothing to see here")
	require.NoError(t, err)

	results, err := repo.Search("UNIQUE-TOKEN", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, withToken, results[0].ID)
	assert.Equal(t, "Interesting", results[0].Title)

	results, err = repo.Search("absent-token", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFileSearchLimit(t *testing.T) {
	repo := newFileRepo(t)

	// Distinct titles so filenames never collide within one second.
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := repo.CreateTopic(title, "shared-token body")
		require.NoError(t, err)
	}

	results, err := repo.Search("shared-token", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFileSlugFallbackFilename(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileTopicRepository(dir)
	require.NoError(t, err)

	id, err := repo.CreateTopic("!!!", "punctuation-only title")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "_topic"), "id %q should end in the fallback slug", id)

	_, err = os.Stat(filepath.Join(dir, id+".md"))
	assert.NoError(t, err)
}
