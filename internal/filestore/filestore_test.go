package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.Repository = (*Repository)(nil)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "resumes"))
	require.NoError(t, err)
	return repo
}

func TestRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	doc := resume.NewDocument("r1")
	doc.Profile.FirstName = "Ada"
	doc.Education.Items = append(doc.Education.Items, &resume.EducationEntry{
		ID: "a", Enable: true, Name: "Harvard", Major: "CS", Start: "March 2018",
	})
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.Load(ctx, "r1")
	require.NoError(t, err)
	if diff := cmp.Diff(doc, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(filepath.Join(repo.Dir(), "r1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerms), info.Mode().Perm())
}

func TestRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	doc := resume.NewDocument("r1")
	require.NoError(t, repo.Save(ctx, doc))

	next := *doc
	next.Education = &resume.Section[resume.EducationEntry]{Enable: false, Heading: "Studies", Items: []*resume.EducationEntry{}}
	require.NoError(t, repo.Save(ctx, &next))

	loaded, err := repo.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Studies", loaded.Education.Heading)
	assert.False(t, loaded.Education.Enable)

	// no temp files left behind
	entries, err := os.ReadDir(repo.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRepository_LoadMissing(t *testing.T) {
	doc, err := newTestRepo(t).Load(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestRepository_LoadRejectsInvalidDocument(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(repo.Dir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"education": {"enable": true}}`), 0644))

	_, err := repo.Load(context.Background(), "bad")
	require.Error(t, err)

	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRepository_LoadUsesFileNameAsID(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(repo.Dir(), "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "other", "education": {"enable": true, "heading": "", "items": []}}`), 0644))

	doc, err := repo.Load(context.Background(), "mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", doc.ID)
}

func TestRepository_InvalidIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, id := range []string{"", ".", "..", "../escape", `a\b`} {
		_, err := repo.Load(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
		assert.ErrorIs(t, repo.Save(ctx, resume.NewDocument(id)), ErrInvalidID, "id %q", id)
	}
	assert.Error(t, repo.Save(ctx, nil))
}

func TestRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Save(ctx, resume.NewDocument(id)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "notes.txt"), []byte("x"), 0644))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "b"))

	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestRepository_WithStore(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	s := store.New(resume.NewDocument("r1"), store.WithRepository(repo))

	require.NoError(t, store.SetField(ctx, s, "education.heading", "Academics"))

	loaded, err := repo.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Academics", loaded.Education.Heading)
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
