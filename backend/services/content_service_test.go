package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func sampleContent() *fakeContentRepo {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeContentRepo{}
	for i, title := range []string{"Knife Skills", "Mother Sauces", "Braising"} {
		t := models.Tutorial{Title: title, Level: models.LevelBeginner, DifficultyWeight: i + 1, Category: models.CategoryPractical}
		t.ID = uuid.New()
		t.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		repo.tutorials = append(repo.tutorials, t)
	}
	repo.tutorials[2].Level = models.LevelIntermediate
	repo.tutorials[1].Category = models.CategoryTheoretical

	for _, title := range []string{"Why Salt Works", "Cast Iron Care"} {
		a := models.Article{Title: title, Level: models.LevelBeginner, DifficultyWeight: 2}
		a.ID = uuid.New()
		repo.articles = append(repo.articles, a)
	}
	return repo
}

func defaultParams() ListParams {
	return ListParams{Sort: repository.SortDifficultyAsc, Page: 1, Limit: 20, IncludeCompleted: true}
}

func TestContentListMarksViewerCompletions(t *testing.T) {
	content := sampleContent()
	completions := newFakeCompletionRepo()
	svc := NewContentService(content, completions, utils.NewNopLogger())

	viewer := uuid.New()
	_, _, err := completions.InsertIfAbsent(context.Background(), viewer, content.tutorials[0].ID, models.KindTutorial)
	require.NoError(t, err)

	got, err := svc.List(context.Background(), models.KindTutorial, defaultParams(), &viewer)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.True(t, got.Items[0].Completed)
	assert.False(t, got.Items[1].Completed)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 20, TotalItems: 3, TotalPages: 1}, got.Pagination)

	anon, err := svc.List(context.Background(), models.KindTutorial, defaultParams(), nil)
	require.NoError(t, err)
	for _, item := range anon.Items {
		assert.False(t, item.Completed)
	}

	p := defaultParams()
	p.IncludeCompleted = false
	off, err := svc.List(context.Background(), models.KindTutorial, p, &viewer)
	require.NoError(t, err)
	assert.False(t, off.Items[0].Completed)
}

func TestContentListDegradesWhenEnrichmentFails(t *testing.T) {
	completions := newFakeCompletionRepo()
	completions.lookupErr = errors.New("connection reset")
	svc := NewContentService(sampleContent(), completions, utils.NewNopLogger())

	viewer := uuid.New()
	got, err := svc.List(context.Background(), models.KindArticle, defaultParams(), &viewer)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, item := range got.Items {
		assert.False(t, item.Completed)
		assert.Equal(t, models.KindArticle, item.Kind)
	}
}

func TestContentListPrimaryFailure(t *testing.T) {
	content := sampleContent()
	content.err = errors.New("db down")
	svc := NewContentService(content, newFakeCompletionRepo(), utils.NewNopLogger())

	got, err := svc.List(context.Background(), models.KindTutorial, defaultParams(), nil)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestContentListPagination(t *testing.T) {
	svc := NewContentService(sampleContent(), newFakeCompletionRepo(), utils.NewNopLogger())

	p := defaultParams()
	p.Limit = 2
	p.Page = 2
	got, err := svc.List(context.Background(), models.KindTutorial, p, nil)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Pagination.TotalPages)
	assert.EqualValues(t, 3, got.Pagination.TotalItems)

	p.Page = 5
	got, err = svc.List(context.Background(), models.KindTutorial, p, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.NotNil(t, got.Items)
}

func TestContentGet(t *testing.T) {
	content := sampleContent()
	content.tutorials[0].Steps = []models.TutorialStep{{StepOrder: 1, Title: "Grip"}, {StepOrder: 2, Title: "Claw"}}
	completions := newFakeCompletionRepo()
	svc := NewContentService(content, completions, utils.NewNopLogger())

	viewer := uuid.New()
	id := content.tutorials[0].ID
	row, _, err := completions.InsertIfAbsent(context.Background(), viewer, id, models.KindTutorial)
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), models.KindTutorial, id, &viewer)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Len(t, detail.Steps, 2)
	assert.True(t, detail.Completed)
	require.NotNil(t, detail.CompletedAt)
	assert.Equal(t, row.CompletedAt, *detail.CompletedAt)

	missing, err := svc.Get(context.Background(), models.KindArticle, id, &viewer)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentListAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := NewContentService(sampleContent(), newFakeCompletionRepo(), utils.NewNopLogger())

	p := defaultParams()
	practical := models.CategoryPractical
	p.Category = &practical
	got, err := svc.ListAll(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Len(t, got.Tutorials.Items, 2)
	assert.Len(t, got.Articles.Items, 2, "category only narrows tutorials")
}

func TestContentListAllFailsFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	content := sampleContent()
	content.err = errors.New("tutorials unavailable")
	svc := NewContentService(content, newFakeCompletionRepo(), utils.NewNopLogger())

	got, err := svc.ListAll(context.Background(), defaultParams(), nil)
	assert.EqualError(t, err, "tutorials unavailable")
	assert.Nil(t, got)
}
