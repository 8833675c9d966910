package repository

import (
	"context"
	"sync"
	"testing"

	"cookmastery/backend/models"
	"cookmastery/backend/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRepoInsertIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCompletionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user, _ := testutil.CreateUser(t, db, "alice")
	tut := testutil.CreateTutorial(t, db, "Roux")

	first, created, err := repo.InsertIfAbsent(ctx, user.ID, tut.ID, models.KindTutorial)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.InsertIfAbsent(ctx, user.ID, tut.ID, models.KindTutorial)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, first.CompletedAt.Equal(second.CompletedAt))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Completion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompletionRepoConcurrentInsertsKeepOneRow(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCompletionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user, _ := testutil.CreateUser(t, db, "bob")
	art := testutil.CreateArticle(t, db, "Knives", models.LevelBeginner, 1, testutil.Epoch)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		stamps  []models.Completion
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row, ok, err := repo.InsertIfAbsent(ctx, user.ID, art.ID, models.KindArticle)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				created++
			}
			if row != nil {
				stamps = append(stamps, *row)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	require.Len(t, stamps, n)
	for _, s := range stamps[1:] {
		assert.True(t, stamps[0].CompletedAt.Equal(s.CompletedAt))
	}
	var count int64
	require.NoError(t, db.Model(&models.Completion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompletionRepoCompletedAtIsUserScoped(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCompletionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	alice, _ := testutil.CreateUser(t, db, "alice")
	bob, _ := testutil.CreateUser(t, db, "bob")
	a := testutil.CreateTutorial(t, db, "A")
	b := testutil.CreateTutorial(t, db, "B")
	testutil.Complete(t, db, alice.ID, a.ID, models.KindTutorial)
	testutil.Complete(t, db, bob.ID, b.ID, models.KindTutorial)

	got, err := repo.CompletedAt(ctx, alice.ID, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, a.ID)

	empty, err := repo.CompletedAt(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
