package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"cookmastery/backend/database"
	"cookmastery/backend/models"
	"cookmastery/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
tutorials:
  - title: Knife Skills
    level: BEGINNER
    difficulty_weight: 1
    category: PRACTICAL
    summary: Hold and use a chef's knife.
    steps:
      - title: Grip
        content: Pinch the blade.
      - title: Claw
        content: Tuck your fingertips.
articles:
  - title: Why Salt Works
    level: BEGINNER
    difficulty_weight: 2
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSeedIsRepeatable(t *testing.T) {
	db := testutil.DB(t)

	f, err := database.LoadSeedFile(writeSeed(t, seedYAML))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		res, err := database.Seed(db, f)
		require.NoError(t, err)
		assert.Equal(t, database.SeedResult{Tutorials: 1, Articles: 1}, res)
	}

	var tutorials, articles, steps int64
	require.NoError(t, db.Model(&models.Tutorial{}).Count(&tutorials).Error)
	require.NoError(t, db.Model(&models.Article{}).Count(&articles).Error)
	require.NoError(t, db.Model(&models.TutorialStep{}).Count(&steps).Error)
	assert.EqualValues(t, 1, tutorials)
	assert.EqualValues(t, 1, articles)
	assert.EqualValues(t, 2, steps)

	var got []models.TutorialStep
	require.NoError(t, db.Order("step_order").Find(&got).Error)
	assert.Equal(t, []int{1, 2}, []int{got[0].StepOrder, got[1].StepOrder})
	assert.Equal(t, "Grip", got[0].Title)
}

func TestLoadSeedFileRejectsBadItems(t *testing.T) {
	for name, body := range map[string]string{
		"weight":   "articles:\n  - title: A\n    level: BEGINNER\n    difficulty_weight: 9\n",
		"level":    "articles:\n  - title: A\n    level: MASTER\n    difficulty_weight: 1\n",
		"category": "tutorials:\n  - title: T\n    level: BEGINNER\n    difficulty_weight: 1\n    category: FUN\n",
		"yaml":     "tutorials: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := database.LoadSeedFile(writeSeed(t, body))
			assert.Error(t, err)
		})
	}
}
