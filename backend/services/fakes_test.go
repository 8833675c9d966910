package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"

	"github.com/google/uuid"
)

type fakeContentRepo struct {
	tutorials []models.Tutorial
	articles  []models.Article
	err       error
	delay     time.Duration
}

func (f *fakeContentRepo) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeContentRepo) ListTutorials(ctx context.Context, q repository.ContentQuery) ([]models.Tutorial, int64, error) {
	if err := f.wait(ctx); err != nil {
		return nil, 0, err
	}
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []models.Tutorial
	for _, t := range f.tutorials {
		if q.Level != nil && t.Level != *q.Level {
			continue
		}
		if q.Category != nil && t.Category != *q.Category {
			continue
		}
		out = append(out, t)
	}
	return page(out, q.Page, q.Limit), int64(len(out)), nil
}

func (f *fakeContentRepo) ListArticles(ctx context.Context, q repository.ContentQuery) ([]models.Article, int64, error) {
	if err := f.wait(ctx); err != nil {
		return nil, 0, err
	}
	var out []models.Article
	for _, a := range f.articles {
		if q.Level != nil && a.Level != *q.Level {
			continue
		}
		out = append(out, a)
	}
	return page(out, q.Page, q.Limit), int64(len(out)), nil
}

func (f *fakeContentRepo) GetTutorial(_ context.Context, id uuid.UUID) (*models.Tutorial, error) {
	for _, t := range f.tutorials {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, f.err
}

func (f *fakeContentRepo) GetArticle(_ context.Context, id uuid.UUID) (*models.Article, error) {
	for _, a := range f.articles {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, f.err
}

func (f *fakeContentRepo) Exists(ctx context.Context, kind models.ContentKind, id uuid.UUID) (bool, error) {
	switch kind {
	case models.KindTutorial:
		t, err := f.GetTutorial(ctx, id)
		return t != nil, err
	case models.KindArticle:
		a, err := f.GetArticle(ctx, id)
		return a != nil, err
	}
	return false, nil
}

func page[T any](items []T, p, limit int) []T {
	start := models.Offset(p, limit)
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type completionKey struct{ user, content uuid.UUID }

type fakeCompletionRepo struct {
	mu        sync.Mutex
	rows      map[completionKey]models.Completion
	lookupErr error
	now       func() time.Time
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{rows: map[completionKey]models.Completion{}, now: time.Now}
}

func (f *fakeCompletionRepo) InsertIfAbsent(_ context.Context, userID, contentID uuid.UUID, kind models.ContentKind) (*models.Completion, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := completionKey{userID, contentID}
	if row, ok := f.rows[key]; ok {
		return &row, false, nil
	}
	row := models.Completion{ID: uuid.New(), UserID: userID, ContentID: contentID, ContentKind: kind, CompletedAt: f.now().UTC()}
	f.rows[key] = row
	return &row, true, nil
}

func (f *fakeCompletionRepo) CompletedAt(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]time.Time{}
	for _, id := range ids {
		if row, ok := f.rows[completionKey{userID, id}]; ok {
			out[id] = row.CompletedAt
		}
	}
	return out, nil
}

type fakeProgressRepo struct {
	rows []models.LevelCount
	err  error
}

func (f *fakeProgressRepo) LevelCounts(context.Context, uuid.UUID) ([]models.LevelCount, error) {
	return f.rows, f.err
}

type fakeUserRepo struct {
	users     map[string]*models.User
	profiles  map[uuid.UUID]*models.Profile
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, profiles: map[uuid.UUID]*models.Profile{}}
}

func (f *fakeUserRepo) CreateWithProfile(_ context.Context, user *models.User, profile *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uuid.New()
	profile.UserID = user.ID
	f.users[user.Email] = user
	f.profiles[user.ID] = profile
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	return f.profiles[userID], nil
}

func (f *fakeUserRepo) UsernameTaken(_ context.Context, username string, except uuid.UUID) (bool, error) {
	for id, p := range f.profiles {
		if p.Username == username && id != except {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, userID uuid.UUID, patch models.ProfilePatch) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.SelectedLevel != nil {
		p.SelectedLevel = *patch.SelectedLevel
	}
	return p, nil
}

type fakeCookbookRepo struct {
	entries []models.CookbookEntry
}

func (f *fakeCookbookRepo) Create(_ context.Context, e *models.CookbookEntry) error {
	e.ID = uuid.New()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeCookbookRepo) Get(_ context.Context, owner, id uuid.UUID) (*models.CookbookEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == owner {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeCookbookRepo) List(_ context.Context, owner uuid.UUID, q repository.CookbookQuery) ([]models.CookbookEntry, int64, error) {
	var out []models.CookbookEntry
	for _, e := range f.entries {
		if e.UserID == owner {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return page(out, q.Page, q.Limit), int64(len(out)), nil
}

func (f *fakeCookbookRepo) Update(ctx context.Context, owner, id uuid.UUID, patch models.CookbookPatch) (*models.CookbookEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == owner {
			if patch.Title != nil {
				f.entries[i].Title = *patch.Title
			}
			if patch.URL != nil {
				f.entries[i].URL = *patch.URL
			}
			if patch.Notes != nil {
				f.entries[i].Notes = patch.Notes
			}
			return f.Get(ctx, owner, id)
		}
	}
	return nil, nil
}

func (f *fakeCookbookRepo) Delete(_ context.Context, owner, id uuid.UUID) (bool, error) {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == owner {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
