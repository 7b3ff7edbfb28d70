package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/dbx"
	"github.com/inventa-labs/inventa/internal/server/models"
	"github.com/inventa-labs/inventa/internal/server/repositories/documents"
	"github.com/inventa-labs/inventa/internal/server/repositories/logins"
	"github.com/inventa-labs/inventa/internal/server/repositories/users"
	"github.com/inventa-labs/inventa/internal/server/secrets"
)

// --- in-memory fakes used across service tests ---

// fakeRepoManager hands out the same in-memory fakes regardless of the
// database handle it is given.
type fakeRepoManager struct {
	users   *fakeUsersRepo
	docs    *fakeDocsRepo
	logins  *fakeLoginsRepo
	secrets *secrets.MemoryStore
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newFakeUsersRepo(),
		docs:    newFakeDocsRepo(),
		logins:  &fakeLoginsRepo{},
		secrets: secrets.NewMemoryStore(),
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository         { return f.users }
func (f *fakeRepoManager) Documents(dbx.DBTX) documents.Repository { return f.docs }
func (f *fakeRepoManager) Logins(dbx.DBTX) logins.Repository       { return f.logins }
func (f *fakeRepoManager) Secrets(dbx.DBTX) secrets.Store          { return f.secrets }

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeDocsRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.Document
	byHash map[string]*models.Document
}

func newFakeDocsRepo() *fakeDocsRepo {
	return &fakeDocsRepo{
		byID:   make(map[string]*models.Document),
		byHash: make(map[string]*models.Document),
	}
}

func (f *fakeDocsRepo) InsertIfAbsent(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byHash[doc.ContentHash]; ok {
		return &common.DuplicateContentError{
			ExistingID:   existing.ID,
			OwnerID:      existing.OwnerID,
			RegisteredAt: existing.CreatedAt,
		}
	}
	f.byID[doc.ID] = doc
	f.byHash[doc.ContentHash] = doc
	return nil
}

func (f *fakeDocsRepo) GetByID(_ context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.byID[id]; ok {
		return d, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeDocsRepo) GetByHash(_ context.Context, hash string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.byHash[hash]; ok {
		return d, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeDocsRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Document
	for _, d := range f.byID {
		if d.OwnerID == ownerID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt > result[j].CreatedAt })
	return result, nil
}

func (f *fakeDocsRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

type fakeLoginsRepo struct {
	mu     sync.Mutex
	events []*models.LoginEvent
}

func (f *fakeLoginsRepo) Record(_ context.Context, e *models.LoginEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeLoginsRepo) List(_ context.Context, limit int) ([]*models.LoginEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.events) {
		limit = len(f.events)
	}
	out := make([]*models.LoginEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = f.events[len(f.events)-1-i]
	}
	return out, nil
}

func (f *fakeLoginsRepo) Counts(_ context.Context) (total, succeeded, failed int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		total++
		if e.Status == "success" {
			succeeded++
		} else {
			failed++
		}
	}
	return total, succeeded, failed, nil
}
