package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"authservice/internal/models"
	"authservice/internal/repository"
	"authservice/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBcryptCost = 4

// fakeUserRepo is an in-memory UserRepository. When failWith is set, every
// call returns it, simulating an unavailable store.
type fakeUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*models.User
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, name, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	u.Name, u.Email = name, email
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestService(repo repository.UserRepository) (AuthService, *token.Codec) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	return NewAuthService(repo, codec, testBcryptCost, zap.NewNop()), codec
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, codec := newTestService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "Secret123", models.RoleEditor)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Secret123", user.PasswordHash)

	tok, loggedIn, err := svc.Login(ctx, "a@x.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Role)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(seededRepo(t))
	ctx := context.Background()

	_, _, errNoUser := svc.Login(ctx, "nobody@x.com", "Secret123")
	_, _, errWrongPassword := svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.Equal(t, errNoUser, errWrongPassword)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(seededRepo(t))

	_, err := svc.Register(context.Background(), "Other", "a@x.com", "Another123", models.RoleUser)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "Secret123", models.ParseRole("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.failWith = errors.New("connection refused")
	svc, _ := newTestService(repo)

	_, _, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	require.Error(t, err)
	// A store outage must not masquerade as a credential failure.
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	svc, _ := newTestService(repo)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "NewSecret456"))

	_, _, err = svc.Login(ctx, "a@x.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "a@x.com", "NewSecret456")
	assert.NoError(t, err)
}

func TestAuthService_DeleteUser(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	svc, _ := newTestService(repo)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID), ErrUserNotFound)

	_, err = svc.Profile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	svc, _ := newTestService(repo)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Alice B", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "b@x.com", updated.Email)

	_, err = svc.UpdateProfile(ctx, user.ID+100, "Ghost", "g@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// seededRepo returns a repo holding one user: a@x.com / Secret123, role user.
func seededRepo(t *testing.T) *fakeUserRepo {
	t.Helper()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "Secret123", models.RoleUser)
	require.NoError(t, err)
	return repo
}
