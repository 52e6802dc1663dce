package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oaktires/accounts-api/config"
	"github.com/oaktires/accounts-api/internal/auth"
	"github.com/oaktires/accounts-api/internal/handlers"
	"github.com/oaktires/accounts-api/internal/notify"
	"github.com/oaktires/accounts-api/internal/services"
	"github.com/oaktires/accounts-api/internal/store"
	"github.com/oaktires/accounts-api/types"
	"github.com/stretchr/testify/require"
)

// memUserRepo backs handler tests without a database. It enforces the
// same uniqueness rules as the users table.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]types.User{}}
}

func (r *memUserRepo) List(ctx context.Context) ([]types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]types.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	current := r.users[user.ID]
	user.PasswordHash = current.PasswordHash
	user.CreatedAt = current.CreatedAt
	user.LastLoginAt = current.LastLoginAt
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.LastLoginAt = &at
	r.users[id] = user
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type testEnv struct {
	router *chi.Mux
	repo   *memUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := auth.NewTokenIssuer(config.JWTConfig{
		Key:           "handler-test-key",
		Issuer:        "accounts-api-test",
		Audience:      "accounts-api-clients",
		ExpireMinutes: 15,
	})
	require.NoError(t, err)

	repo := newMemUserRepo()
	userService := services.NewUserService(repo)
	authService := services.NewAuthService(repo, auth.NewBcryptHasher(), issuer, notify.NewNotifier(nil))

	router := chi.NewRouter()
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, userService, issuer)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, handlers.RequireAuth(issuer))
	})

	return &testEnv{router: router, repo: repo}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) userID(t *testing.T, username string) string {
	t.Helper()
	user, err := e.repo.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return user.ID
}
