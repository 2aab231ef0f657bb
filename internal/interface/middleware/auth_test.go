package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourbook/tourbook-api/internal/application"
	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
	"github.com/tourbook/tourbook-api/pkg/response"
)

// userStore is a minimal UserRepository serving only GetByID; the
// middleware never calls anything else.
type userStore struct {
	users map[string]*entity.User
}

func (s *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) Create(context.Context, *entity.User) error { return nil }
func (s *userStore) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *userStore) GetByVerificationToken(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *userStore) GetByResetToken(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *userStore) Update(context.Context, string, repo.UserUpdate) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func authRig(t *testing.T, jwt *helpers.JWTManager, store *userStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(jwt, store), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		response.Success(c, http.StatusOK, "ok", gin.H{"email": id.Email, "role": string(id.Role)})
	})
	return r
}

func doGet(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Message
}

func activeUser() *entity.User {
	return &entity.User{
		ID:     "u-1",
		Email:  "alice@example.com",
		Role:   entity.RoleClient,
		Status: entity.StatusActive,
	}
}

func TestAuth_MissingToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{}})

	for _, header := range []string{"", "token-without-scheme"} {
		w := doGet(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No token provided, authorization denied", envelopeMessage(t, w))
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{}})

	w := doGet(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", envelopeMessage(t, w))
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	issuer := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: -time.Minute}
	tok, _, err := issuer.Generate("u-1", "alice@example.com", "CLIENT")
	require.NoError(t, err)

	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{"u-1": activeUser()}})

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", envelopeMessage(t, w))
}

func TestAuth_UserGone(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	tok, _, err := jwt.Generate("u-1", "alice@example.com", "CLIENT")
	require.NoError(t, err)

	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{}})

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User not found, authorization denied", envelopeMessage(t, w))
}

func TestAuth_SuspendedUser(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	tok, _, err := jwt.Generate("u-1", "alice@example.com", "CLIENT")
	require.NoError(t, err)

	u := activeUser()
	u.Status = entity.StatusSuspended
	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{"u-1": u}})

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Account is suspended or inactive", envelopeMessage(t, w))
}

func TestAuth_ActiveUserPasses(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	tok, _, err := jwt.Generate("u-1", "alice@example.com", "CLIENT")
	require.NoError(t, err)

	r := authRig(t, jwt, &userStore{users: map[string]*entity.User{"u-1": activeUser()}})

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(identityKey, application.Identity{UserID: "u-1", Role: entity.RoleClient})
	}, RequireRole(entity.RoleAdmin), func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
