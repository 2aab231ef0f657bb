package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
)

// memoryRepo is an in-memory UserRepository used across the service tests.
type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*entity.User)}
}

func (r *memoryRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memoryRepo) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token &&
			u.EmailVerificationExpires != nil && u.EmailVerificationExpires.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memoryRepo) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, id string, upd repo.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = upd.DateOfBirth
	}
	if upd.ProfileImageURL != nil {
		u.ProfileImageURL = upd.ProfileImageURL
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.IsEmailVerified != nil {
		u.IsEmailVerified = *upd.IsEmailVerified
	}
	if upd.LastLoginAt != nil {
		u.LastLoginAt = upd.LastLoginAt
	}
	if upd.EmailVerificationToken != nil {
		u.EmailVerificationToken = upd.EmailVerificationToken
	}
	if upd.EmailVerificationExpires != nil {
		u.EmailVerificationExpires = upd.EmailVerificationExpires
	}
	if upd.PasswordResetToken != nil {
		u.PasswordResetToken = upd.PasswordResetToken
	}
	if upd.PasswordResetExpires != nil {
		u.PasswordResetExpires = upd.PasswordResetExpires
	}
	if upd.ClearEmailVerification {
		u.EmailVerificationToken = nil
		u.EmailVerificationExpires = nil
	}
	if upd.ClearPasswordReset {
		u.PasswordResetToken = nil
		u.PasswordResetExpires = nil
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// raw returns the stored record without copying, for assertions on
// persisted state.
func (r *memoryRepo) raw(id string) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type notifierCall struct {
	Email string
	Token string
}

type fakeNotifier struct {
	mu          sync.Mutex
	verifyErr   error
	resetErr    error
	verifyCalls []notifierCall
	resetCalls  []notifierCall
}

func (n *fakeNotifier) SendVerificationEmail(_ context.Context, u *entity.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verifyCalls = append(n.verifyCalls, notifierCall{Email: u.Email, Token: token})
	return n.verifyErr
}

func (n *fakeNotifier) SendPasswordResetEmail(_ context.Context, u *entity.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetCalls = append(n.resetCalls, notifierCall{Email: u.Email, Token: token})
	return n.resetErr
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, _, _ string) (string, error) {
	return u.url, u.err
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(r repo.UserRepository, n Notifier, up Uploader) *Service {
	return NewService(r, helpers.NewJWTManager("test-secret", time.Hour), n, up, testLogger(), nil, "")
}
