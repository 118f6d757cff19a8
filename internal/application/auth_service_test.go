package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/mycontacts-api/internal/infrastructure/memory"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
	"github.com/oksasatya/mycontacts-api/pkg/mailer"
)

type recordingJobs struct {
	jobs []any
	err  error
}

func (r *recordingJobs) PublishJSON(_ context.Context, body any) error {
	r.jobs = append(r.jobs, body)
	return r.err
}

func newAuthService(t *testing.T, jobs JobPublisher) (*AuthService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	svc := NewAuthService(users,
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", time.Hour),
		jobs, "mycontacts-api", helpers.NewNopLogger())
	return svc, users
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	jobs := &recordingJobs{}
	svc, users := newAuthService(t, jobs)

	u, err := svc.Register(ctx, "  Alice@Example.com ", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	stored, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", stored.PasswordHash)
	assert.True(t, svc.Hasher.Compare(stored.PasswordHash, "Secret123!"))

	require.Len(t, jobs.jobs, 1)
	job, ok := jobs.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", job.To)

	_, err = svc.Register(ctx, "alice@example.com", "Another123!")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
	again, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, stored.PasswordHash, again.PasswordHash, "existing record is untouched")
	assert.Len(t, jobs.jobs, 1)
}

func TestRegisterIgnoresQueueFailure(t *testing.T) {
	svc, _ := newAuthService(t, &recordingJobs{err: errors.New("broker down")})

	_, err := svc.Register(context.Background(), "bob@example.com", "Secret123!")
	assert.NoError(t, err)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t, nil)

	_, err := svc.Register(ctx, "p@example.com", strings.Repeat("é", 40))
	require.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "password")

	_, err = users.GetByEmail(ctx, "p@example.com")
	assert.Error(t, err, "nothing is stored")
}

func TestVerifyPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, nil)
	_, err := svc.Register(ctx, "alice@example.com", "Secret123!")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, "alice@example.com", "Secret123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, "alice@example.com", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.VerifyPassword(ctx, "ghost@example.com", "Secret123!")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, nil)
	_, err := svc.Register(ctx, "alice@example.com", "Secret123!")
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "ALICE@example.com", "Secret123!")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, time.Minute)

	claims, err := svc.JWT.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	tok, err = svc.Login(ctx, "alice@example.com", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, tok.Value)

	tok, err = svc.Login(ctx, "ghost@example.com", "Secret123!")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, tok.Value)
}
