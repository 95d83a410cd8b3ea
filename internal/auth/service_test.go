package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"planets-api/internal/shared/errors"
	"planets-api/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int]*user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int]*user.User),
		nextID: 1,
	}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errors.NotFoundf("user %d not found", id)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.NotFoundf("user %s not found", email)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	created := *u
	created.ID = r.nextID
	r.users[created.ID] = &created
	r.nextID++
	copied := created
	return &copied, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.NotFoundf("user %d not found", id)
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeMailer struct {
	sent     []string // reset links, in send order
	lastTo   string
	lastName string
	err      error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, name, resetLink string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, resetLink)
	m.lastTo = to
	m.lastName = name
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, mailer *fakeMailer) (*Service, *user.Service) {
	t.Helper()

	users := user.NewService(newFakeUserRepo(), testLogger())
	issuer := NewTokenIssuer(testSecret, time.Hour)
	svc := NewService(users, issuer, NewMemoryTokenStore(), mailer, 30*time.Minute, "http://localhost:8080", testLogger())
	return svc, users
}

func registerTestUser(t *testing.T, users *user.Service) {
	t.Helper()

	_, err := users.Register(context.Background(), "Aarav", "K", "aarav@yopmail.com", "password")
	require.NoError(t, err)
}

func TestService_Login(t *testing.T) {
	svc, users := newTestService(t, &fakeMailer{})
	registerTestUser(t, users)

	token, err := svc.Login(context.Background(), "aarav@yopmail.com", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	issuer := NewTokenIssuer(testSecret, time.Hour)
	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "aarav@yopmail.com", claims.Subject)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, users := newTestService(t, &fakeMailer{})
	registerTestUser(t, users)

	token, err := svc.Login(context.Background(), "aarav@yopmail.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetType(err))
	assert.Empty(t, token)
}

func TestService_RequestPasswordReset(t *testing.T) {
	mailer := &fakeMailer{}
	svc, users := newTestService(t, mailer)
	registerTestUser(t, users)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "aarav@yopmail.com"))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "aarav@yopmail.com", mailer.lastTo)
	assert.Equal(t, "Aarav", mailer.lastName)
	assert.Contains(t, mailer.sent[0], "http://localhost:8080/reset_password/confirm?token=")
}

func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newTestService(t, mailer)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetType(err))
	assert.Empty(t, mailer.sent)
}

func TestService_RequestPasswordReset_MailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.WrapExternal("failed to send reset email", assert.AnError)}
	svc, users := newTestService(t, mailer)
	registerTestUser(t, users)

	err := svc.RequestPasswordReset(context.Background(), "aarav@yopmail.com")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeExternal, errors.GetType(err))
}

func TestService_ConfirmPasswordReset(t *testing.T) {
	mailer := &fakeMailer{}
	svc, users := newTestService(t, mailer)
	registerTestUser(t, users)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "aarav@yopmail.com"))
	require.Len(t, mailer.sent, 1)

	// Pull the token out of the mailed link
	link := mailer.sent[0]
	token := link[len("http://localhost:8080/reset_password/confirm?token="):]

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token, "new-password"))

	// Old password no longer works, new one does
	_, err := users.Authenticate(context.Background(), "aarav@yopmail.com", "password")
	require.Error(t, err)
	_, err = users.Authenticate(context.Background(), "aarav@yopmail.com", "new-password")
	require.NoError(t, err)

	// The token was single-use
	err = svc.ConfirmPasswordReset(context.Background(), token, "again")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetType(err))
}

func TestService_ConfirmPasswordReset_InvalidToken(t *testing.T) {
	svc, _ := newTestService(t, &fakeMailer{})

	err := svc.ConfirmPasswordReset(context.Background(), "bogus", "new-password")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetType(err))
}
