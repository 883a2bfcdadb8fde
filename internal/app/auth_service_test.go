package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todoapp/internal/model"
)

// --- fakes ---

type fakeUserStore struct {
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	nextID  uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*model.User),
		byID:    make(map[uint]*model.User),
		nextID:  1,
	}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	return f.byID[id], nil
}

type fakeSessionStore struct {
	tokens       map[string]uint
	lastRemember bool
	nextToken    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: make(map[string]uint)}
}

func (f *fakeSessionStore) Create(_ context.Context, userID uint, remember bool) (string, error) {
	f.nextToken++
	token := fmt.Sprintf("token-%d", f.nextToken)
	f.tokens[token] = userID
	f.lastRemember = remember
	return token, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newAuthService() (*AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	return NewAuthService(users, sessions), users, sessions
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newAuthService()

	user, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@b.com", user.Email)

	stored := users.byEmail["a@b.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash, "plaintext password must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_TrimsAndLowercases(t *testing.T) {
	svc, users, _ := newAuthService()

	user, err := svc.Register(RegisterInput{Email: "  A@B.Com ", Name: " Alice ", Password: " secret1 "})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotNil(t, users.byEmail["a@b.com"])
}

func TestRegister_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthService()

	cases := []RegisterInput{
		{Email: "", Name: "A", Password: "secret1"},
		{Email: "a@b.com", Name: "", Password: "secret1"},
		{Email: "a@b.com", Name: "A", Password: ""},
		{Email: "   ", Name: "A", Password: "secret1"},
	}
	for _, input := range cases {
		_, err := svc.Register(input)
		assert.ErrorIs(t, err, ErrEmptyField, "input %+v", input)
	}
}

func TestRegister_InvalidEmailFormat(t *testing.T) {
	svc, _, _ := newAuthService()

	for _, email := range []string{"plain", "a@b", "@b.com", "a@.com", "a b@c.com"} {
		_, err := svc.Register(RegisterInput{Email: email, Name: "A", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	// A different name and password make no difference.
	_, err = svc.Register(RegisterInput{Email: "a@b.com", Name: "B", Password: "other-password"})
	assert.ErrorIs(t, err, ErrEmailExists)

	// Same address in a different case is still the same account.
	_, err = svc.Register(RegisterInput{Email: "A@B.COM", Name: "C", Password: "third-password"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_Success(t *testing.T) {
	svc, _, sessions := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	identity, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, identity)

	assert.Equal(t, registered.ID, identity.User.ID)
	assert.NotEmpty(t, identity.Token)
	assert.Equal(t, registered.ID, sessions.tokens[identity.Token])
	assert.False(t, sessions.lastRemember)
}

func TestLogin_RememberFlagReachesSessionStore(t *testing.T) {
	svc, _, sessions := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1", Remember: true})
	require.NoError(t, err)
	assert.True(t, sessions.lastRemember)
}

func TestLogin_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "  "})
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	// Unknown account and wrong password must be indistinguishable.
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	// Any single-character mutation of the password fails too.
	for _, password := range []string{"Secret1", "secret2", "secret1 x", "ecret1"} {
		_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: password})
		assert.ErrorIs(t, err, ErrInvalidCredential, "password %q", password)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _, sessions := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)
	identity, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, identity.Token))
	_, alive := sessions.tokens[identity.Token]
	assert.False(t, alive)

	// Logging out again, or with no session at all, is fine.
	assert.NoError(t, svc.Logout(ctx, identity.Token))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestGetUserByID(t *testing.T) {
	svc, _, _ := newAuthService()

	registered, err := svc.Register(RegisterInput{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "A", user.Name)

	missing, err := svc.GetUserByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	zero, err := svc.GetUserByID(0)
	require.NoError(t, err)
	assert.Nil(t, zero)
}
