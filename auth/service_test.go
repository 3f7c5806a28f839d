package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/inkwell-go/apperror"
)

// memoryStore is an in-memory UserStore for exercising the service flows
// without a database.
type memoryStore struct {
	users  map[string]*User
	nextID int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]*User), nextID: 1}
}

func (m *memoryStore) Create(_ context.Context, name, email, hashedPassword string) (*User, error) {
	if _, ok := m.users[email]; ok {
		return nil, apperror.NewConflictError("email already registered", nil)
	}
	user := &User{
		ID:             m.nextID,
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	m.nextID++
	m.users[email] = user
	return user, nil
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return user, nil
}

func (m *memoryStore) FindByID(_ context.Context, id int) (*User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func newTestService() (*AuthService, *memoryStore) {
	store := newMemoryStore()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	issuer := testIssuer("test-secret", time.Hour)
	return NewAuthService(store, hasher, issuer), store
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	user, token, err := service.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "strongpassword",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	// Emails are normalized to lowercase on the way in.
	require.Equal(t, "alice@example.com", user.Email)
	// The stored password is a hash, never the plaintext.
	stored := store.users["alice@example.com"]
	require.NotEqual(t, "strongpassword", stored.HashedPassword)

	loggedIn, token, err := service.Login(ctx, LoginRequest{
		Email:    "ALICE@example.COM",
		Password: "strongpassword",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, _, err := service.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "strongpassword"})
	require.NoError(t, err)

	_, _, err = service.Register(ctx, RegisterRequest{Name: "Mallory", Email: "alice@example.com", Password: "otherpassword"})
	require.Error(t, err)
	require.True(t, apperror.IsConflictError(err))
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, _, err := service.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "strongpassword"})
	require.NoError(t, err)

	_, _, unknownEmailErr := service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "strongpassword"})
	require.Error(t, unknownEmailErr)
	require.True(t, apperror.IsAuthError(unknownEmailErr))

	_, _, wrongPasswordErr := service.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrongpassword"})
	require.Error(t, wrongPasswordErr)
	require.True(t, apperror.IsAuthError(wrongPasswordErr))

	// Same message in both cases, so responses do not reveal which emails exist.
	require.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func TestAuthService_TokenIdentifiesUser(t *testing.T) {
	service, _ := newTestService()
	issuer := testIssuer("test-secret", time.Hour)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "strongpassword",
	})
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}
