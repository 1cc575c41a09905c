package userdir_test

import (
	"context"
	"time"

	"github.com/mlemos/userdir"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements userdir.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) AccountType() userdir.AccountType {
	args := m.Called()
	return args.String(0)
}

// MockIdentityProvider implements userdir.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (userdir.Identity, error) {
	args := m.Called(ctx, email, password)
	var identity userdir.Identity
	if v := args.Get(0); v != nil {
		identity = v.(userdir.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id int64) (userdir.Identity, error) {
	args := m.Called(ctx, id)
	var identity userdir.Identity
	if v := args.Get(0); v != nil {
		identity = v.(userdir.Identity)
	}
	return identity, args.Error(1)
}

// MockUserStore implements userdir.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*userdir.User, error) {
	args := m.Called(ctx, id)
	var user *userdir.User
	if v := args.Get(0); v != nil {
		user = v.(*userdir.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*userdir.User, error) {
	args := m.Called(ctx, email)
	var user *userdir.User
	if v := args.Get(0); v != nil {
		user = v.(*userdir.User)
	}
	return user, args.Error(1)
}

// testConfig implements userdir.Config for wiring under test
type testConfig struct {
	dbURL      string
	signingKey string
	expiration int
	listenAddr string
}

func (c testConfig) GetDBURL() string      { return c.dbURL }
func (c testConfig) GetSigningKey() string { return c.signingKey }
func (c testConfig) GetListenAddr() string { return c.listenAddr }

func (c testConfig) GetTokenExpiration() time.Duration {
	return time.Duration(c.expiration) * time.Second
}
