package userdir

import (
	"context"
)

// UserStore is the slice of the repository the provider needs
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserProvider resolves identities against the credential store
type UserProvider struct {
	store  UserStore
	logger Logger
}

var _ IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user by email, compare the password
// against the stored hash, and return the identity. Unknown email and
// wrong password fail the same way so callers cannot enumerate
// accounts.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByID re-fetches the user behind a verified claim. Role
// information always comes from storage at request time, never from
// the token payload.
func (u *UserProvider) FindIdentityByID(ctx context.Context, id int64) (Identity, error) {
	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id          int64
	name        string
	email       string
	accountType AccountType
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:          user.ID,
		name:        user.Name,
		email:       user.Email,
		accountType: user.AccountType,
	}
}

func (i authIdentity) ID() int64                { return i.id }
func (i authIdentity) Name() string             { return i.name }
func (i authIdentity) Email() string            { return i.email }
func (i authIdentity) AccountType() AccountType { return i.accountType }
