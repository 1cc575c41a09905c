package userdir

import (
	"github.com/uptrace/bun"
)

// AccountType is the user's account tier
type AccountType = string

const (
	// AccountBasic is the entry tier
	AccountBasic AccountType = "BASIC"
	// AccountPremium is the paid tier
	AccountPremium AccountType = "PREMIUM"
	// AccountVIP is the top tier, required to list the directory
	AccountVIP AccountType = "VIP"
)

// Account is the account tier model
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            int64       `bun:"id,pk,autoincrement" json:"id"`
	Type          AccountType `bun:"account_type,notnull,unique" json:"account_type"`
}

// User is the user model. Users are immutable once created: there is
// no update or delete surface in this service.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64    `bun:"id,pk,autoincrement" json:"id"`
	Name          string   `bun:"name,notnull" json:"name"`
	Email         string   `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string   `bun:"password_hash,notnull" json:"-"`
	AccountID     int64    `bun:"account_id,notnull" json:"-"`
	Account       *Account `bun:"rel:belongs-to,join:account_id=id" json:"-"`

	// AccountType is scanned off the accounts join; it is never
	// written through this model.
	AccountType AccountType `bun:"account_type,scanonly" json:"account_type"`
}

// IsValidAccountType checks the tier is one of the predefined ones
func IsValidAccountType(t AccountType) bool {
	switch t {
	case AccountBasic, AccountPremium, AccountVIP:
		return true
	default:
		return false
	}
}

// AllAccountTypes returns the predefined tiers in ascending order
func AllAccountTypes() []AccountType {
	return []AccountType{
		AccountBasic,
		AccountPremium,
		AccountVIP,
	}
}

// ParseAccountType safely parses a string into an AccountType
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(s)
	return t, IsValidAccountType(t)
}
