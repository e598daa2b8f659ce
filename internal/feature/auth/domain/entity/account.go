// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role tags an account with the capabilities it holds.
type Role string

const (
	// RoleAdmin may manage the catalog and view every portfolio.
	RoleAdmin Role = "ADMIN"
	// RoleTrader trades against its own portfolio only.
	RoleTrader Role = "TRADER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTrader
}

// CanManageCatalog reports whether r may add, reprice or delete instruments.
func CanManageCatalog(r Role) bool {
	return r == RoleAdmin
}

// CanViewAllPortfolios reports whether r may read holdings of other accounts.
func CanViewAllPortfolios(r Role) bool {
	return r == RoleAdmin
}

// Account is a registered user of the portfolio tracker.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. Unique, case-sensitive.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Email is unique across all accounts, case-sensitive.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password. Never the plaintext.
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	DisplayName string `gorm:"size:255;not null"`

	// Role is fixed at registration.
	Role Role `gorm:"size:16;not null"`

	CreatedAt time.Time

	// LastLoginAt is nil until the first successful login.
	LastLoginAt *time.Time
}

// TableName returns the table name for GORM.
func (Account) TableName() string {
	return "accounts"
}

// CanManageCatalog reports whether the account holds the catalog capability.
func (a *Account) CanManageCatalog() bool {
	return CanManageCatalog(a.Role)
}

// CanViewAllPortfolios reports whether the account may read all portfolios.
func (a *Account) CanViewAllPortfolios() bool {
	return CanViewAllPortfolios(a.Role)
}
