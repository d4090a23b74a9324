package entity

import (
	"strings"
	"time"
)

// PasswordHasher is the one-way hashing primitive used before a user is persisted.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// User is the aggregate root for user domain
// Password holds a bcrypt hash once the user has been prepared for persistence.
type User struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	WalletMoney float64   `json:"walletMoney"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	passwordChanged bool
}

// UserAddress is the email + address projection of a user.
type UserAddress struct {
	ID      string `json:"_id"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// NewUser builds an unsaved user; the plaintext password is hashed by PrepareForPersist.
func NewUser(name, email, password string, walletMoney float64, address string) *User {
	u := &User{
		Name:        strings.TrimSpace(name),
		Email:       NormalizeEmail(email),
		WalletMoney: walletMoney,
		Address:     address,
	}
	u.SetPassword(password)
	return u
}

// SetPassword replaces the password with a new plaintext value and marks it for hashing.
func (u *User) SetPassword(plain string) {
	u.Password = strings.TrimSpace(plain)
	u.passwordChanged = true
}

func (u *User) PasswordChanged() bool { return u.passwordChanged }

// PrepareForPersist hashes the password only if it changed since load, and stamps timestamps.
func (u *User) PrepareForPersist(h PasswordHasher, now time.Time) error {
	if u.passwordChanged {
		hash, err := h.Hash(u.Password)
		if err != nil {
			return err
		}
		u.Password = hash
		u.passwordChanged = false
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// IsPasswordMatch reports whether plain matches the stored hash.
func (u *User) IsPasswordMatch(h PasswordHasher, plain string) bool {
	return h.Compare(u.Password, plain)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
