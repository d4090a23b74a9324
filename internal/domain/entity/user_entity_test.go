package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHasher struct {
	calls int
	err   error
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func (h *countingHasher) Compare(hash, plain string) bool { return hash == "hashed:"+plain }

func TestNewUserNormalizes(t *testing.T) {
	u := NewUser("  Rohin ", " Rohin@X.com ", "abc123", 500, "ADDRESS_NOT_SET")

	assert.Equal(t, "Rohin", u.Name)
	assert.Equal(t, "rohin@x.com", u.Email)
	assert.True(t, u.PasswordChanged())
	assert.Equal(t, float64(500), u.WalletMoney)
}

func TestPrepareForPersistHashesOnlyChangedPassword(t *testing.T) {
	h := &countingHasher{}
	u := NewUser("Rohin", "rohin@x.com", "abc123", 500, "ADDRESS_NOT_SET")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, u.PrepareForPersist(h, now))
	assert.Equal(t, "hashed:abc123", u.Password)
	assert.False(t, u.PasswordChanged())
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, now, u.UpdatedAt)

	u.Address = "somewhere far away from here"
	later := now.Add(time.Hour)
	require.NoError(t, u.PrepareForPersist(h, later))
	assert.Equal(t, 1, h.calls, "an unchanged password must not be re-hashed")
	assert.Equal(t, "hashed:abc123", u.Password)
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, later, u.UpdatedAt)

	assert.True(t, u.IsPasswordMatch(h, "abc123"))
	assert.False(t, u.IsPasswordMatch(h, "abc124"))
}

func TestPrepareForPersistPropagatesHashError(t *testing.T) {
	h := &countingHasher{err: errors.New("entropy exhausted")}
	u := NewUser("Rohin", "rohin@x.com", "abc123", 500, "")

	err := u.PrepareForPersist(h, time.Now())
	assert.EqualError(t, err, "entropy exhausted")
	assert.True(t, u.PasswordChanged())
}

func TestValidateNewUser(t *testing.T) {
	tests := []struct {
		name     string
		user     [3]string
		badField []string
	}{
		{name: "valid", user: [3]string{"Rohin", "rohin@x.com", "abc123"}},
		{name: "uppercase email is fine", user: [3]string{"Rohin", "ROHIN@X.COM", "abc123"}},
		{name: "missing name", user: [3]string{" ", "rohin@x.com", "abc123"}, badField: []string{"name"}},
		{name: "malformed email", user: [3]string{"Rohin", "rohin-at-x", "abc123"}, badField: []string{"email"}},
		{name: "digits only password", user: [3]string{"Rohin", "rohin@x.com", "123456"}, badField: []string{"password"}},
		{name: "letters only password", user: [3]string{"Rohin", "rohin@x.com", "abcdef"}, badField: []string{"password"}},
		{name: "password at bcrypt limit", user: [3]string{"Rohin", "rohin@x.com", "a1" + strings.Repeat("x", 70)}},
		{name: "password over bcrypt limit", user: [3]string{"Rohin", "rohin@x.com", "a1" + strings.Repeat("x", 80)}, badField: []string{"password"}},
		{name: "everything wrong", user: [3]string{"", "", ""}, badField: []string{"name", "email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewUser(tt.user[0], tt.user[1], tt.user[2])
			if len(tt.badField) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.badField))
			for _, f := range tt.badField {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}
