package usage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IdentityType distinguishes guests from registered users for quota purposes.
type IdentityType string

const (
	IdentityTypeGuest IdentityType = "guest"
	IdentityTypeUser  IdentityType = "user"
)

func (t IdentityType) IsValid() bool {
	return t == IdentityTypeGuest || t == IdentityTypeUser
}

func (t IdentityType) String() string {
	return string(t)
}

// ParseIdentityType parses "guest" or "user", case-insensitively.
func ParseIdentityType(s string) (IdentityType, error) {
	t := IdentityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentityType, s)
	}
	return t, nil
}

// Identity is the key a usage record is stored under plus the class that picks its cap.
type Identity struct {
	key string
	typ IdentityType
}

// NewIdentity validates and builds an Identity.
func NewIdentity(key string, typ IdentityType) (Identity, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Identity{}, ErrEmptyIdentity
	}
	if !typ.IsValid() {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentityType, typ)
	}
	return Identity{key: key, typ: typ}, nil
}

// NewGuestIdentity builds a guest identity, requiring a UUID key when strict is set.
func NewGuestIdentity(key string, strict bool) (Identity, error) {
	id, err := NewIdentity(key, IdentityTypeGuest)
	if err != nil {
		return Identity{}, err
	}
	if strict {
		if _, err := uuid.Parse(id.key); err != nil {
			return Identity{}, ErrInvalidGuestID
		}
	}
	return id, nil
}

// NewUserIdentity builds a registered-user identity.
func NewUserIdentity(userID string) (Identity, error) {
	return NewIdentity(userID, IdentityTypeUser)
}

// NewGuestID mints a random guest identifier.
func NewGuestID() string {
	return uuid.NewString()
}

func (i Identity) Key() string        { return i.key }
func (i Identity) Type() IdentityType { return i.typ }
func (i Identity) IsGuest() bool      { return i.typ == IdentityTypeGuest }
func (i Identity) IsUser() bool       { return i.typ == IdentityTypeUser }
func (i Identity) IsZero() bool       { return i.key == "" }

func (i Identity) String() string {
	return fmt.Sprintf("%s:%s", i.typ, i.key)
}
