package models

import (
	"strconv"
	"time"
)

// Metadata is the free-form key/value bag the identity provider attaches to
// an account. Values are JSON scalars (string, number, boolean); anything
// else is ignored by the typed accessors.
type Metadata map[string]interface{}

// String returns the value stored under key coerced to a string.
// Numbers and booleans are formatted; missing keys, empty strings and
// non-scalar values report ok=false.
func (m Metadata) String(key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Int returns the value stored under key coerced to an int.
func (m Metadata) Int(key string) (int, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IdentityRecord mirrors one account in the external identity provider.
// The provider owns the full lifecycle; this service never creates or
// deletes identities.
type IdentityRecord struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	BannedUntil  *time.Time `json:"banned_until,omitempty"`
	Metadata     Metadata   `json:"user_metadata,omitempty"`
}

// Banned reports whether the account is suspended at the given instant.
// A banned_until in the past counts as not banned even though the field
// is still populated.
func (u *IdentityRecord) Banned(now time.Time) bool {
	return u.BannedUntil != nil && u.BannedUntil.After(now)
}
