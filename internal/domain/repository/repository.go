package repository

import (
	"context"
	"time"

	"github.com/enrichx/directory-service/internal/domain/models"
)

// IdentityStore is the admin surface of the external identity provider.
// All reads are a fresh snapshot; nothing is cached on this side.
type IdentityStore interface {
	// List returns every account the provider knows about.
	List(ctx context.Context) ([]models.IdentityRecord, error)
	// GetByID returns one account, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*models.IdentityRecord, error)
	// UpdateMetadata merges the given entries into the account's
	// user_metadata bag.
	UpdateMetadata(ctx context.Context, id string, patch models.Metadata) error
	// SetBanned sets or clears the banned_until timestamp. A nil until
	// lifts the ban.
	SetBanned(ctx context.Context, id string, until *time.Time) error
}

// ProfileRepository is the internal profiles table, keyed by identity id.
type ProfileRepository interface {
	// List returns every profile row.
	List(ctx context.Context) ([]models.ProfileRecord, error)
	// GetByID returns one profile, or ErrProfileNotFound when the
	// identity has no row yet.
	GetByID(ctx context.Context, id string) (*models.ProfileRecord, error)
	// Upsert applies the patch to the profile row, creating it with
	// defaults for the untouched columns when it does not exist.
	Upsert(ctx context.Context, id string, patch models.ProfilePatch) error
}
