package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/enrichx/directory-service/internal/domain/models"
)

func TestResolveDefaults(t *testing.T) {
	r := NewResolver("admin@enrichx.com", "EnrichX Admin")

	identity := models.IdentityRecord{
		ID:        "u1",
		Email:     "jane@example.com",
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	entry := r.Resolve(identity, nil)

	assert.Equal(t, "u1", entry.ID)
	assert.Equal(t, "jane", entry.Name)
	assert.Equal(t, "", entry.CompanyName)
	assert.Equal(t, models.RoleSubscriber, entry.Role)
	assert.Equal(t, models.TierFree, entry.SubscriptionTier)
	assert.Equal(t, models.SubscriptionActive, entry.SubscriptionStatus)
	assert.Equal(t, 50, entry.CreditsRemaining)
	assert.Equal(t, 50, entry.CreditsMonthlyLimit)
}

func TestResolveMetadataFallback(t *testing.T) {
	r := NewResolver("admin@enrichx.com", "EnrichX Admin")

	identity := models.IdentityRecord{
		ID:    "u2",
		Email: "bob@acme.io",
		Metadata: models.Metadata{
			"name":              "Bob Legacy",
			"company_name":      "Acme",
			"role":              "admin",
			"subscription_tier": "pro",
		},
	}

	entry := r.Resolve(identity, nil)

	assert.Equal(t, "Bob Legacy", entry.Name)
	assert.Equal(t, "Acme", entry.CompanyName)
	assert.Equal(t, models.RoleAdmin, entry.Role)
	assert.Equal(t, models.TierPro, entry.SubscriptionTier)
	// Credits fall back to the tier default when metadata carries none.
	assert.Equal(t, 2000, entry.CreditsRemaining)
	assert.Equal(t, 2000, entry.CreditsMonthlyLimit)
}

func TestResolveProfileWinsOverMetadata(t *testing.T) {
	r := NewResolver("admin@enrichx.com", "EnrichX Admin")

	identity := models.IdentityRecord{
		ID:    "u3",
		Email: "kate@corp.com",
		Metadata: models.Metadata{
			"name":              "Old Name",
			"role":              "admin",
			"subscription_tier": "enterprise",
		},
	}
	profile := &models.ProfileRecord{
		ID:                  "u3",
		Name:                "Kate",
		CompanyName:         "Corp",
		Role:                models.RoleSubscriber,
		SubscriptionTier:    models.TierStarter,
		CreditsRemaining:    10,
		CreditsMonthlyLimit: 100,
		SubscriptionStatus:  models.SubscriptionPastDue,
	}

	entry := r.Resolve(identity, profile)

	assert.Equal(t, "Kate", entry.Name)
	assert.Equal(t, "Corp", entry.CompanyName)
	assert.Equal(t, models.RoleSubscriber, entry.Role)
	assert.Equal(t, models.TierStarter, entry.SubscriptionTier)
	assert.Equal(t, models.SubscriptionPastDue, entry.SubscriptionStatus)
	assert.Equal(t, 10, entry.CreditsRemaining)
	assert.Equal(t, 100, entry.CreditsMonthlyLimit)
}

func TestResolveEmptyProfileFieldFallsThrough(t *testing.T) {
	r := NewResolver("", "")

	identity := models.IdentityRecord{
		ID:       "u4",
		Email:    "sam@x.dev",
		Metadata: models.Metadata{"name": "Sam Meta"},
	}
	profile := &models.ProfileRecord{ID: "u4", Role: models.RoleSubscriber}

	entry := r.Resolve(identity, profile)

	// Profile has no name, so the metadata value applies.
	assert.Equal(t, "Sam Meta", entry.Name)
}

func TestResolveDesignatedAdminOverride(t *testing.T) {
	r := NewResolver("admin@enrichx.com", "EnrichX Admin")

	identity := models.IdentityRecord{
		ID:    "u5",
		Email: "Admin@EnrichX.com", // case-insensitive match
		Metadata: models.Metadata{
			"role":              "subscriber",
			"subscription_tier": "free",
		},
	}
	profile := &models.ProfileRecord{
		ID:               "u5",
		Role:             models.RoleSubscriber,
		SubscriptionTier: models.TierFree,
	}

	entry := r.Resolve(identity, profile)

	// Override beats both stores, not just defaults.
	assert.Equal(t, models.RoleAdmin, entry.Role)
	assert.Equal(t, models.TierEnterprise, entry.SubscriptionTier)
}

func TestResolveAdminDisplayLabel(t *testing.T) {
	r := NewResolver("admin@enrichx.com", "EnrichX Admin")

	entry := r.Resolve(models.IdentityRecord{ID: "u6", Email: "admin@enrichx.com"}, nil)
	assert.Equal(t, "EnrichX Admin", entry.Name)

	// A stored name still wins over the label.
	profile := &models.ProfileRecord{ID: "u6", Name: "Root"}
	entry = r.Resolve(models.IdentityRecord{ID: "u6", Email: "admin@enrichx.com"}, profile)
	assert.Equal(t, "Root", entry.Name)
}

func TestResolveNameWithoutAtSign(t *testing.T) {
	r := NewResolver("", "")

	entry := r.Resolve(models.IdentityRecord{ID: "u7", Email: "not-an-email"}, nil)
	assert.Equal(t, "not-an-email", entry.Name)
}

func TestResolveMetadataCredits(t *testing.T) {
	r := NewResolver("", "")

	identity := models.IdentityRecord{
		ID:    "u8",
		Email: "n@x.com",
		Metadata: models.Metadata{
			"subscription_tier": "enterprise",
			"credits_remaining": float64(123),
		},
	}

	entry := r.Resolve(identity, nil)

	assert.Equal(t, models.TierEnterprise, entry.SubscriptionTier)
	assert.Equal(t, 123, entry.CreditsRemaining)
	// Limit has no metadata value, so the tier default applies.
	assert.Equal(t, 10000, entry.CreditsMonthlyLimit)
}
