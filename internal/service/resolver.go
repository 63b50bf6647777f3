package service

import (
	"strings"

	"github.com/enrichx/directory-service/internal/domain/models"
)

// Resolver merges one identity record with its optional profile row into a
// DirectoryEntry. Field precedence, first match wins: profile value (present
// and non-empty), identity metadata value, hard-coded default. The
// designated admin email is an override, not a fallback: that account is
// always an enterprise admin no matter what either store says.
//
// Resolve is a pure function of its inputs; the same pair always yields the
// same entry.
type Resolver struct {
	adminEmail string
	adminLabel string
}

// NewResolver creates a resolver with the configured designated-admin
// override. An empty adminEmail disables the override.
func NewResolver(adminEmail, adminLabel string) *Resolver {
	return &Resolver{adminEmail: adminEmail, adminLabel: adminLabel}
}

// IsDesignatedAdmin reports whether the email matches the configured
// administrator address.
func (r *Resolver) IsDesignatedAdmin(email string) bool {
	return r.adminEmail != "" && strings.EqualFold(email, r.adminEmail)
}

// Resolve builds the directory entry for one identity. profile may be nil.
func (r *Resolver) Resolve(identity models.IdentityRecord, profile *models.ProfileRecord) models.DirectoryEntry {
	isAdmin := r.IsDesignatedAdmin(identity.Email)

	entry := models.DirectoryEntry{
		ID:           identity.ID,
		Email:        identity.Email,
		CreatedAt:    identity.CreatedAt,
		LastSignInAt: identity.LastSignInAt,
		BannedUntil:  identity.BannedUntil,
	}

	entry.Name = r.resolveName(identity, profile, isAdmin)
	entry.CompanyName = resolveString(companyOf(profile), identity.Metadata, "company_name", "")

	if isAdmin {
		entry.Role = models.RoleAdmin
		entry.SubscriptionTier = models.TierEnterprise
	} else {
		entry.Role = models.Role(resolveString(roleOf(profile), identity.Metadata, "role", string(models.RoleSubscriber)))
		entry.SubscriptionTier = models.SubscriptionTier(resolveString(tierOf(profile), identity.Metadata, "subscription_tier", string(models.TierFree)))
	}

	entry.SubscriptionStatus = models.SubscriptionStatus(resolveString(statusOf(profile), identity.Metadata, "subscription_status", string(models.SubscriptionActive)))

	if profile != nil {
		entry.CreditsRemaining = profile.CreditsRemaining
		entry.CreditsMonthlyLimit = profile.CreditsMonthlyLimit
	} else {
		fallback := models.DefaultCredits(entry.SubscriptionTier)
		if n, ok := identity.Metadata.Int("credits_remaining"); ok {
			entry.CreditsRemaining = n
		} else {
			entry.CreditsRemaining = fallback
		}
		if n, ok := identity.Metadata.Int("credits_monthly_limit"); ok {
			entry.CreditsMonthlyLimit = n
		} else {
			entry.CreditsMonthlyLimit = fallback
		}
	}

	return entry
}

func (r *Resolver) resolveName(identity models.IdentityRecord, profile *models.ProfileRecord, isAdmin bool) string {
	if profile != nil && profile.Name != "" {
		return profile.Name
	}
	if v, ok := identity.Metadata.String("name"); ok {
		return v
	}
	if isAdmin && r.adminLabel != "" {
		return r.adminLabel
	}
	// Default to the local part of the email.
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return identity.Email
}

// resolveString applies the profile → metadata → default precedence for one
// string-valued field.
func resolveString(profileValue string, md models.Metadata, metadataKey, def string) string {
	if profileValue != "" {
		return profileValue
	}
	if v, ok := md.String(metadataKey); ok {
		return v
	}
	return def
}

func companyOf(p *models.ProfileRecord) string {
	if p == nil {
		return ""
	}
	return p.CompanyName
}

func roleOf(p *models.ProfileRecord) string {
	if p == nil {
		return ""
	}
	return string(p.Role)
}

func tierOf(p *models.ProfileRecord) string {
	if p == nil {
		return ""
	}
	return string(p.SubscriptionTier)
}

func statusOf(p *models.ProfileRecord) string {
	if p == nil {
		return ""
	}
	return string(p.SubscriptionStatus)
}
