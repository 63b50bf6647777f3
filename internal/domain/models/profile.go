package models

import "time"

// Role defines the product-level role of a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSubscriber Role = "subscriber"
)

// SubscriptionTier defines the billing tier of a user.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierStarter    SubscriptionTier = "starter"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// SubscriptionStatus defines the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
)

// DefaultCredits returns the monthly credit allowance for a tier.
// Unknown tiers get the free allowance.
func DefaultCredits(tier SubscriptionTier) int {
	switch tier {
	case TierPro:
		return 2000
	case TierEnterprise:
		return 10000
	default:
		return 50
	}
}

// ProfileRecord is the product-specific row in the profiles table, keyed by
// the identity id. At most one profile exists per identity, and it may be
// absent entirely.
type ProfileRecord struct {
	ID                  string             `json:"id" db:"id"`
	Name                string             `json:"name" db:"name"`
	CompanyName         string             `json:"company_name" db:"company_name"`
	Role                Role               `json:"role" db:"role"`
	SubscriptionTier    SubscriptionTier   `json:"subscription_tier" db:"subscription_tier"`
	CreditsRemaining    int                `json:"credits_remaining" db:"credits_remaining"`
	CreditsMonthlyLimit int                `json:"credits_monthly_limit" db:"credits_monthly_limit"`
	SubscriptionStatus  SubscriptionStatus `json:"subscription_status" db:"subscription_status"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}

// ProfilePatch carries a partial update for a user. Nil fields are left
// untouched in both write targets.
type ProfilePatch struct {
	Name                *string             `json:"name,omitempty"`
	CompanyName         *string             `json:"company_name,omitempty"`
	Role                *Role               `json:"role,omitempty"`
	SubscriptionTier    *SubscriptionTier   `json:"subscription_tier,omitempty"`
	CreditsRemaining    *int                `json:"credits_remaining,omitempty"`
	CreditsMonthlyLimit *int                `json:"credits_monthly_limit,omitempty"`
	SubscriptionStatus  *SubscriptionStatus `json:"subscription_status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.CompanyName == nil && p.Role == nil &&
		p.SubscriptionTier == nil && p.CreditsRemaining == nil &&
		p.CreditsMonthlyLimit == nil && p.SubscriptionStatus == nil
}

// MetadataPatch renders the patch as the metadata entries mirrored into the
// identity provider's user_metadata bag.
func (p ProfilePatch) MetadataPatch() Metadata {
	md := Metadata{}
	if p.Name != nil {
		md["name"] = *p.Name
	}
	if p.CompanyName != nil {
		md["company_name"] = *p.CompanyName
	}
	if p.Role != nil {
		md["role"] = string(*p.Role)
	}
	if p.SubscriptionTier != nil {
		md["subscription_tier"] = string(*p.SubscriptionTier)
	}
	if p.CreditsRemaining != nil {
		md["credits_remaining"] = *p.CreditsRemaining
	}
	if p.CreditsMonthlyLimit != nil {
		md["credits_monthly_limit"] = *p.CreditsMonthlyLimit
	}
	if p.SubscriptionStatus != nil {
		md["subscription_status"] = string(*p.SubscriptionStatus)
	}
	return md
}
