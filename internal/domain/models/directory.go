package models

import "time"

// DirectoryEntry is the request-scoped merge of one identity record and its
// optional profile. It is derived on every call and never persisted.
type DirectoryEntry struct {
	ID                  string             `json:"id"`
	Email               string             `json:"email"`
	Name                string             `json:"name"`
	CompanyName         string             `json:"company_name,omitempty"`
	Role                Role               `json:"role"`
	SubscriptionTier    SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus  SubscriptionStatus `json:"subscription_status"`
	CreditsRemaining    int                `json:"credits_remaining"`
	CreditsMonthlyLimit int                `json:"credits_monthly_limit"`
	CreatedAt           time.Time          `json:"created_at"`
	LastSignInAt        *time.Time         `json:"last_sign_in_at,omitempty"`
	BannedUntil         *time.Time         `json:"banned_until,omitempty"`
}

// ListUsersParams are the query parameters accepted by the user listing.
type ListUsersParams struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// ListUsersResult is the paginated listing response.
type ListUsersResult struct {
	Users      []DirectoryEntry `json:"users"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
