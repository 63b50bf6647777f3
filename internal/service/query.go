package service

import (
	"sort"
	"strings"
	"time"

	"github.com/enrichx/directory-service/internal/domain/models"
)

// Sort orders accepted by the query engine.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSortField is used when sortBy is empty or not a recognized field.
// Falling back instead of rejecting keeps old dashboard builds working when
// a field is renamed.
const DefaultSortField = "created_at"

// comparators maps sortBy values to ordering functions. Each comparator has
// a fixed field type, so heterogeneous values never get compared.
var comparators = map[string]func(a, b *models.DirectoryEntry) int{
	"email": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(a.Email, b.Email)
	},
	"name": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(a.Name, b.Name)
	},
	"company_name": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(a.CompanyName, b.CompanyName)
	},
	"role": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(string(a.Role), string(b.Role))
	},
	"subscription_tier": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(string(a.SubscriptionTier), string(b.SubscriptionTier))
	},
	"subscription_status": func(a, b *models.DirectoryEntry) int {
		return strings.Compare(string(a.SubscriptionStatus), string(b.SubscriptionStatus))
	},
	"credits_remaining": func(a, b *models.DirectoryEntry) int {
		switch {
		case a.CreditsRemaining < b.CreditsRemaining:
			return -1
		case a.CreditsRemaining > b.CreditsRemaining:
			return 1
		default:
			return 0
		}
	},
	"created_at": func(a, b *models.DirectoryEntry) int {
		return compareTimes(&a.CreatedAt, &b.CreatedAt)
	},
	"last_sign_in_at": func(a, b *models.DirectoryEntry) int {
		return compareTimes(a.LastSignInAt, b.LastSignInAt)
	},
}

// compareTimes orders timestamps chronologically; an absent timestamp sorts
// before any present one.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}

// QueryEntries filters, sorts and pages a set of directory entries.
//
// Search keeps entries whose email, name or company name contains the
// search string case-insensitively. Sorting is stable, so entries with
// equal keys keep their input order and pagination stays reproducible
// across calls with identical inputs. A page past the end yields an empty
// list with the total unchanged.
func QueryEntries(entries []models.DirectoryEntry, params models.ListUsersParams) models.ListUsersResult {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	filtered := filterEntries(entries, params.Search)

	cmp, ok := comparators[params.SortBy]
	if !ok {
		cmp = comparators[DefaultSortField]
	}
	desc := params.SortOrder == SortDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		c := cmp(&filtered[i], &filtered[j])
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	// Only pages that exist get a window; multiplying first would overflow
	// for absurd page values straight off the query string.
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * pageSize
		end = start + pageSize
		if end > total {
			end = total
		}
	}

	return models.ListUsersResult{
		Users:      filtered[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func filterEntries(entries []models.DirectoryEntry, search string) []models.DirectoryEntry {
	filtered := make([]models.DirectoryEntry, 0, len(entries))
	if search == "" {
		return append(filtered, entries...)
	}
	needle := strings.ToLower(search)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Email), needle) ||
			strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.CompanyName), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
