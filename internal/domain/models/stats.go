package models

// UserStats is the aggregate snapshot rendered by the dashboard metric
// cards. Computed from the full population on every call, never cached.
//
// Tier counts come strictly from profile rows; identities without a profile
// appear in total/active/banned but in no tier bucket. TotalCreditsUsed can
// go negative when a profile holds more remaining credits than its monthly
// limit; that is deliberate, so data-quality problems stay visible.
type UserStats struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	BannedUsers       int `json:"banned_users"`
	FreeUsers         int `json:"free_users"`
	StarterUsers      int `json:"starter_users"`
	ProUsers          int `json:"pro_users"`
	EnterpriseUsers   int `json:"enterprise_users"`
	TotalCreditsUsed  int `json:"total_credits_used"`
	NewUsersThisMonth int `json:"new_users_this_month"`
}
