package dto

type TopUserStat struct {
	Username   string `json:"username"`
	EntryCount int64  `json:"entry_count"`
}

type AdminStatsResponse struct {
	TotalUsers       int64         `json:"total_users"`
	RecentUsers      int64         `json:"recent_users"`
	UsersWithEntries int64         `json:"users_with_entries"`
	TotalEntries     int64         `json:"total_entries"`
	TopUsers         []TopUserStat `json:"top_users"`
	TotalAIQueries   int64         `json:"total_ai_queries"`
	RecentAIQueries  int64         `json:"recent_ai_queries"`
	Timestamp        string        `json:"timestamp"`
}
