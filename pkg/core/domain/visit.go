package domain

import "time"

// Visit represents one logged page-view event
type Visit struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Path      string    `json:"path"`
	Country   string    `json:"country,omitempty"`  // reserved, never written by the track path
	Metadata  string    `json:"metadata,omitempty"` // reserved, never written by the track path
}

// Stats represents the aggregated dashboard data, recomputed on every request
type Stats struct {
	TotalVisits    int64           `json:"total_visits"`
	UniqueVisitors int64           `json:"unique_visitors"`
	TodayVisits    int64           `json:"today_visits"`
	Daily          []DailyCount    `json:"daily"`         // last 30 days, sparse
	TopReferrers   []ReferrerCount `json:"top_referrers"` // top 10, excludes "direct"
	HourlyHeatmap  []HourlyCount   `json:"hourly_heatmap"`
	RecentVisits   []RecentVisit   `json:"recent_visits"` // last 20 by insertion order
}

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

type HourlyCount struct {
	Hour  int   `json:"hour"` // UTC hour of day, 0-23
	Count int64 `json:"count"`
}

// RecentVisit is the projection of a Visit used in the recent-visits list
type RecentVisit struct {
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"` // truncated to 80 chars
	Referrer  string `json:"referrer"`
	Path      string `json:"path"`
}
