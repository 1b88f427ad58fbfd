package application

import "time"

// Stats is a derived summary of a user's applications.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[Status]int `json:"byStatus"`
	Last7Days  int            `json:"last7Days"`
	Last30Days int            `json:"last30Days"`
}

// ComputeStats aggregates apps as of now. Every status appears in ByStatus,
// zero counts included.
func ComputeStats(apps []Application, now time.Time) Stats {
	st := Stats{ByStatus: make(map[Status]int, len(AllStatuses))}
	for _, s := range AllStatuses {
		st.ByStatus[s] = 0
	}
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	for _, a := range apps {
		st.Total++
		st.ByStatus[a.Status]++
		if !a.CreatedAt.Before(weekAgo) {
			st.Last7Days++
		}
		if !a.CreatedAt.Before(monthAgo) {
			st.Last30Days++
		}
	}
	return st
}
