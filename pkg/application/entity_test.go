package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("saved").Valid())
	assert.False(t, Status("").Valid())
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusApplied}, NextStatuses(StatusSaved))
	assert.Equal(t, []Status{StatusInterview, StatusRejected}, NextStatuses(StatusApplied))
	assert.Equal(t, []Status{StatusOffer, StatusRejected}, NextStatuses(StatusInterview))
	assert.Empty(t, NextStatuses(StatusOffer))
	assert.Empty(t, NextStatuses(StatusRejected))
	assert.Empty(t, NextStatuses("bogus"))

	// callers must not be able to corrupt the table
	next := NextStatuses(StatusApplied)
	next[0] = StatusOffer
	assert.Equal(t, StatusInterview, NextStatuses(StatusApplied)[0])
}

func TestApplication_NeedsFollowUp(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		d := now.AddDate(0, 0, -n)
		return &d
	}
	tests := []struct {
		name string
		app  Application
		want bool
	}{
		{"applied 10 days ago", Application{Status: StatusApplied, AppliedDate: daysAgo(10)}, true},
		{"applied 3 days ago", Application{Status: StatusApplied, AppliedDate: daysAgo(3)}, false},
		{"no applied date", Application{Status: StatusApplied}, false},
		{"recent follow-up", Application{Status: StatusApplied, AppliedDate: daysAgo(20), FollowedUpAt: daysAgo(2)}, false},
		{"stale follow-up", Application{Status: StatusApplied, AppliedDate: daysAgo(20), FollowedUpAt: daysAgo(8)}, true},
		{"interviewing", Application{Status: StatusInterview, AppliedDate: daysAgo(20)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.app.NeedsFollowUp(now))
		})
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	apps := []Application{
		{Status: StatusApplied, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: StatusApplied, CreatedAt: now.AddDate(0, 0, -7)},
		{Status: StatusInterview, CreatedAt: now.AddDate(0, 0, -8)},
		{Status: StatusOffer, CreatedAt: now.AddDate(0, 0, -30)},
		{Status: StatusRejected, CreatedAt: now.AddDate(0, 0, -31)},
	}

	st := ComputeStats(apps, now)

	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 2, st.Last7Days)
	assert.Equal(t, 4, st.Last30Days)
	assert.Equal(t, map[Status]int{
		StatusSaved:     0,
		StatusApplied:   2,
		StatusInterview: 1,
		StatusOffer:     1,
		StatusRejected:  1,
	}, st.ByStatus)
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil, time.Now())
	assert.Zero(t, st.Total)
	assert.Len(t, st.ByStatus, len(AllStatuses))
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]Status{
		"INTERVIEWING":   StatusInterview,
		"interviewing":   StatusInterview,
		" Interviewing ": StatusInterview,
		"Offered":        StatusOffer,
		"declined":       StatusRejected,
		"Phone  Screen":  StatusInterview,
		"applied":        StatusApplied,
		"something else": StatusSaved,
		"":               StatusSaved,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeStatus(in))
		})
	}
}

func TestParseDateLenient(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-05", "03/05/2024", "3/5/2024", "Mar 5, 2024", "2024-03-05T14:30:00Z", " 2024/03/05 "} {
		t.Run(in, func(t *testing.T) {
			got := ParseDateLenient(in)
			if assert.NotNil(t, got) {
				assert.True(t, want.Equal(*got), got)
			}
		})
	}
	assert.Nil(t, ParseDateLenient(""))
	assert.Nil(t, ParseDateLenient("not a date"))
	assert.Nil(t, ParseDateLenient("2024-13-45"))
}
