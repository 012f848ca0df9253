package briefing

import (
	"briefing-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	state := &domain.BriefingState{
		CustomerID: "42",
		Statuses: map[domain.ListingID]domain.BriefingStatus{
			"1": domain.BriefingPending,
			"2": domain.BriefingOnHold,
			"3": domain.BriefingOnHold,
		},
	}

	stats, primary := Summarize([]domain.ListingID{"1", "2", "3", "4"}, state)

	assert.Equal(t, domain.BriefingStats{Normal: 1, Pending: 1, OnHold: 2}, stats)
	assert.Equal(t, domain.BriefingPending, primary)
}

func TestPrimaryStatus(t *testing.T) {
	tests := []struct {
		name  string
		stats domain.BriefingStats
		want  domain.BriefingStatus
	}{
		{"completed wins", domain.BriefingStats{Completed: 1, Pending: 5, OnHold: 5}, domain.BriefingCompleted},
		{"pending over onhold", domain.BriefingStats{Pending: 1, OnHold: 9}, domain.BriefingPending},
		{"onhold only", domain.BriefingStats{OnHold: 1, Normal: 3}, domain.BriefingOnHold},
		{"all normal", domain.BriefingStats{Normal: 4}, domain.BriefingNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryStatus(tt.stats))
		})
	}
}

func TestSizeClass(t *testing.T) {
	assert.Equal(t, domain.ClusterSmall, SizeClass(9))
	assert.Equal(t, domain.ClusterMid, SizeClass(10))
	assert.Equal(t, domain.ClusterMid, SizeClass(49))
	assert.Equal(t, domain.ClusterBig, SizeClass(50))
}

func TestSummarizeWithoutCustomerCountsAllNormal(t *testing.T) {
	state := &domain.BriefingState{Statuses: map[domain.ListingID]domain.BriefingStatus{"1": domain.BriefingCompleted}}

	stats, primary := Summarize([]domain.ListingID{"1", "2"}, state)

	assert.Equal(t, domain.BriefingStats{Normal: 2}, stats)
	assert.Equal(t, domain.BriefingNormal, primary)
}
