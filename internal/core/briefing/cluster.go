package briefing

import "briefing-service/internal/core/domain"

const (
	midClusterSize = 10
	bigClusterSize = 50
)

// Summarize считает статусы объектов одного кластера и выбирает главный статус.
func Summarize(ids []domain.ListingID, state *domain.BriefingState) (domain.BriefingStats, domain.BriefingStatus) {
	var stats domain.BriefingStats
	for _, id := range ids {
		switch state.Status(id) {
		case domain.BriefingPending:
			stats.Pending++
		case domain.BriefingCompleted:
			stats.Completed++
		case domain.BriefingOnHold:
			stats.OnHold++
		default:
			stats.Normal++
		}
	}
	return stats, PrimaryStatus(stats)
}

// PrimaryStatus: completed важнее pending, pending важнее onhold.
func PrimaryStatus(stats domain.BriefingStats) domain.BriefingStatus {
	switch {
	case stats.Completed > 0:
		return domain.BriefingCompleted
	case stats.Pending > 0:
		return domain.BriefingPending
	case stats.OnHold > 0:
		return domain.BriefingOnHold
	}
	return domain.BriefingNormal
}

func SizeClass(count int) domain.ClusterSize {
	switch {
	case count >= bigClusterSize:
		return domain.ClusterBig
	case count >= midClusterSize:
		return domain.ClusterMid
	}
	return domain.ClusterSmall
}
