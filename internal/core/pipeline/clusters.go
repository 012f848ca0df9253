package pipeline

import (
	"briefing-service/internal/core/briefing"
	"briefing-service/internal/core/domain"
	"sort"

	"github.com/mmcloughlin/geohash"
)

const (
	DefaultClusterPrecision = 6
	maxClusterPrecision     = 12
)

// Clusters группирует объекты вида по ячейкам geohash и считает по ним брифинг.
// Объекты без координат в группировку не попадают.
func Clusters(view domain.ListingView, state *domain.BriefingState, precision int) []domain.ClusterSummary {
	if precision < 1 || precision > maxClusterPrecision {
		precision = DefaultClusterPrecision
	}

	groups := make(map[string][]domain.ListingID)
	for _, l := range view.Items {
		if !l.Coords.Mappable() {
			continue
		}
		hash := geohash.EncodeWithPrecision(*l.Coords.Lat, *l.Coords.Lng, uint(precision))
		groups[hash] = append(groups[hash], l.ID)
	}

	out := make([]domain.ClusterSummary, 0, len(groups))
	for hash, ids := range groups {
		lat, lng := geohash.DecodeCenter(hash)
		stats, primary := briefing.Summarize(ids, state)
		out = append(out, domain.ClusterSummary{
			Geohash:    hash,
			Lat:        lat,
			Lng:        lng,
			Count:      len(ids),
			Size:       briefing.SizeClass(len(ids)),
			Stats:      stats,
			Primary:    primary,
			ListingIDs: ids,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Geohash < out[j].Geohash
	})
	return out
}
