package pipeline

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/filter"
	"briefing-service/internal/core/sorting"
)

// BriefingList - таблица объектов со статусом брифинга, отличным от normal.
// В режиме edited поля объединяются с локальными правками.
func BriefingList(sess *domain.Session, mode domain.ViewMode) domain.BriefingListView {
	var marked []domain.Listing
	for _, l := range sess.Listings {
		if sess.Briefing.Status(l.ID) != domain.BriefingNormal {
			marked = append(marked, l)
		}
	}

	effective := filter.Effective(sess.CustomerFilters, sess.TopFilters)
	filtered := filter.Apply(marked, effective)
	sorting.SortInPlace(filtered, sess.SortMode)

	items := make([]domain.BriefingListItem, 0, len(filtered))
	for _, l := range filtered {
		item := domain.BriefingListItem{
			Listing: l,
			Status:  sess.Briefing.Status(l.ID),
			Edited:  sess.Overlay.Has(l.ID),
		}
		if mode == domain.ViewEdited {
			item.Listing = sess.Overlay.Apply(l)
		}
		items = append(items, item)
	}

	return domain.BriefingListView{
		Items:    items,
		Total:    len(sess.Listings),
		Briefing: len(marked),
		Filtered: len(items),
		Mode:     mode,
	}
}
