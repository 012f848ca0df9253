package pipeline

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/filter"
	"briefing-service/internal/core/sorting"
)

// Refresh - полный проход после изменения фильтров или данных:
// циклы кнопок сортировки сбрасываются, режим сортировки сохраняется.
func Refresh(sess *domain.Session) domain.ListingView {
	sorting.Reset(sess.SortCycles)
	return Compose(sess)
}

// Compose строит вид списка из текущего состояния сессии, не трогая циклы сортировки.
// Результат сохраняется в sess.View.
func Compose(sess *domain.Session) domain.ListingView {
	// Шаг 1: эффективный фильтр = фильтр клиента + непустые значения верхней панели
	effective := filter.Effective(sess.CustomerFilters, sess.TopFilters)

	// Шаг 2: видимость по роли
	visible := visibleFor(sess.Role, sess.Listings)

	// Шаг 3: фильтрация (всегда возвращает новый срез)
	filtered := filter.Apply(visible, effective)

	// Шаг 4: сортировка
	sorting.SortInPlace(filtered, sess.SortMode)

	// Шаг 5: чекбоксы брифинга
	final := narrowByBriefing(filtered, &sess.Briefing, sess.BriefingChecks)

	view := domain.ListingView{
		Items:      final,
		Total:      len(filtered),
		Filtered:   len(final),
		Loaded:     len(sess.Listings),
		SortMode:   sess.SortMode,
		Effective:  effective,
		FetchError: sess.FetchError,
	}
	sess.View = view
	return view
}

// visibleFor: для роли user бэкенд уже вернул только разрешенные объявления,
// admin и manager видят все. Здесь ничего не исключается.
func visibleFor(_ domain.ViewerRole, listings []domain.Listing) []domain.Listing {
	return listings
}

// narrowByBriefing оставляет объекты с отмеченными статусами.
// Если не отмечено ничего или отмечено все, список не меняется.
func narrowByBriefing(listings []domain.Listing, state *domain.BriefingState, checks domain.BriefingChecks) []domain.Listing {
	checked := checks.Checked()
	if len(checked) == 0 || len(checked) == len(domain.BriefingCycleOrder) {
		return listings
	}

	allowed := make(map[domain.BriefingStatus]bool, len(checked))
	for _, st := range checked {
		allowed[st] = true
	}

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if allowed[state.Status(l.ID)] {
			out = append(out, l)
		}
	}
	return out
}
