package sorting

import (
	"briefing-service/internal/core/domain"
	"fmt"
)

// Advance сдвигает цикл одной кнопки и возвращает новый режим.
// Позиции остальных кнопок не трогаются. Если family не кнопка с циклом,
// а обычный режим сортировки, он возвращается как есть.
func Advance(positions map[domain.SortFamily]int, family domain.SortFamily) (domain.SortMode, error) {
	if family == domain.FamilyIndex {
		return "", fmt.Errorf("%w: %s", domain.ErrSortNotSupported, family)
	}

	cycle, ok := domain.SortCycles[family]
	if !ok {
		mode := domain.SortMode(family)
		if !mode.Known() {
			return "", fmt.Errorf("%w: %s", domain.ErrUnknownSortMode, family)
		}
		return mode, nil
	}

	next := (positions[family] + 1) % len(cycle)
	positions[family] = next
	return cycle[next], nil
}

// Reset обнуляет позиции всех циклов. Вызывается при каждом применении фильтров.
func Reset(positions map[domain.SortFamily]int) {
	for f := range domain.SortCycles {
		positions[f] = 0
	}
}
