package sorting

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/filter"
	"math"
	"sort"
	"strconv"
	"strings"
)

type direction int

const (
	ascending  direction = 1
	descending direction = -1
)

type numericKey struct {
	field string
	dir   direction
}

var numericModes = map[domain.SortMode]numericKey{
	domain.SortAreaHigh:    {domain.FieldAreaReal, descending},
	domain.SortAreaLow:     {domain.FieldAreaReal, ascending},
	domain.SortDepositHigh: {domain.FieldDeposit, descending},
	domain.SortDepositLow:  {domain.FieldDeposit, ascending},
	domain.SortRentHigh:    {domain.FieldRent, descending},
	domain.SortRentLow:     {domain.FieldRent, ascending},
}

// SortInPlace упорядочивает срез по режиму. Сортировка стабильная,
// default и неизвестные режимы порядок не меняют.
func SortInPlace(listings []domain.Listing, mode domain.SortMode) {
	if len(listings) < 2 {
		return
	}

	switch mode {
	case domain.SortLatest:
		sort.SliceStable(listings, func(i, j int) bool {
			return compareIDs(listings[i].ID, listings[j].ID) > 0
		})
	case domain.SortOldest:
		sort.SliceStable(listings, func(i, j int) bool {
			return compareIDs(listings[i].ID, listings[j].ID) < 0
		})
	default:
		key, ok := numericModes[mode]
		if !ok {
			return
		}
		// ключи считаются один раз, а не в каждом сравнении
		keys := make([]float64, len(listings))
		for i, l := range listings {
			keys[i] = numberOrZero(l.Field(key.field))
		}
		sort.Stable(&byKey{listings: listings, keys: keys, dir: key.dir})
	}
}

type byKey struct {
	listings []domain.Listing
	keys     []float64
	dir      direction
}

func (b *byKey) Len() int { return len(b.listings) }

func (b *byKey) Less(i, j int) bool {
	if b.dir == ascending {
		return b.keys[i] < b.keys[j]
	}
	return b.keys[i] > b.keys[j]
}

func (b *byKey) Swap(i, j int) {
	b.listings[i], b.listings[j] = b.listings[j], b.listings[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// numberOrZero - отсутствующее или неразборчивое значение сортируется как 0.
func numberOrZero(raw string) float64 {
	v, ok := filter.ParseNumber(raw)
	if !ok {
		return 0
	}
	return v
}

// compareIDs сравнивает идентификаторы как числа, если оба числовые, и как строки,
// если оба нечисловые. Числовые всегда идут раньше нечисловых. Пустой id равен 0.
func compareIDs(a, b domain.ListingID) int {
	na, okA := idNumber(a)
	nb, okB := idNumber(b)
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case !okA && !okB:
		return strings.Compare(string(a), string(b))
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

func idNumber(id domain.ListingID) (float64, bool) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil && !math.IsNaN(v)
}
