package sorting

import (
	"briefing-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withField(id, field, value string) domain.Listing {
	return domain.Listing{ID: domain.ListingID(id), Fields: map[string]string{field: value}}
}

func order(listings []domain.Listing) []domain.ListingID {
	out := make([]domain.ListingID, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestSortAreaLow(t *testing.T) {
	listings := []domain.Listing{
		withField("a", domain.FieldAreaReal, "10"),
		withField("b", domain.FieldAreaReal, "5"),
		withField("c", domain.FieldAreaReal, "20"),
	}

	SortInPlace(listings, domain.SortAreaLow)

	assert.Equal(t, []domain.ListingID{"b", "a", "c"}, order(listings))
}

func TestSortNumericModes(t *testing.T) {
	build := func() []domain.Listing {
		return []domain.Listing{
			{ID: "1", Fields: map[string]string{domain.FieldDeposit: "3000", domain.FieldRent: "150"}},
			{ID: "2", Fields: map[string]string{domain.FieldDeposit: "1,000", domain.FieldRent: "협의"}},
			{ID: "3", Fields: map[string]string{domain.FieldDeposit: "5000", domain.FieldRent: "90"}},
		}
	}
	tests := []struct {
		mode domain.SortMode
		want []domain.ListingID
	}{
		{domain.SortDepositLow, []domain.ListingID{"2", "1", "3"}},
		{domain.SortDepositHigh, []domain.ListingID{"3", "1", "2"}},
		// "협의" не число и сортируется как 0
		{domain.SortRentLow, []domain.ListingID{"2", "3", "1"}},
		{domain.SortRentHigh, []domain.ListingID{"1", "3", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			listings := build()
			SortInPlace(listings, tt.mode)
			assert.Equal(t, tt.want, order(listings))
		})
	}
}

func TestSortByID(t *testing.T) {
	listings := []domain.Listing{{ID: "9"}, {ID: "10"}, {ID: "2"}}

	SortInPlace(listings, domain.SortLatest)
	assert.Equal(t, []domain.ListingID{"10", "9", "2"}, order(listings))

	SortInPlace(listings, domain.SortOldest)
	assert.Equal(t, []domain.ListingID{"2", "9", "10"}, order(listings))
}

func TestSortMixedIDsIndependentOfInputOrder(t *testing.T) {
	inputs := [][]domain.ListingID{
		{"2", "10", "1a"},
		{"1a", "2", "10"},
		{"10", "1a", "2"},
	}
	for _, in := range inputs {
		listings := make([]domain.Listing, len(in))
		for i, id := range in {
			listings[i] = domain.Listing{ID: id}
		}

		SortInPlace(listings, domain.SortOldest)
		assert.Equal(t, []domain.ListingID{"2", "10", "1a"}, order(listings), in)

		SortInPlace(listings, domain.SortLatest)
		assert.Equal(t, []domain.ListingID{"1a", "10", "2"}, order(listings), in)
	}
}

func TestSortDefaultKeepsOrder(t *testing.T) {
	listings := []domain.Listing{{ID: "2"}, {ID: "1"}, {ID: "3"}}

	SortInPlace(listings, domain.SortDefault)
	assert.Equal(t, []domain.ListingID{"2", "1", "3"}, order(listings))

	SortInPlace(listings, domain.SortMode("index"))
	assert.Equal(t, []domain.ListingID{"2", "1", "3"}, order(listings))
}

func TestSortIsStableAcrossReapplication(t *testing.T) {
	listings := []domain.Listing{
		withField("a", domain.FieldAreaReal, "10"),
		withField("b", domain.FieldAreaReal, "10"),
		withField("c", domain.FieldAreaReal, ""),
		withField("d", domain.FieldAreaReal, "30"),
	}

	SortInPlace(listings, domain.SortAreaHigh)
	first := order(listings)
	SortInPlace(listings, domain.SortAreaHigh)

	assert.Equal(t, []domain.ListingID{"d", "a", "b", "c"}, first)
	assert.Equal(t, first, order(listings))
}

func TestAdvance(t *testing.T) {
	positions := domain.NewSortPositions()

	mode, err := Advance(positions, domain.FamilyArea)
	require.NoError(t, err)
	assert.Equal(t, domain.SortAreaLow, mode)

	mode, err = Advance(positions, domain.FamilyArea)
	require.NoError(t, err)
	assert.Equal(t, domain.SortDefault, mode)

	mode, err = Advance(positions, domain.FamilyArea)
	require.NoError(t, err)
	assert.Equal(t, domain.SortAreaHigh, mode)

	// другие кнопки не сдвигаются
	assert.Equal(t, 0, positions[domain.FamilyDeposit])

	mode, err = Advance(positions, domain.FamilyDeposit)
	require.NoError(t, err)
	assert.Equal(t, domain.SortDepositHigh, mode)
	assert.Equal(t, 0, positions[domain.FamilyArea])
}

func TestAdvancePlainModeAndErrors(t *testing.T) {
	positions := domain.NewSortPositions()

	mode, err := Advance(positions, domain.SortFamily("rent_high"))
	require.NoError(t, err)
	assert.Equal(t, domain.SortRentHigh, mode)

	_, err = Advance(positions, domain.FamilyIndex)
	assert.ErrorIs(t, err, domain.ErrSortNotSupported)

	_, err = Advance(positions, domain.SortFamily("price"))
	assert.ErrorIs(t, err, domain.ErrUnknownSortMode)
}

func TestReset(t *testing.T) {
	positions := domain.NewSortPositions()
	_, _ = Advance(positions, domain.FamilyLatest)
	_, _ = Advance(positions, domain.FamilyRent)

	Reset(positions)

	for f := range domain.SortCycles {
		assert.Equal(t, 0, positions[f], f)
	}
}
