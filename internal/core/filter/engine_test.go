package filter

import (
	"briefing-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(id string, fields map[string]string) domain.Listing {
	return domain.Listing{ID: domain.ListingID(id), Fields: fields}
}

func ids(listings []domain.Listing) []domain.ListingID {
	out := make([]domain.ListingID, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestApplyDepositRangeKeepsMissingValues(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldDeposit: "3000"}),
		listing("2", map[string]string{domain.FieldDeposit: "8000"}),
		listing("3", map[string]string{domain.FieldDeposit: ""}),
	}

	got := Apply(listings, domain.FilterSet{domain.KeyDeposit: "0-5000"})

	assert.Equal(t, []domain.ListingID{"1", "3"}, ids(got))
}

func TestApplyTextTokensOrWithinFieldAndAcrossFields(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldRegion: "역삼동", domain.FieldBuilding: "센터빌딩"}),
		listing("2", map[string]string{domain.FieldRegion: "서초동", domain.FieldBuilding: "타워"}),
		listing("3", map[string]string{domain.FieldRegion: "서초동", domain.FieldBuilding: "센터"}),
		listing("4", map[string]string{domain.FieldBuilding: "센터"}),
	}

	got := Apply(listings, domain.FilterSet{
		domain.KeyRegion:   "역삼, 서초",
		domain.KeyBuilding: "센터",
	})

	assert.Equal(t, []domain.ListingID{"1", "3"}, ids(got))
}

func TestApplyFloorRange(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldFloor: "지하1층"}),
		listing("2", map[string]string{domain.FieldFloor: "1층"}),
		listing("3", map[string]string{domain.FieldFloor: "3층"}),
		listing("4", map[string]string{domain.FieldFloor: "옥탑"}),
	}

	got := Apply(listings, domain.FilterSet{domain.KeyFloor: "지하1~1"})

	assert.Equal(t, []domain.ListingID{"1", "2", "4"}, ids(got))
}

func TestApplyAreaSingleValueMeansAtLeast(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldAreaReal: "15"}),
		listing("2", map[string]string{domain.FieldAreaReal: "25평"}),
		listing("3", map[string]string{domain.FieldAreaReal: "20"}),
	}

	got := Apply(listings, domain.FilterSet{domain.KeyAreaReal: "20"})

	assert.Equal(t, []domain.ListingID{"2", "3"}, ids(got))
}

func TestApplyRentSingleValueIsExact(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldRent: "200"}),
		listing("2", map[string]string{domain.FieldRent: "150"}),
	}

	got := Apply(listings, domain.FilterSet{domain.KeyRent: "200"})

	assert.Equal(t, []domain.ListingID{"1"}, ids(got))
}

func TestApplyEmptyFiltersKeepEverything(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldRegion: "역삼동"}),
		listing("2", nil),
	}

	got := Apply(listings, domain.FilterSet{domain.KeyRegion: "  ", domain.KeyDeposit: "협의"})

	assert.Equal(t, []domain.ListingID{"1", "2"}, ids(got))
	assert.True(t, Compile(domain.FilterSet{}).Empty())
}

func TestApplyIsMonotonic(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldRegion: "역삼동", domain.FieldDeposit: "1000"}),
		listing("2", map[string]string{domain.FieldRegion: "서초동", domain.FieldDeposit: "9000"}),
		listing("3", map[string]string{domain.FieldRegion: "역삼동", domain.FieldDeposit: "9000"}),
	}
	base := domain.FilterSet{domain.KeyRegion: "역삼"}

	for _, extra := range []domain.FilterSet{
		{domain.KeyDeposit: "0-5000"},
		{domain.KeyNote: "급매"},
		{domain.KeyFloor: "1"},
	} {
		narrowed := base.Clone()
		for k, v := range extra {
			narrowed[k] = v
		}
		assert.LessOrEqual(t, len(Apply(listings, narrowed)), len(Apply(listings, base)))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	listings := []domain.Listing{
		listing("1", map[string]string{domain.FieldDeposit: "9000"}),
		listing("2", map[string]string{domain.FieldDeposit: "1000"}),
	}

	_ = Apply(listings, domain.FilterSet{domain.KeyDeposit: "0-5000"})

	require.Len(t, listings, 2)
	assert.Equal(t, domain.ListingID("1"), listings[0].ID)
}

func TestEffective(t *testing.T) {
	t.Run("empty top-bar value never overrides", func(t *testing.T) {
		got := Effective(
			domain.FilterSet{domain.KeyRegion: "강남"},
			domain.FilterSet{domain.KeyRegion: ""},
		)
		assert.Equal(t, "강남", got[domain.KeyRegion])
	})
	t.Run("non-empty top-bar value overrides and is trimmed", func(t *testing.T) {
		got := Effective(
			domain.FilterSet{domain.KeyRegion: "강남", domain.KeyRent: "0-200"},
			domain.FilterSet{domain.KeyRegion: " 서초 ", domain.KeyStore: "카페"},
		)
		assert.Equal(t, domain.FilterSet{
			domain.KeyRegion: "서초",
			domain.KeyRent:   "0-200",
			domain.KeyStore:  "카페",
		}, got)
	})
	t.Run("customer filter is not mutated", func(t *testing.T) {
		customer := domain.FilterSet{domain.KeyRegion: "강남"}
		_ = Effective(customer, domain.FilterSet{domain.KeyRegion: "서초"})
		assert.Equal(t, "강남", customer[domain.KeyRegion])
	})
	t.Run("key in neither source stays absent", func(t *testing.T) {
		got := Effective(domain.FilterSet{}, domain.FilterSet{domain.KeyNote: "  "})
		_, ok := got[domain.KeyNote]
		assert.False(t, ok)
	})
}
