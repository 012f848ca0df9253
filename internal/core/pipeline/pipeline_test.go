package pipeline

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/sorting"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func newSession(listings ...domain.Listing) *domain.Session {
	sess := domain.NewSession("s1", "u1", domain.RoleAdmin, time.Unix(0, 0))
	sess.Listings = listings
	return sess
}

func item(id string, fields map[string]string) domain.Listing {
	return domain.Listing{ID: domain.ListingID(id), Fields: fields}
}

func ids(listings []domain.Listing) []domain.ListingID {
	out := make([]domain.ListingID, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestComposeFiltersSortsAndCounts(t *testing.T) {
	sess := newSession(
		item("1", map[string]string{domain.FieldDeposit: "3000", domain.FieldAreaReal: "10"}),
		item("2", map[string]string{domain.FieldDeposit: "8000", domain.FieldAreaReal: "40"}),
		item("3", map[string]string{domain.FieldDeposit: "", domain.FieldAreaReal: "5"}),
	)
	sess.TopFilters = domain.FilterSet{domain.KeyDeposit: "0-5000"}
	sess.SortMode = domain.SortAreaLow

	view := Compose(sess)

	want := domain.ListingView{
		Items:     []domain.Listing{sess.Listings[2], sess.Listings[0]},
		Total:     2,
		Filtered:  2,
		Loaded:    3,
		SortMode:  domain.SortAreaLow,
		Effective: domain.FilterSet{domain.KeyDeposit: "0-5000"},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, view.Items, sess.View.Items)
	// рабочий набор не переупорядочен
	assert.Equal(t, []domain.ListingID{"1", "2", "3"}, ids(sess.Listings))
}

func TestComposeTopBarOverridesCustomerFilter(t *testing.T) {
	sess := newSession(
		item("1", map[string]string{domain.FieldRegion: "강남구 역삼동"}),
		item("2", map[string]string{domain.FieldRegion: "서초구 서초동"}),
	)
	sess.CustomerFilters = domain.FilterSet{domain.KeyRegion: "강남"}
	sess.TopFilters = domain.FilterSet{domain.KeyRegion: "서초"}

	view := Compose(sess)

	assert.Equal(t, []domain.ListingID{"2"}, ids(view.Items))
	assert.Equal(t, "서초", view.Effective[domain.KeyRegion])
}

func TestComposeBriefingNarrowing(t *testing.T) {
	build := func() *domain.Session {
		sess := newSession(item("1", nil), item("2", nil), item("3", nil))
		sess.SortMode = domain.SortOldest
		sess.Briefing = domain.BriefingState{
			CustomerID: "42",
			Statuses: map[domain.ListingID]domain.BriefingStatus{
				"1": domain.BriefingPending,
				"3": domain.BriefingCompleted,
			},
		}
		return sess
	}

	t.Run("only pending ticked", func(t *testing.T) {
		sess := build()
		sess.BriefingChecks = domain.BriefingChecks{domain.BriefingPending: true}

		view := Compose(sess)

		assert.Equal(t, []domain.ListingID{"1"}, ids(view.Items))
		assert.Equal(t, 3, view.Total)
		assert.Equal(t, 1, view.Filtered)
	})

	t.Run("nothing ticked shows everything", func(t *testing.T) {
		sess := build()
		sess.BriefingChecks = domain.BriefingChecks{}

		view := Compose(sess)

		assert.Equal(t, []domain.ListingID{"1", "2", "3"}, ids(view.Items))
		assert.Equal(t, view.Total, view.Filtered)
	})

	t.Run("normal covers unmarked listings", func(t *testing.T) {
		sess := build()
		sess.BriefingChecks = domain.BriefingChecks{domain.BriefingNormal: true, domain.BriefingCompleted: true}

		view := Compose(sess)

		assert.Equal(t, []domain.ListingID{"2", "3"}, ids(view.Items))
	})

	t.Run("without customer every listing is normal", func(t *testing.T) {
		sess := build()
		sess.Briefing.CustomerID = ""
		sess.BriefingChecks = domain.BriefingChecks{domain.BriefingPending: true}

		view := Compose(sess)

		assert.Empty(t, view.Items)
		assert.Equal(t, 3, view.Total)
	})
}

func TestRefreshResetsCyclesButKeepsMode(t *testing.T) {
	sess := newSession(item("1", nil))
	mode, err := sorting.Advance(sess.SortCycles, domain.FamilyArea)
	require.NoError(t, err)
	sess.SortMode = mode

	Refresh(sess)

	assert.Equal(t, domain.SortAreaLow, sess.SortMode)
	assert.Equal(t, 0, sess.SortCycles[domain.FamilyArea])
}

func TestComposeKeepsCycles(t *testing.T) {
	sess := newSession(item("1", nil))
	_, err := sorting.Advance(sess.SortCycles, domain.FamilyRent)
	require.NoError(t, err)

	Compose(sess)

	assert.Equal(t, 1, sess.SortCycles[domain.FamilyRent])
}

func TestComposeCarriesFetchError(t *testing.T) {
	sess := newSession()
	sess.FetchError = "backend unavailable"

	view := Compose(sess)

	assert.Empty(t, view.Items)
	assert.Zero(t, view.Loaded)
	assert.Equal(t, "backend unavailable", view.FetchError)
}

func TestComposeWithEmptyFiltersIsIdentityBeforeSort(t *testing.T) {
	sess := newSession(item("2", nil), item("1", nil), item("3", nil))
	sess.SortMode = domain.SortDefault
	sess.TopFilters = domain.FilterSet{domain.KeyRegion: "   "}

	view := Compose(sess)

	assert.Equal(t, []domain.ListingID{"2", "1", "3"}, ids(view.Items))
}
