package pipeline

import (
	"briefing-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func briefingSession() *domain.Session {
	sess := newSession(
		item("1", map[string]string{domain.FieldRegion: "역삼동", domain.FieldRent: "100"}),
		item("2", map[string]string{domain.FieldRegion: "서초동", domain.FieldRent: "300"}),
		item("3", map[string]string{domain.FieldRegion: "역삼동", domain.FieldRent: "200"}),
	)
	sess.SortMode = domain.SortRentHigh
	sess.Briefing = domain.BriefingState{
		CustomerID: "42",
		Statuses: map[domain.ListingID]domain.BriefingStatus{
			"1": domain.BriefingPending,
			"2": domain.BriefingOnHold,
			"3": domain.BriefingCompleted,
		},
	}
	return sess
}

func TestBriefingListFiltersAndSorts(t *testing.T) {
	sess := briefingSession()
	sess.TopFilters = domain.FilterSet{domain.KeyRegion: "역삼"}

	list := BriefingList(sess, domain.ViewOriginal)

	require.Len(t, list.Items, 2)
	assert.Equal(t, domain.ListingID("3"), list.Items[0].Listing.ID)
	assert.Equal(t, domain.BriefingCompleted, list.Items[0].Status)
	assert.Equal(t, domain.ListingID("1"), list.Items[1].Listing.ID)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 3, list.Briefing)
	assert.Equal(t, 2, list.Filtered)
}

func TestBriefingListSkipsNormal(t *testing.T) {
	sess := briefingSession()
	delete(sess.Briefing.Statuses, "2")

	list := BriefingList(sess, domain.ViewOriginal)

	assert.Equal(t, 2, list.Briefing)
	for _, it := range list.Items {
		assert.NotEqual(t, domain.ListingID("2"), it.Listing.ID)
	}
}

func TestBriefingListEditedMode(t *testing.T) {
	sess := briefingSession()
	sess.Overlay.Set("1", domain.FieldNote, "주차 가능")

	original := BriefingList(sess, domain.ViewOriginal)
	edited := BriefingList(sess, domain.ViewEdited)

	find := func(list domain.BriefingListView, id domain.ListingID) domain.BriefingListItem {
		for _, it := range list.Items {
			if it.Listing.ID == id {
				return it
			}
		}
		t.Fatalf("listing %s not found", id)
		return domain.BriefingListItem{}
	}

	assert.Empty(t, find(original, "1").Listing.Field(domain.FieldNote))
	assert.True(t, find(original, "1").Edited)
	assert.Equal(t, "주차 가능", find(edited, "1").Listing.Field(domain.FieldNote))
	assert.Equal(t, "역삼동", find(edited, "1").Listing.Field(domain.FieldRegion))
	// канонические данные не изменились
	assert.Empty(t, sess.Listings[0].Field(domain.FieldNote))
}

func TestBriefingListWithoutCustomerIsEmpty(t *testing.T) {
	sess := briefingSession()
	sess.Briefing.CustomerID = ""

	list := BriefingList(sess, domain.ViewEdited)

	assert.Empty(t, list.Items)
	assert.Equal(t, domain.ViewEdited, list.Mode)
}
