package rest

import (
	"briefing-service/internal/core/domain"
)

type filtersRequest struct {
	Filters map[string]string `json:"filters"`
	// nil - чекбоксы брифинга не меняются
	Briefing map[string]bool `json:"briefing,omitempty"`
}

type customerRequest struct {
	CustomerID string `json:"customer_id"`
}

type briefingStatusRequest struct {
	Status string `json:"status"`
}

type overlayRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// параметры строки запроса, разбираются gorilla/schema
type viewQuery struct {
	Limit  int `schema:"limit"`
	Offset int `schema:"offset"`
}

type briefingListQuery struct {
	View string `schema:"view"`
}

type clusterQuery struct {
	Precision int `schema:"precision"`
}

type viewSummaryResponse struct {
	Total      int               `json:"total"`
	Filtered   int               `json:"filtered"`
	Loaded     int               `json:"loaded"`
	SortMode   domain.SortMode   `json:"sort_mode"`
	Effective  map[string]string `json:"effective_filters"`
	FetchError string            `json:"fetch_error,omitempty"`
}

type sessionResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Role            domain.ViewerRole   `json:"role"`
	CustomerID      string              `json:"customer_id,omitempty"`
	CustomerName    string              `json:"customer_name,omitempty"`
	CustomerFilters map[string]string   `json:"customer_filters"`
	TopFilters      map[string]string   `json:"top_filters"`
	BriefingChecks  map[string]bool     `json:"briefing_checks"`
	SortMode        domain.SortMode     `json:"sort_mode"`
	View            viewSummaryResponse `json:"view"`
}

type viewResponse struct {
	viewSummaryResponse
	Items  []domain.Listing `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type statusChangeResponse struct {
	Change  domain.BriefingStatusChanged `json:"change"`
	Session sessionResponse              `json:"session"`
}

type briefingItemResponse struct {
	Listing domain.Listing        `json:"listing"`
	Status  domain.BriefingStatus `json:"status"`
	Edited  bool                  `json:"edited"`
}

type briefingListResponse struct {
	Items    []briefingItemResponse `json:"items"`
	Total    int                    `json:"total"`
	Briefing int                    `json:"briefing"`
	Filtered int                    `json:"filtered"`
	Mode     domain.ViewMode        `json:"mode"`
}

type clusterResponse struct {
	Geohash    string                `json:"geohash"`
	Lat        float64               `json:"lat"`
	Lng        float64               `json:"lng"`
	Count      int                   `json:"count"`
	Size       domain.ClusterSize    `json:"size"`
	Stats      domain.BriefingStats  `json:"stats"`
	Primary    domain.BriefingStatus `json:"primary"`
	ListingIDs []domain.ListingID    `json:"listing_ids"`
}

func filterSetToMap(f domain.FilterSet) map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[string(k)] = v
	}
	return out
}

func toViewSummary(v domain.ListingView) viewSummaryResponse {
	return viewSummaryResponse{
		Total:      v.Total,
		Filtered:   v.Filtered,
		Loaded:     v.Loaded,
		SortMode:   v.SortMode,
		Effective:  filterSetToMap(v.Effective),
		FetchError: v.FetchError,
	}
}

func toSessionResponse(s domain.SessionSnapshot) sessionResponse {
	checks := make(map[string]bool, len(s.BriefingChecks))
	for st, on := range s.BriefingChecks {
		checks[string(st)] = on
	}
	return sessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		Role:            s.Role,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		CustomerFilters: filterSetToMap(s.CustomerFilters),
		TopFilters:      filterSetToMap(s.TopFilters),
		BriefingChecks:  checks,
		SortMode:        s.SortMode,
		View:            toViewSummary(s.View),
	}
}

func toFilterUpdate(req filtersRequest) domain.FilterUpdate {
	update := domain.FilterUpdate{Top: make(domain.FilterSet, len(req.Filters))}
	for k, v := range req.Filters {
		update.Top[domain.FilterKey(k)] = v
	}
	if req.Briefing != nil {
		update.Checks = make(domain.BriefingChecks, len(req.Briefing))
		for st, on := range req.Briefing {
			update.Checks[domain.BriefingStatus(st)] = on
		}
	}
	return update
}

func toBriefingListResponse(v domain.BriefingListView) briefingListResponse {
	items := make([]briefingItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = briefingItemResponse{Listing: it.Listing, Status: it.Status, Edited: it.Edited}
	}
	return briefingListResponse{
		Items:    items,
		Total:    v.Total,
		Briefing: v.Briefing,
		Filtered: v.Filtered,
		Mode:     v.Mode,
	}
}

func toClusterResponses(clusters []domain.ClusterSummary) []clusterResponse {
	out := make([]clusterResponse, len(clusters))
	for i, c := range clusters {
		out[i] = clusterResponse{
			Geohash:    c.Geohash,
			Lat:        c.Lat,
			Lng:        c.Lng,
			Count:      c.Count,
			Size:       c.Size,
			Stats:      c.Stats,
			Primary:    c.Primary,
			ListingIDs: c.ListingIDs,
		}
	}
	return out
}
