package rest

import (
	"briefing-service/internal/adapters/memory"
	"briefing-service/internal/adapters/metrics"
	"briefing-service/internal/adapters/notifier"
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/usecase"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubListings struct {
	listings []domain.Listing
}

func (s stubListings) FetchListings(context.Context, string) ([]domain.Listing, error) {
	return s.listings, nil
}

type stubCustomers struct{}

func (stubCustomers) GetCustomer(_ context.Context, _, id string) (*domain.Customer, error) {
	if id != "c1" {
		return nil, domain.ErrCustomerNotFound
	}
	return &domain.Customer{ID: "c1", Name: "김고객", FilterData: `{"deposit":"5000"}`}, nil
}

type stubEvents struct {
	published []domain.BriefingStatusChanged
}

func (s *stubEvents) PublishStatusChanged(_ context.Context, e domain.BriefingStatusChanged) error {
	s.published = append(s.published, e)
	return nil
}

func coord(v float64) *float64 { return &v }

func fixtureListings() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Fields: map[string]string{domain.FieldRegion: "역삼동", domain.FieldDeposit: "3000"},
			Coords: domain.Coords{Lat: coord(37.5008), Lng: coord(127.0365)}},
		{ID: "2", Fields: map[string]string{domain.FieldRegion: "서초동", domain.FieldDeposit: "8000"},
			Coords: domain.Coords{Lat: coord(37.4918), Lng: coord(127.0078)}},
		{ID: "3", Fields: map[string]string{domain.FieldRegion: "역삼동", domain.FieldDeposit: "1000"}},
	}
}

type testAPI struct {
	handler http.Handler
	events  *stubEvents
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := contextkeys.LoggerFromContext(context.Background())
	repo := memory.NewSessionRepository(time.Hour, logger)
	storage := memory.NewBriefingStorage()
	sse := notifier.NewSSENotifier(logger)
	t.Cleanup(sse.Close)
	m := metrics.NoopMetrics{}
	events := &stubEvents{}
	listings := stubListings{listings: fixtureListings()}

	h := NewBriefingHandler(UseCases{
		OpenSession:     usecase.NewOpenSessionUseCase(repo, listings, sse, m),
		CloseSession:    usecase.NewCloseSessionUseCase(repo, m),
		ReloadListings:  usecase.NewReloadListingsUseCase(repo, listings, sse, m),
		ApplyFilters:    usecase.NewApplyFiltersUseCase(repo, sse, m),
		SelectCustomer:  usecase.NewSelectCustomerUseCase(repo, stubCustomers{}, storage, sse, m),
		ClearCustomer:   usecase.NewClearCustomerUseCase(repo, storage, sse, m),
		AdvanceSort:     usecase.NewAdvanceSortUseCase(repo, sse, m),
		SetStatus:       usecase.NewSetBriefingStatusUseCase(repo, storage, events, sse, m),
		CycleStatus:     usecase.NewCycleBriefingStatusUseCase(repo, storage, events, sse, m),
		GetView:         usecase.NewGetViewUseCase(repo),
		GetBriefingList: usecase.NewGetBriefingListUseCase(repo),
		EditField:       usecase.NewEditBriefingFieldUseCase(repo),
		GetClusters:     usecase.NewGetClusterSummaryUseCase(repo),
	}, sse)
	h.keepAlive = 20 * time.Millisecond

	router := NewRouter(ServerConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	}, h, logger)
	return &testAPI{handler: router, events: events}
}

func (a *testAPI) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
		req.Header.Set("X-User-Role", "admin")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (a *testAPI) openSession(t *testing.T) sessionResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/sessions", "u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp sessionResponse
	decode(t, rec, &resp)
	return resp
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	rec = api.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestSessionsRequireUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/sessions", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOpenSessionAndPagedView(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 3, sess.View.Total)
	assert.Equal(t, 3, sess.View.Loaded)

	rec := api.do(t, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/view?limit=2&offset=1", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view viewResponse
	decode(t, rec, &view)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Total)

	rec = api.do(t, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/view?limit=abc", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForeignSessionIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)

	rec := api.do(t, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/view", "intruder", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyFilters(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)
	path := "/api/v1/sessions/" + sess.ID + "/filters"

	rec := api.do(t, http.MethodPut, path, "u1", filtersRequest{Filters: map[string]string{"region": "역삼"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp sessionResponse
	decode(t, rec, &resp)
	assert.Equal(t, 2, resp.View.Total)
	assert.Equal(t, "역삼", resp.TopFilters["region"])

	rec = api.do(t, http.MethodPut, path, "u1", filtersRequest{Filters: map[string]string{"price": "1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader("{"))
	req.Header.Set("X-User-ID", "u1")
	bad := httptest.NewRecorder()
	api.handler.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestAdvanceSort(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)
	base := "/api/v1/sessions/" + sess.ID + "/sort/"

	rec := api.do(t, http.MethodPost, base+"deposit", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp sessionResponse
	decode(t, rec, &resp)
	assert.Equal(t, domain.SortDepositHigh, resp.SortMode)

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, base+"index", "u1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, base+"price", "u1", nil).Code)
}

func TestCustomerAndBriefingFlow(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)
	base := "/api/v1/sessions/" + sess.ID

	rec := api.do(t, http.MethodPut, base+"/customer", "u1", customerRequest{CustomerID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, base+"/customer", "u1", customerRequest{CustomerID: "c1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var selected sessionResponse
	decode(t, rec, &selected)
	assert.Equal(t, "김고객", selected.CustomerName)
	assert.Equal(t, "0-5000", selected.CustomerFilters["deposit"])
	assert.Equal(t, 2, selected.View.Total)

	rec = api.do(t, http.MethodPut, base+"/briefing/1", "u1", briefingStatusRequest{Status: "pending"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var changed statusChangeResponse
	decode(t, rec, &changed)
	assert.Equal(t, domain.BriefingNormal, changed.Change.Previous)
	assert.Equal(t, domain.BriefingPending, changed.Change.Status)
	require.Len(t, api.events.published, 1)

	rec = api.do(t, http.MethodPut, base+"/briefing/1", "u1", briefingStatusRequest{Status: "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/briefing/404/cycle", "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, base+"/overlay/1", "u1", overlayRequest{Field: domain.FieldNote, Value: "통화 완료"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, base+"/briefing-list?view=edited", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list briefingListResponse
	decode(t, rec, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, domain.ViewEdited, list.Mode)
	assert.Equal(t, "통화 완료", list.Items[0].Listing.Fields[domain.FieldNote])
	assert.True(t, list.Items[0].Edited)

	rec = api.do(t, http.MethodDelete, base+"/customer", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared sessionResponse
	decode(t, rec, &cleared)
	assert.Empty(t, cleared.CustomerID)
	assert.Equal(t, 3, cleared.View.Total)
}

func TestClusters(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)

	rec := api.do(t, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/clusters?precision=4", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var clusters []clusterResponse
	decode(t, rec, &clusters)

	total := 0
	for _, c := range clusters {
		total += c.Count
		assert.Len(t, c.Geohash, 4)
	}
	assert.Equal(t, 2, total)
}

func TestCloseSession(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)
	path := "/api/v1/sessions/" + sess.ID

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, path, "u1", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, path+"/view", "u1", nil).Code)
}

func TestSubscribeStreamsViewEvents(t *testing.T) {
	api := newTestAPI(t)
	sess := api.openSession(t)
	srv := httptest.NewServer(api.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/sessions/"+sess.ID+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "u1")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	rec := api.do(t, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/sort/latest", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: view.") {
			break
		}
	}
	assert.Equal(t, "event: view.composed\n", line)
}
