package rest

import (
	"briefing-service/internal/adapters/notifier"
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"briefing-service/internal/core/port/usecases_port"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultPageLimit = 50

// UseCases - все операции над сессией, которые отдает REST API.
type UseCases struct {
	OpenSession     usecases_port.OpenSessionUseCasePort
	CloseSession    usecases_port.CloseSessionUseCasePort
	ReloadListings  usecases_port.ReloadListingsUseCasePort
	ApplyFilters    usecases_port.ApplyFiltersUseCasePort
	SelectCustomer  usecases_port.SelectCustomerUseCasePort
	ClearCustomer   usecases_port.ClearCustomerUseCasePort
	AdvanceSort     usecases_port.AdvanceSortUseCasePort
	SetStatus       usecases_port.SetBriefingStatusUseCasePort
	CycleStatus     usecases_port.CycleBriefingStatusUseCasePort
	GetView         usecases_port.GetViewUseCasePort
	GetBriefingList usecases_port.GetBriefingListUseCasePort
	EditField       usecases_port.EditBriefingFieldUseCasePort
	GetClusters     usecases_port.GetClusterSummaryUseCasePort
}

type viewSubscriber interface {
	AddClient(sessionID string) notifier.ClientChannel
	RemoveClient(sessionID string, ch notifier.ClientChannel)
}

type BriefingHandler struct {
	uc         UseCases
	subscriber viewSubscriber
	keepAlive  time.Duration
}

func NewBriefingHandler(uc UseCases, subscriber viewSubscriber) *BriefingHandler {
	return &BriefingHandler{uc: uc, subscriber: subscriber, keepAlive: 15 * time.Second}
}

// handlerLogger - логгер запроса с именем хендлера и ID сессии из URL.
func handlerLogger(r *http.Request, name string) port.LoggerPort {
	fields := port.Fields{"handler": name}
	if id := chi.URLParam(r, "sessionID"); id != "" {
		fields["session_id"] = id
	}
	return contextkeys.LoggerFromContext(r.Context()).WithFields(fields)
}

// writeUseCaseError отвечает кодом по типу ошибки; 5xx пишется в лог как ошибка.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, op string, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" use case failed", err, nil)
		WriteJSONError(w, status, "Internal error")
		return
	}
	logger.Warn(op+" rejected", port.Fields{"error": err.Error(), "status_code": status})
	WriteJSONError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *BriefingHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "OpenSession")
	viewer, ok := contextkeys.ViewerFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	snap, err := h.uc.OpenSession.Execute(r.Context(), viewer.UserID, viewer.Role)
	if err != nil {
		writeUseCaseError(w, logger, "OpenSession", err)
		return
	}
	logger.Info("Session opened", port.Fields{"session_id": snap.ID})
	RespondWithJSON(w, http.StatusCreated, toSessionResponse(snap))
}

func (h *BriefingHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CloseSession")
	if err := h.uc.CloseSession.Execute(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeUseCaseError(w, logger, "CloseSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BriefingHandler) GetView(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetView")

	q := viewQuery{Limit: defaultPageLimit}
	if err := decodeQuery(&q, r.URL.Query()); err != nil {
		logger.Warn("Invalid query parameters", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if q.Limit < 0 || q.Offset < 0 {
		WriteJSONError(w, http.StatusBadRequest, "limit and offset must not be negative")
		return
	}

	view, err := h.uc.GetView.Execute(r.Context(), chi.URLParam(r, "sessionID"), q.Limit, q.Offset)
	if err != nil {
		writeUseCaseError(w, logger, "GetView", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, viewResponse{
		viewSummaryResponse: toViewSummary(view),
		Items:               view.Items,
		Limit:               q.Limit,
		Offset:              q.Offset,
	})
}

func (h *BriefingHandler) ReloadListings(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ReloadListings")
	snap, err := h.uc.ReloadListings.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeUseCaseError(w, logger, "ReloadListings", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (h *BriefingHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ApplyFilters")
	var req filtersRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}

	snap, err := h.uc.ApplyFilters.Execute(r.Context(), chi.URLParam(r, "sessionID"), toFilterUpdate(req))
	if err != nil {
		writeUseCaseError(w, logger, "ApplyFilters", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (h *BriefingHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SelectCustomer")
	var req customerRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}
	if req.CustomerID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'customer_id' is required")
		return
	}

	snap, err := h.uc.SelectCustomer.Execute(r.Context(), chi.URLParam(r, "sessionID"), req.CustomerID)
	if err != nil {
		writeUseCaseError(w, logger, "SelectCustomer", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (h *BriefingHandler) ClearCustomer(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ClearCustomer")
	snap, err := h.uc.ClearCustomer.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeUseCaseError(w, logger, "ClearCustomer", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (h *BriefingHandler) AdvanceSort(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "AdvanceSort")
	family := domain.SortFamily(chi.URLParam(r, "family"))

	snap, err := h.uc.AdvanceSort.Execute(r.Context(), chi.URLParam(r, "sessionID"), family)
	if err != nil {
		writeUseCaseError(w, logger, "AdvanceSort", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (h *BriefingHandler) SetBriefingStatus(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SetBriefingStatus")
	var req briefingStatusRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}
	status, err := domain.ParseBriefingStatus(req.Status)
	if err != nil {
		writeUseCaseError(w, logger, "SetBriefingStatus", err)
		return
	}

	change, snap, err := h.uc.SetStatus.Execute(r.Context(),
		chi.URLParam(r, "sessionID"), domain.ListingID(chi.URLParam(r, "listingID")), status)
	if err != nil {
		writeUseCaseError(w, logger, "SetBriefingStatus", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, statusChangeResponse{Change: change, Session: toSessionResponse(snap)})
}

func (h *BriefingHandler) CycleBriefingStatus(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CycleBriefingStatus")
	change, snap, err := h.uc.CycleStatus.Execute(r.Context(),
		chi.URLParam(r, "sessionID"), domain.ListingID(chi.URLParam(r, "listingID")))
	if err != nil {
		writeUseCaseError(w, logger, "CycleBriefingStatus", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, statusChangeResponse{Change: change, Session: toSessionResponse(snap)})
}

func (h *BriefingHandler) GetBriefingList(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetBriefingList")
	var q briefingListQuery
	if err := decodeQuery(&q, r.URL.Query()); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.uc.GetBriefingList.Execute(r.Context(), chi.URLParam(r, "sessionID"), domain.ParseViewMode(q.View))
	if err != nil {
		writeUseCaseError(w, logger, "GetBriefingList", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBriefingListResponse(list))
}

func (h *BriefingHandler) EditBriefingField(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "EditBriefingField")
	var req overlayRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}

	fields, err := h.uc.EditField.Execute(r.Context(),
		chi.URLParam(r, "sessionID"), domain.ListingID(chi.URLParam(r, "listingID")), req.Field, req.Value)
	if err != nil {
		writeUseCaseError(w, logger, "EditBriefingField", err)
		return
	}
	if fields == nil {
		fields = map[string]string{}
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func (h *BriefingHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetClusters")
	var q clusterQuery
	if err := decodeQuery(&q, r.URL.Query()); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	clusters, err := h.uc.GetClusters.Execute(r.Context(), chi.URLParam(r, "sessionID"), q.Precision)
	if err != nil {
		writeUseCaseError(w, logger, "GetClusters", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toClusterResponses(clusters))
}

// Subscribe - поток SSE с событиями пересборки вида сессии.
func (h *BriefingHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "Subscribe")
	sessionID := chi.URLParam(r, "sessionID")

	// подписка только на свою и существующую сессию
	if _, err := h.uc.GetView.Execute(r.Context(), sessionID, 1, 0); err != nil {
		writeUseCaseError(w, logger, "Subscribe", err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.subscriber.AddClient(sessionID)
	defer h.subscriber.RemoveClient(sessionID, ch)

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-ch:
			if _, err := w.Write(data); err != nil {
				logger.Warn("Error writing to client, closing SSE connection", port.Fields{"error": err.Error()})
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected.", nil)
			return
		}
	}
}
