package rest

import (
	"briefing-service/internal/core/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// decodeQuery раскладывает параметры строки запроса в структуру с тегами schema.
func decodeQuery(dst interface{}, query url.Values) error {
	return queryDecoder.Decode(dst, query)
}

// WriteJSONError отправляет ошибку в едином формате {"error": "..."}.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusForError переводит доменную ошибку в HTTP-код.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidBriefingStatus),
		errors.Is(err, domain.ErrUnknownSortMode),
		errors.Is(err, domain.ErrSortNotSupported),
		errors.Is(err, domain.ErrInvalidFilterKey),
		errors.Is(err, domain.ErrInvalidField):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
