package backend_client

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultPageLimit = 1000
	// maxPages ограничивает выгрузку, если бэкенд неверно считает total
	maxPages = 1000
)

// BackendAPIClient ходит в бэкенд объявлений и клиентов.
type BackendAPIClient struct {
	baseURL    string
	pageLimit  int
	httpClient *http.Client
}

func NewBackendAPIClient(baseURL string, pageLimit int, timeout time.Duration) *BackendAPIClient {
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	return &BackendAPIClient{
		baseURL:    baseURL,
		pageLimit:  pageLimit,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BackendAPIClient) doRequest(ctx context.Context, method, url, userID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	// бэкенд определяет пользователя (и его видимость) по X-User
	req.Header.Set("X-User", userID)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// getJSON выполняет GET и декодирует ответ 200 в out.
func (c *BackendAPIClient) getJSON(ctx context.Context, url, userID string, out interface{}) (int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, url, userID)
	if err != nil {
		return 0, fmt.Errorf("request to backend failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("backend returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode backend response: %w", err)
	}
	return resp.StatusCode, nil
}

// FetchListings реализует ListingSourcePort: выгружает все страницы /api/listings.
func (c *BackendAPIClient) FetchListings(ctx context.Context, userID string) ([]domain.Listing, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BackendAPIClient",
		"method":    "FetchListings",
		"user_id":   userID,
	})

	var result []domain.Listing
	offset := 0
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(c.pageLimit))
		q.Set("offset", strconv.Itoa(offset))

		var body listingsPageResponse
		if _, err := c.getJSON(ctx, c.baseURL+"/api/listings?"+q.Encode(), userID, &body); err != nil {
			clientLogger.Error("Failed to fetch listings page", err, port.Fields{"offset": offset})
			return nil, err
		}

		for _, dto := range body.Items {
			result = append(result, toDomainListing(dto))
		}

		offset += len(body.Items)
		if len(body.Items) == 0 || offset >= body.Total {
			break
		}
	}

	clientLogger.Info("Listings fetched from backend", port.Fields{"count": len(result)})
	return result, nil
}

// GetCustomer реализует CustomerSourcePort.
func (c *BackendAPIClient) GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "BackendAPIClient",
		"method":      "GetCustomer",
		"customer_id": customerID,
	})

	var dto customerResponse
	status, err := c.getJSON(ctx, c.baseURL+"/api/customers/"+url.PathEscape(customerID), userID, &dto)
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, customerID)
	}
	if err != nil {
		clientLogger.Error("Failed to fetch customer", err, port.Fields{"status_code": status})
		return nil, err
	}

	id := string(dto.ID)
	if id == "" {
		id = customerID
	}
	return &domain.Customer{
		ID:         id,
		Name:       dto.Name,
		Manager:    dto.Manager,
		FilterData: dto.filterDataString(),
		Regions:    string(dto.Regions),
		Floor:      string(dto.Floor),
		Area:       string(dto.Area),
		Deposit:    string(dto.Deposit),
		Rent:       string(dto.Rent),
		Premium:    string(dto.Premium),
	}, nil
}

func toDomainListing(dto listingResponse) domain.Listing {
	l := domain.Listing{
		ID:          domain.ListingID(dto.ID),
		RawRowIndex: dto.RawRowIndex,
		AddressFull: dto.AddressFull,
		Fields:      make(map[string]string, len(dto.Fields)),
		StatusRaw:   dto.StatusRaw,
	}
	for k, v := range dto.Fields {
		l.Fields[k] = string(v)
	}
	if len(dto.AddressComp) > 0 {
		l.AddressComp = make(map[string]string, len(dto.AddressComp))
		for k, v := range dto.AddressComp {
			l.AddressComp[k] = string(v)
		}
	}
	if dto.Coords != nil {
		l.Coords = domain.Coords{Lat: dto.Coords.Lat, Lng: dto.Coords.Lng}
	}
	return l
}
