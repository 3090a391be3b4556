package capacityclient

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

const userIDHeader = "X-User-ID"

// Client клиент HTTP API вместимости площадок
// Повторы запросов не выполняются
type Client struct {
	http *resty.Client
}

// NewClient создает клиента; userID передается в каждом запросе заголовком X-User-ID
func NewClient(baseURL, userID string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader(userIDHeader, userID)

	return &Client{http: httpClient}
}

// GetOverview получает список площадок категории и счетчики по всем площадкам
func (c *Client) GetOverview(ctx context.Context, date time.Time, category domain.Category) (*Overview, error) {
	req := c.http.R().
		SetContext(ctx).
		SetResult(&overviewPayload{}).
		SetError(&errorPayload{})
	setDate(req, date)
	if category != "" {
		req.SetQueryParam("category", string(category))
	}

	resp, err := req.Get("/api/v1/capacity")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	payload, ok := resp.Result().(*overviewPayload)
	if !ok || payload == nil {
		return nil, fmt.Errorf("GetOverview: unexpected payload")
	}
	return payload.toOverview(), nil
}

// UpdateCapacity отправляет новые лимиты площадки и возвращает обновленную запись
func (c *Client) UpdateCapacity(ctx context.Context, key domain.SiteKey, date time.Time, body UpdateRequest) (*domain.CapacitySite, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{
			"source": string(key.Source),
			"id":     key.ID,
		}).
		SetBody(body).
		SetResult(&models.SiteResponse{}).
		SetError(&errorPayload{})
	setDate(req, date)

	resp, err := req.Patch("/api/v1/capacity/{source}/{id}")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	site, ok := resp.Result().(*models.SiteResponse)
	if !ok || site == nil || site.ID == "" {
		return nil, fmt.Errorf("UpdateCapacity: unexpected payload")
	}
	updated := site.ToDomainSite()
	return &updated, nil
}

// Export скачивает выгрузку всех площадок в формате csv или xlsx
func (c *Client) Export(ctx context.Context, date time.Time, format string) (*ExportFile, error) {
	req := c.http.R().
		SetContext(ctx).
		SetError(&errorPayload{})
	setDate(req, date)
	if format != "" {
		req.SetQueryParam("format", format)
	}

	resp, err := req.Get("/api/v1/capacity/export")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	filename := "site-capacity." + format
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return &ExportFile{Filename: filename, Content: resp.Body()}, nil
}

func setDate(req *resty.Request, date time.Time) {
	if !date.IsZero() {
		req.SetQueryParam("date", date.Format(domain.DateFormat))
	}
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusOK {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if e, ok := resp.Error().(*errorPayload); ok && e != nil {
		apiErr.Message = e.Error
	}
	return apiErr
}
