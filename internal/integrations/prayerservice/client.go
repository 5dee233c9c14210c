package prayerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент сервиса расписаний молитв (совместим с Aladhan API)
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	method     int
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса расписаний
func NewClient(baseURL string, latitude, longitude float64, method int, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		latitude:  latitude,
		longitude: longitude,
		method:    method,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchTimings получает времена молитв на дату
func (c *Client) FetchTimings(ctx context.Context, date time.Time) (*Timings, error) {
	endpoint := fmt.Sprintf("%s/v1/timings/%s", c.baseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", c.latitude))
	params.Set("longitude", fmt.Sprintf("%f", c.longitude))
	params.Set("method", fmt.Sprintf("%d", c.method))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid date or coordinates", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var parsed timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if parsed.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: service returned code %d status %q", ErrInvalidResponse, parsed.Code, parsed.Status)
	}

	timings := &Timings{
		Fajr:    normalizeTime(parsed.Data.Timings.Fajr),
		Dhuhr:   normalizeTime(parsed.Data.Timings.Dhuhr),
		Asr:     normalizeTime(parsed.Data.Timings.Asr),
		Maghrib: normalizeTime(parsed.Data.Timings.Maghrib),
		Isha:    normalizeTime(parsed.Data.Timings.Isha),
	}

	c.log.Info("Fetched prayer timings for date=%s", date.Format("2006-01-02"))
	return timings, nil
}

// normalizeTime отрезает суффикс таймзоны вида "04:41 (WIB)"
func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	return s
}
