package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPSource queries a SUNAT-style endpoint: GET <url>?fecha=YYYY-MM-DD
// answering {"compra": ..., "venta": ..., "fecha": ...}.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewHTTPSource(baseURL, token string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   token,
	}
}

type quote struct {
	Compra decimal.Decimal `json:"compra"`
	Venta  decimal.Decimal `json:"venta"`
	Fecha  string          `json:"fecha"`
}

func (s *HTTPSource) Fetch(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate url: %w", err)
	}

	q := u.Query()
	q.Set("fecha", date.Format(time.DateOnly))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("requesting rate: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return decimal.Zero, ErrNoRate
	case resp.StatusCode != http.StatusOK:
		return decimal.Zero, fmt.Errorf("unexpected status code %d from rate source", resp.StatusCode)
	}

	var body quote
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate: %w", err)
	}

	if !body.Venta.IsPositive() {
		return decimal.Zero, ErrNoRate
	}

	return body.Venta, nil
}
