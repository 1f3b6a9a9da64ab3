package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// MarketplaceSource queries a live parts marketplace over HTTP. Enabled by
// setting MARKETPLACE_BASE_URL; otherwise the container falls back to the
// simulated source.
type MarketplaceSource struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewMarketplaceSource() *MarketplaceSource {
	_ = godotenv.Load()

	return &MarketplaceSource{
		baseURL: os.Getenv("MARKETPLACE_BASE_URL"),
		token:   os.Getenv("MARKETPLACE_API_TOKEN"),
		client:  http.DefaultClient,
	}
}

func (s *MarketplaceSource) Configured() bool {
	return s.baseURL != ""
}

type marketplaceQuote struct {
	Vendor   string `json:"vendor"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	InStock  bool   `json:"in_stock"`
	URL      string `json:"url"`
}

type marketplaceResponse struct {
	Results []marketplaceQuote `json:"results"`
}

func (s *MarketplaceSource) FetchQuotes(ctx context.Context, component *models.Component) ([]models.PriceQuote, error) {
	if component == nil {
		return nil, fmt.Errorf("component is required")
	}

	endpoint := fmt.Sprintf("%s/v1/quotes?name=%s&category=%s",
		s.baseURL, url.QueryEscape(component.Name), url.QueryEscape(string(component.Category)))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("marketplace returned %s", resp.Status)
	}

	var response marketplaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	quotes := make([]models.PriceQuote, 0, len(response.Results))
	for _, result := range response.Results {
		price, err := decimal.NewFromString(result.Price)
		if err != nil {
			return nil, fmt.Errorf("marketplace sent unparsable price %q: %w", result.Price, err)
		}
		quotes = append(quotes, models.PriceQuote{
			Source:   result.Vendor,
			Price:    price,
			Currency: result.Currency,
			InStock:  result.InStock,
			URL:      result.URL,
		})
	}

	return quotes, nil
}
