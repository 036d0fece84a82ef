package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	concordiumID = "concordium"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: coingeckoAPI,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetCCDRate gets the price of one CCD in currency (e.g. "usd")
func (c *CoinGeckoClient) GetCCDRate(currency string) (float64, error) {
	currency = strings.ToLower(currency)
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.baseURL, concordiumID, currency)

	resp, err := c.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	// {"concordium": {"usd": 0.0112}}
	var priceResp map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return 0, fmt.Errorf("failed to decode rate: %w", err)
	}

	rate, ok := priceResp[concordiumID][currency]
	if !ok {
		return 0, fmt.Errorf("no %s rate for CCD", currency)
	}
	return rate, nil
}
