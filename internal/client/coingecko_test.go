package client

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priceURL = regexp.MustCompile(`^https://api\.coingecko\.com/api/v3/simple/price`)

func newTestCoinGeckoClient(t *testing.T) *CoinGeckoClient {
	t.Helper()
	c := NewCoinGeckoClient()
	httpmock.ActivateNonDefault(c.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestGetCCDRate(t *testing.T) {
	c := newTestCoinGeckoClient(t)

	var query string
	httpmock.RegisterRegexpResponder(http.MethodGet, priceURL,
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.RawQuery
			return httpmock.NewStringResponse(http.StatusOK, `{"concordium":{"eur":0.0105}}`), nil
		})

	rate, err := c.GetCCDRate("EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.0105, rate)
	assert.Contains(t, query, "ids=concordium")
	assert.Contains(t, query, "vs_currencies=eur")
}

func TestGetCCDRateErrors(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"status", httpmock.NewStringResponder(http.StatusTooManyRequests, `{}`)},
		{"missing currency", httpmock.NewStringResponder(http.StatusOK, `{"concordium":{"usd":0.01}}`)},
		{"bad json", httpmock.NewStringResponder(http.StatusOK, `[`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCoinGeckoClient(t)
			httpmock.RegisterRegexpResponder(http.MethodGet, priceURL, tt.responder)

			_, err := c.GetCCDRate("eur")
			assert.Error(t, err)
		})
	}
}
