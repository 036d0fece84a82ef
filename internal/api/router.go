package api

import (
	"net/http"

	_ "github.com/AlexZinkM/coin-redeem/docs"
	"github.com/AlexZinkM/coin-redeem/internal/client"
	"github.com/AlexZinkM/coin-redeem/internal/config"
	"github.com/AlexZinkM/coin-redeem/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(log *zap.Logger) (http.Handler, error) {
	node, err := client.NewNodeClient(config.GetNodeGatewayURL(), config.GetNodeTimeout(), config.GetFinalizationPollInterval())
	if err != nil {
		return nil, err
	}

	var rates handler.RateSource
	if config.Get().PriceEnabled {
		rates = client.NewCoinGeckoClient()
	}

	coinHandler := handler.NewCoinHandler(node, node, rates, config.Get().PriceCurrency, log)
	return NewMux(coinHandler), nil
}

// NewMux registers the coin endpoints and the Swagger UI
func NewMux(coinHandler *handler.CoinHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Coin endpoints
	mux.HandleFunc("/coin/check", coinHandler.Check)
	mux.HandleFunc("/coin/redeem", coinHandler.Redeem)

	return mux
}
