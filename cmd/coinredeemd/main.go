// @title        CCD Coin Redeem API
// @version      1.0
// @description  Checks printed CCD coins and redeems them to a wallet account.
// @BasePath     /
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/AlexZinkM/coin-redeem/internal/api"
	"github.com/AlexZinkM/coin-redeem/internal/config"
	"github.com/AlexZinkM/coin-redeem/internal/logging"

	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Get()
	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	router, err := api.SetupRouter(log)
	if err != nil {
		log.Fatal("failed to set up router", zap.Error(err))
	}

	addr := ":" + config.GetPort()
	log.Info("listening",
		zap.String("addr", addr),
		zap.String("gateway", cfg.NodeGatewayURL),
		zap.Bool("prices", cfg.PriceEnabled),
	)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
