package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/coin-redeem/coin"
	"github.com/AlexZinkM/coin-redeem/internal/common"
	"github.com/AlexZinkM/coin-redeem/internal/config"
	"github.com/AlexZinkM/coin-redeem/internal/crypto"
	"github.com/AlexZinkM/coin-redeem/internal/model"

	"github.com/fatih/color"
)

const (
	batchFileName = "batch" + crypto.BatchExt
	issueJSONName = "issue.json"
	issueHexName  = "issue.hex"
)

// Generate creates a new batch of coins of equal amount
type Generate struct {
	Count  int    `short:"n" long:"count" description:"number of coins" default:"1"`
	Amount string `short:"a" long:"amount" description:"amount of every coin in CCD, e.g. 2.5" required:"true"`
	Out    string `short:"o" long:"out" description:"output directory" default:"coins"`
}

// Execute generates the batch
func (x *Generate) Execute(args []string) error {
	if x.Count <= 0 {
		return errors.New("count must be positive")
	}
	micro, err := common.CCDToMicro(x.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", x.Amount, err)
	}
	if micro == 0 {
		return errors.New("amount must be positive")
	}

	batchPath := filepath.Join(x.Out, batchFileName)
	if info, err := os.Stat(batchPath); err == nil && info.Size() > 0 {
		return fmt.Errorf("%s already exists", batchPath)
	}
	if err := os.MkdirAll(x.Out, 0700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	amounts := make([]uint64, x.Count)
	for i := range amounts {
		amounts[i] = micro
	}
	coins, err := coin.GenerateCoins(amounts)
	if err != nil {
		return err
	}

	password, err := config.PromptForPassword("Batch password: ", true)
	if err != nil {
		return err
	}
	defer clear(password)

	batch := &model.BatchData{
		Coins:     batchCoins(coins),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := crypto.EncryptBatch(batchPath, coin.RedeemContract.String(), batch, password); err != nil {
		return err
	}

	if err := writeIssueParameter(x.Out, coins); err != nil {
		return err
	}
	if err := writeLabels(x.Out, batch.Coins); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	white := color.New(color.FgWhite)
	green.Printf("Generated %d coins of %s CCD\n", len(coins), common.DisplayCCD(micro))
	white.Printf("  batch:  %s\n", batchPath)
	white.Printf("  issue:  %s\n", filepath.Join(x.Out, issueJSONName))
	white.Printf("  labels: %s\n", filepath.Join(x.Out, labelsFileName))
	color.Yellow("Issue the coins on contract %s before handing out the labels.", coin.RedeemContract)
	return nil
}

func batchCoins(coins []coin.GeneratedCoin) []model.BatchCoin {
	out := make([]model.BatchCoin, 0, len(coins))
	for _, c := range coins {
		out = append(out, model.BatchCoin{
			Seed:      c.Seed,
			PublicKey: c.PublicKeyHex,
			Amount:    c.Amount,
		})
	}
	return out
}

func generatedCoins(coins []model.BatchCoin) []coin.GeneratedCoin {
	out := make([]coin.GeneratedCoin, 0, len(coins))
	for _, c := range coins {
		out = append(out, coin.GeneratedCoin{
			Seed:         c.Seed,
			PublicKeyHex: c.PublicKey,
			Amount:       c.Amount,
		})
	}
	return out
}

// writeIssueParameter writes the issue parameter as JSON and as hex encoded binary
func writeIssueParameter(dir string, coins []coin.GeneratedCoin) error {
	js, bin, err := coin.IssueParameters(coins)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal issue parameter: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, issueJSONName), data, 0644); err != nil {
		return fmt.Errorf("failed to write issue parameter: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, issueHexName), []byte(hex.EncodeToString(bin)), 0644); err != nil {
		return fmt.Errorf("failed to write issue parameter: %w", err)
	}
	return nil
}
