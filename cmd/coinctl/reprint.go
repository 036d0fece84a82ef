package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/coin-redeem/coin"
	"github.com/AlexZinkM/coin-redeem/internal/config"
	"github.com/AlexZinkM/coin-redeem/internal/crypto"

	"github.com/fatih/color"
)

// Reprint renders the labels of an existing batch again
type Reprint struct {
	Batch string `short:"b" long:"batch" description:"path to the batch file" required:"true"`
	Out   string `short:"o" long:"out" description:"output directory, defaults to the batch directory"`
	Issue bool   `long:"issue" description:"also write the issue parameter again"`
}

// Execute decrypts the batch and writes its labels
func (x *Reprint) Execute(args []string) error {
	password, err := config.PromptForPassword("Batch password: ", false)
	if err != nil {
		return err
	}
	defer clear(password)

	header, batch, err := crypto.DecryptBatch(x.Batch, password)
	if err != nil {
		return err
	}
	if header.Contract != coin.RedeemContract.String() {
		color.Yellow("Batch was issued on contract %s, current contract is %s", header.Contract, coin.RedeemContract)
	}

	// every seed must still derive the key it was issued under
	for i, c := range batch.Coins {
		seed, err := coin.DecodeSeed(c.Seed)
		if err != nil {
			return fmt.Errorf("coin %d: %w", i, err)
		}
		keys := coin.DeriveKeys(seed)
		ok := keys.PublicKeyHex() == c.PublicKey
		keys.Wipe()
		if !ok {
			return fmt.Errorf("coin %d: seed does not match public key %s", i, c.PublicKey)
		}
	}
	if len(batch.Coins) == 0 {
		return errors.New("batch has no coins")
	}

	out := x.Out
	if out == "" {
		out = filepath.Dir(x.Batch)
	}
	if err := os.MkdirAll(out, 0700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeLabels(out, batch.Coins); err != nil {
		return err
	}
	if x.Issue {
		if err := writeIssueParameter(out, generatedCoins(batch.Coins)); err != nil {
			return err
		}
	}

	color.Green("Reprinted %d coins created %s", len(batch.Coins), batch.CreatedAt)
	color.White("  labels: %s", filepath.Join(out, labelsFileName))
	return nil
}
