package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/coin-redeem/coin"
	"github.com/AlexZinkM/coin-redeem/internal/common"
	"github.com/AlexZinkM/coin-redeem/internal/model"

	"golang.org/x/sync/errgroup"
)

const (
	labelsFileName = "labels.html"
	qrDirName      = "qr"
	qrSize         = 512
	maxQRWorkers   = 8
)

var labelsTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>CCD coins</title>
<style>
.label { display: inline-block; width: 7cm; margin: 0.5cm; padding: 0.3cm; border: 1px dashed #999; text-align: center; font-family: sans-serif; }
.label img { width: 5cm; height: 5cm; }
.seed { font-family: monospace; font-size: 8pt; word-break: break-all; }
</style>
</head>
<body>
{{range .}}<div class="label">
<div class="amount">{{.Amount}} CCD</div>
<img src="{{.QR}}" alt="coin {{.Index}}">
<div class="seed">{{.Seed}}</div>
</div>
{{end}}</body>
</html>
`))

type label struct {
	Index  int
	Amount string
	Seed   string
	QR     template.URL
}

// writeLabels writes one QR code PNG per coin and a printable page with all labels
func writeLabels(dir string, coins []model.BatchCoin) error {
	qrDir := filepath.Join(dir, qrDirName)
	if err := os.MkdirAll(qrDir, 0700); err != nil {
		return fmt.Errorf("failed to create QR directory: %w", err)
	}

	labels := make([]label, len(coins))
	var g errgroup.Group
	g.SetLimit(maxQRWorkers)
	for i, c := range coins {
		i, c := i, c
		g.Go(func() error {
			png, err := coin.QRCodePNG(c.Seed, qrSize)
			if err != nil {
				return fmt.Errorf("coin %d: %w", i, err)
			}
			if err := os.WriteFile(filepath.Join(qrDir, fmt.Sprintf("%04d.png", i)), png, 0600); err != nil {
				return fmt.Errorf("failed to write QR code %d: %w", i, err)
			}

			b64, err := coin.QRCodeBase64(c.Seed)
			if err != nil {
				return fmt.Errorf("coin %d: %w", i, err)
			}
			labels[i] = label{
				Index:  i,
				Amount: common.DisplayCCD(c.Amount),
				Seed:   c.Seed,
				QR:     template.URL("data:image/png;base64," + b64),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := labelsTemplate.Execute(&buf, labels); err != nil {
		return fmt.Errorf("failed to render labels: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, labelsFileName), buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}
