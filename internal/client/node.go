package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/coin-redeem/coin"
)

const (
	invokePath = "/v2/invokeInstance"
	updatePath = "/v2/sendUpdate"
	statusPath = "/v2/transactionStatus/"

	statusFinalized = "finalized"
	outcomeReject   = "reject"
	tagSuccess      = "success"
)

// NodeClient talks to the node gateway that fronts the chain and the connected wallet.
// It implements coin.LedgerQuerier and coin.Broadcaster.
type NodeClient struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

// NewNodeClient creates a new gateway client
func NewNodeClient(baseURL string, timeout, pollInterval time.Duration) (*NodeClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid node gateway URL %q", baseURL)
	}
	if pollInterval <= 0 {
		return nil, errors.New("finalization poll interval must be positive")
	}

	return &NodeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		pollInterval: pollInterval,
	}, nil
}

type invokeRequest struct {
	Contract  coin.ContractAddress `json:"contract"`
	Method    string               `json:"method"`
	Parameter string               `json:"parameter"`
	Energy    uint64               `json:"energy"`
	Amount    string               `json:"amount"`
}

type invokeResponse struct {
	Tag         string          `json:"tag"`
	ReturnValue string          `json:"returnValue,omitempty"`
	Reason      json.RawMessage `json:"reason,omitempty"`
}

// InvokeContract runs a read-only contract query
func (c *NodeClient) InvokeContract(ctx context.Context, inv coin.ContractInvocation) (*coin.InvokeResult, error) {
	req := invokeRequest{
		Contract:  inv.Contract,
		Method:    inv.Method,
		Parameter: hex.EncodeToString(inv.Parameter),
		Energy:    inv.Energy,
		Amount:    "0",
	}

	var resp invokeResponse
	if err := c.post(ctx, invokePath, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", inv.Method, err)
	}

	if resp.Tag != tagSuccess {
		return &coin.InvokeResult{Success: false}, nil
	}

	var returnValue []byte
	if resp.ReturnValue != "" {
		rv, err := hex.DecodeString(resp.ReturnValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", coin.ErrMalformedReturnValue, err)
		}
		returnValue = rv
	}

	return &coin.InvokeResult{Success: true, ReturnValue: returnValue}, nil
}

type parameterSchema struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type updateRequest struct {
	Sender      string               `json:"sender"`
	Amount      string               `json:"amount"`
	Contract    coin.ContractAddress `json:"address"`
	ReceiveName string               `json:"receiveName"`
	MaxEnergy   uint64               `json:"maxContractExecutionEnergy"`
	Parameter   string               `json:"parameter"`
	Schema      parameterSchema      `json:"schema"`
}

type updateResponse struct {
	TxHash string `json:"txHash"`
}

// SendUpdate asks the wallet of tx.Sender to sign and send a contract update
func (c *NodeClient) SendUpdate(ctx context.Context, tx coin.UpdateTransaction) (string, error) {
	req := updateRequest{
		Sender:      tx.Sender,
		Amount:      fmt.Sprintf("%d", tx.Amount),
		Contract:    tx.Contract,
		ReceiveName: tx.ReceiveName,
		MaxEnergy:   tx.Energy,
		Parameter:   hex.EncodeToString(tx.Parameter),
		Schema:      parameterSchema{Type: "parameter", Value: tx.Schema},
	}

	var resp updateResponse
	if err := c.post(ctx, updatePath, req, &resp); err != nil {
		return "", err
	}
	if resp.TxHash == "" {
		return "", errors.New("gateway returned no transaction hash")
	}
	return resp.TxHash, nil
}

type statusResponse struct {
	Status  string `json:"status"`
	Outcome *struct {
		Tag          string `json:"tag"`
		RejectReason *struct {
			Tag          string `json:"tag"`
			RejectReason int32  `json:"rejectReason"`
		} `json:"rejectReason,omitempty"`
	} `json:"outcome,omitempty"`
}

// WaitForFinalization polls the transaction status until it is finalized or ctx is done
func (c *NodeClient) WaitForFinalization(ctx context.Context, txHash string) (*coin.Finalization, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var resp statusResponse
		if err := c.get(ctx, statusPath+url.PathEscape(txHash), &resp); err != nil {
			return nil, fmt.Errorf("failed to get transaction status: %w", err)
		}

		if resp.Status == statusFinalized {
			if resp.Outcome == nil {
				return nil, errors.New("finalized transaction has no outcome")
			}
			if resp.Outcome.Tag == outcomeReject {
				fin := &coin.Finalization{Rejected: true}
				if resp.Outcome.RejectReason != nil {
					fin.RejectCode = resp.Outcome.RejectReason.RejectReason
				}
				return fin, nil
			}
			return &coin.Finalization{}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *NodeClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *NodeClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *NodeClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
