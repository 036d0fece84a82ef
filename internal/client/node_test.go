package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/AlexZinkM/coin-redeem/coin"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewayURL = "http://gateway.test"

func newTestNodeClient(t *testing.T) *NodeClient {
	t.Helper()
	c, err := NewNodeClient(gatewayURL+"/", time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestNewNodeClientValidation(t *testing.T) {
	_, err := NewNodeClient("not a url", time.Second, time.Second)
	assert.Error(t, err)
	_, err = NewNodeClient("", time.Second, time.Second)
	assert.Error(t, err)
	_, err = NewNodeClient(gatewayURL, time.Second, 0)
	assert.Error(t, err)

	c, err := NewNodeClient(gatewayURL+"/", time.Second, time.Second)
	require.NoError(t, err)
	assert.Equal(t, gatewayURL, c.baseURL)
}

func TestInvokeContract(t *testing.T) {
	c := newTestNodeClient(t)

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/invokeInstance",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{
				"tag":         "success",
				"returnValue": "40420f000000000000",
			})
		})

	res, err := c.InvokeContract(context.Background(), coin.ContractInvocation{
		Contract:  coin.RedeemContract,
		Method:    coin.ViewCoinEntrypoint,
		Parameter: []byte{0xde, 0xad},
		Energy:    coin.MaxContractEnergy,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, coin.EncodeCoinRecord(coin.CoinRecord{Amount: 1000000}), res.ReturnValue)

	assert.Equal(t, "ccd_redeem.viewCoin", got["method"])
	assert.Equal(t, "dead", got["parameter"])
	assert.Equal(t, float64(30000), got["energy"])
	assert.Equal(t, map[string]any{"index": float64(6952), "subindex": float64(0)}, got["contract"])
}

func TestInvokeContractFailure(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/invokeInstance",
		httpmock.NewStringResponder(http.StatusOK, `{"tag":"failure","reason":{"tag":"rejectedReceive","rejectReason":-2}}`))

	res, err := c.InvokeContract(context.Background(), coin.ContractInvocation{Method: coin.ViewCoinEntrypoint})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestInvokeContractMalformedReturnValue(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/invokeInstance",
		httpmock.NewStringResponder(http.StatusOK, `{"tag":"success","returnValue":"40420f0"}`))

	_, err := c.InvokeContract(context.Background(), coin.ContractInvocation{Method: coin.ViewCoinEntrypoint})
	assert.ErrorIs(t, err, coin.ErrMalformedReturnValue)

	answer := coin.ClassifyCoin(context.Background(), "7057393dfec4763321e984e9ebdccae6dd7a980d345b2b3af73deadf6b4b7c0d", c)
	assert.Equal(t, coin.AnswerDeserializationFailed, answer.Kind)
}

func TestInvokeContractGatewayError(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/invokeInstance",
		httpmock.NewStringResponder(http.StatusBadGateway, "node unreachable"))

	_, err := c.InvokeContract(context.Background(), coin.ContractInvocation{Method: coin.ViewCoinEntrypoint})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "node unreachable")
}

func TestSendUpdate(t *testing.T) {
	c := newTestNodeClient(t)

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/sendUpdate",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"txHash": "abc123"})
		})

	hash, err := c.SendUpdate(context.Background(), coin.UpdateTransaction{
		Sender:      "4r81HqikiXBfwxjNJKJAWdw6an2jq4aGSZZAy8fM3fQ9a7x9mH",
		Contract:    coin.RedeemContract,
		ReceiveName: coin.RedeemEntrypoint,
		Energy:      coin.MaxContractEnergy,
		Parameter:   []byte{0x01, 0x02},
		Schema:      coin.RedeemParameterSchema,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", hash)

	assert.Equal(t, "4r81HqikiXBfwxjNJKJAWdw6an2jq4aGSZZAy8fM3fQ9a7x9mH", got["sender"])
	assert.Equal(t, "0", got["amount"])
	assert.Equal(t, "ccd_redeem.redeem", got["receiveName"])
	assert.Equal(t, float64(30000), got["maxContractExecutionEnergy"])
	assert.Equal(t, "0102", got["parameter"])
	assert.Equal(t, map[string]any{"type": "parameter", "value": coin.RedeemParameterSchema}, got["schema"])
}

func TestSendUpdateNoHash(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodPost, gatewayURL+"/v2/sendUpdate",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	_, err := c.SendUpdate(context.Background(), coin.UpdateTransaction{})
	assert.Error(t, err)
}

func TestWaitForFinalization(t *testing.T) {
	c := newTestNodeClient(t)

	polls := 0
	httpmock.RegisterResponder(http.MethodGet, gatewayURL+"/v2/transactionStatus/abc123",
		func(req *http.Request) (*http.Response, error) {
			polls++
			if polls < 3 {
				return httpmock.NewStringResponse(http.StatusOK, `{"status":"committed"}`), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"status":"finalized","outcome":{"tag":"success"}}`), nil
		})

	fin, err := c.WaitForFinalization(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, fin.Rejected)
	assert.Equal(t, 3, polls)
}

func TestWaitForFinalizationRejected(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodGet, gatewayURL+"/v2/transactionStatus/abc123",
		httpmock.NewStringResponder(http.StatusOK,
			`{"status":"finalized","outcome":{"tag":"reject","rejectReason":{"tag":"rejectedReceive","rejectReason":-3}}}`))

	fin, err := c.WaitForFinalization(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, fin.Rejected)
	assert.Equal(t, coin.RejectCoinAlreadyRedeemed, fin.RejectCode)
}

func TestWaitForFinalizationContextDone(t *testing.T) {
	c := newTestNodeClient(t)

	httpmock.RegisterResponder(http.MethodGet, gatewayURL+"/v2/transactionStatus/abc123",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"received"}`))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.WaitForFinalization(ctx, "abc123")
	assert.Error(t, err)
}
