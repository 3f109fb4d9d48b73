package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/inovuslabs/certanchor/internal/model"
)

// Explorer reads transaction detail from an etherscan-style API. It is a
// separate read path from the node RPC and lags behind it: a transaction
// confirmed on the node may not be indexed here yet.
type Explorer struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	baseURL    string
	network    string
}

func NewExplorer(apiURL, apiKey, baseURL, network string) *Explorer {
	return &Explorer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
		baseURL:    baseURL,
		network:    network,
	}
}

// TxURL returns the human-facing explorer page for a transaction.
func (e *Explorer) TxURL(txHash string) string {
	return e.baseURL + "/tx/" + txHash
}

type explorerResponse struct {
	Result *struct {
		BlockHash   string `json:"blockHash"`
		BlockNumber string `json:"blockNumber"`
		From        string `json:"from"`
		To          string `json:"to"`
	} `json:"result"`
}

// GetTransaction fetches block detail for a transaction. Returns
// ErrTxNotFound while the explorer has not indexed it.
func (e *Explorer) GetTransaction(ctx context.Context, txHash string) (*model.Transaction, error) {
	q := url.Values{}
	q.Set("chainid", "1")
	q.Set("module", "proxy")
	q.Set("action", "eth_getTransactionByHash")
	q.Set("txhash", txHash)
	if e.apiKey != "" {
		q.Set("apikey", e.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.apiURL+"/api?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build explorer request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var body explorerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode explorer response: %w", err)
	}
	if body.Result == nil || body.Result.BlockHash == "" {
		return nil, fmt.Errorf("tx %s: %w", txHash, ErrTxNotFound)
	}

	return &model.Transaction{
		BlockHash:   body.Result.BlockHash,
		BlockNumber: body.Result.BlockNumber,
		From:        body.Result.From,
		To:          body.Result.To,
		Network:     e.network,
		ExplorerURL: e.TxURL(txHash),
	}, nil
}
