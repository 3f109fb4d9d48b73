package model

// Transaction is block-explorer detail for an anchoring transaction.
type Transaction struct {
	BlockHash   string `json:"block_hash"`
	BlockNumber string `json:"block_number"`
	From        string `json:"from"`
	To          string `json:"to"`
	Network     string `json:"network"`
	ExplorerURL string `json:"explorer_url"`
}
