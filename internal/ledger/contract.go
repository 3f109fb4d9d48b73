// Package ledger is the gateway to the anchoring contract and its block
// explorer. It owns no state: hash existence and role grants on the ledger
// are the ultimate source of truth for validity and authorization.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// anchorABI is the interface of the anchoring contract: hash storage and
// revocation plus role administration for the hash-manager role.
const anchorABI = `[
  {"type":"function","name":"storeHash","stateMutability":"nonpayable","inputs":[{"name":"hash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"revokeHash","stateMutability":"nonpayable","inputs":[{"name":"hash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"verifyHash","stateMutability":"view","inputs":[{"name":"hash","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"grantHashManagerRole","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
  {"type":"function","name":"revokeHashManagerRole","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
  {"type":"function","name":"hasHashManagerRole","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"hasAdminRole","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]}
]`

// ContractClient talks to the anchoring contract through a node RPC with a
// single signing credential. All writes go through one mutex so that
// transactions from the shared signer are nonce-ordered; this serializes
// ledger writes process-wide by design.
type ContractClient struct {
	eth            *ethclient.Client
	contract       *bind.BoundContract
	signer         *bind.TransactOpts
	signerAddress  common.Address
	confirmTimeout time.Duration
	logger         zerolog.Logger

	mu sync.Mutex
}

// NewContractClient dials the node RPC and binds the anchoring contract.
func NewContractClient(ctx context.Context, rpcURL, privateKeyHex, contractAddress string, confirmTimeout time.Duration, logger zerolog.Logger) (*ContractClient, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}

	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger rpc: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("query chain id: %w", err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("build transactor: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(anchorABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}

	addr := common.HexToAddress(contractAddress)
	return &ContractClient{
		eth:            eth,
		contract:       bind.NewBoundContract(addr, parsed, eth, eth, eth),
		signer:         signer,
		signerAddress:  crypto.PubkeyToAddress(key.PublicKey),
		confirmTimeout: confirmTimeout,
		logger:         logger.With().Str("component", "ledger").Logger(),
	}, nil
}

// SignerAddress returns the address the client submits transactions from.
func (c *ContractClient) SignerAddress() string {
	return c.signerAddress.Hex()
}

// Close releases the underlying RPC connection.
func (c *ContractClient) Close() {
	c.eth.Close()
}

// Ping checks RPC connectivity. Used by readiness probes.
func (c *ContractClient) Ping(ctx context.Context) error {
	_, err := c.eth.BlockNumber(ctx)
	return err
}

// StoreHash anchors a certificate hash and waits for confirmation.
func (c *ContractClient) StoreHash(ctx context.Context, hash string) (string, error) {
	return c.transact(ctx, "storeHash", toBytes32(hash))
}

// RevokeHash marks an anchored hash revoked and waits for confirmation.
func (c *ContractClient) RevokeHash(ctx context.Context, hash string) (string, error) {
	return c.transact(ctx, "revokeHash", toBytes32(hash))
}

// HashExists reports whether the hash is anchored and not revoked.
func (c *ContractClient) HashExists(ctx context.Context, hash string) (bool, error) {
	return c.callBool(ctx, "verifyHash", toBytes32(hash))
}

// GrantManagerRole grants the hash-manager role to an address.
func (c *ContractClient) GrantManagerRole(ctx context.Context, address string) (string, error) {
	return c.transact(ctx, "grantHashManagerRole", common.HexToAddress(address))
}

// RevokeManagerRole revokes the hash-manager role from an address.
func (c *ContractClient) RevokeManagerRole(ctx context.Context, address string) (string, error) {
	return c.transact(ctx, "revokeHashManagerRole", common.HexToAddress(address))
}

// HasManagerRole reports whether the address holds the hash-manager role.
func (c *ContractClient) HasManagerRole(ctx context.Context, address string) (bool, error) {
	return c.callBool(ctx, "hasHashManagerRole", common.HexToAddress(address))
}

// HasAdminRole reports whether the address holds the contract admin role.
func (c *ContractClient) HasAdminRole(ctx context.Context, address string) (bool, error) {
	return c.callBool(ctx, "hasAdminRole", common.HexToAddress(address))
}

// transact submits one contract write and blocks until it is mined or the
// confirmation timeout elapses. On ErrTimeout the transaction hash is still
// returned so the caller can reconcile later.
func (c *ContractClient) transact(ctx context.Context, method string, args ...any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := *c.signer
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, method, args...)
	if err != nil {
		txTotal.WithLabelValues(method, "submit_failed").Inc()
		if isRevert(err) {
			return "", fmt.Errorf("%s: %v: %w", method, err, ErrRejected)
		}
		return "", fmt.Errorf("%s: %v: %w", method, err, ErrUnavailable)
	}

	txHash := tx.Hash().Hex()
	c.logger.Info().Str("method", method).Str("tx_hash", txHash).Msg("transaction submitted")

	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.eth, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// Ambiguous state: the transaction may still be mined.
			txTotal.WithLabelValues(method, "timeout").Inc()
			return txHash, fmt.Errorf("confirm %s: %w", txHash, ErrTimeout)
		}
		txTotal.WithLabelValues(method, "confirm_failed").Inc()
		return txHash, fmt.Errorf("confirm %s: %v: %w", txHash, err, ErrUnavailable)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		txTotal.WithLabelValues(method, "reverted").Inc()
		return txHash, fmt.Errorf("tx %s: %w", txHash, ErrReverted)
	}

	txTotal.WithLabelValues(method, "confirmed").Inc()
	c.logger.Info().Str("method", method).Str("tx_hash", txHash).
		Uint64("block", receipt.BlockNumber.Uint64()).Msg("transaction confirmed")
	return txHash, nil
}

func (c *ContractClient) callBool(ctx context.Context, method string, args ...any) (bool, error) {
	var out []any
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %v: %w", method, err, ErrUnavailable)
	}
	if len(out) != 1 {
		return false, fmt.Errorf("%s: unexpected output arity %d", method, len(out))
	}
	b, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: unexpected output type %T", method, out[0])
	}
	return b, nil
}

func toBytes32(hexHash string) [32]byte {
	return [32]byte(common.HexToHash(hexHash))
}

func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}
