package contracts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type ReceiptWaiter struct {
	timeout time.Duration
	client  EthereumClient
	log     interfaces.ILogger
}

func NewReceiptWaiter(client EthereumClient, timeout time.Duration, log interfaces.ILogger) *ReceiptWaiter {
	return &ReceiptWaiter{
		timeout: timeout,
		client:  client,
		log:     log,
	}
}

// Wait blocks until the transaction is mined. A mined transaction with failed
// status is returned along with ErrReverted
func (w *ReceiptWaiter) Wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, w.client, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: tx %s not mined in %s", ErrReceiptTimeout, tx.Hash().Hex(), w.timeout)
		}
		return nil, lib.WrapError(ErrProvider, err)
	}

	if receipt.Status == types.ReceiptStatusFailed {
		reason := w.replayRevertReason(ctx, tx, receipt)
		if reason != "" {
			return receipt, lib.WrapError(ErrReverted, fmt.Errorf("tx %s: %s", tx.Hash().Hex(), reason))
		}
		return receipt, lib.WrapError(ErrReverted, fmt.Errorf("tx %s", tx.Hash().Hex()))
	}

	w.log.Debugf("tx %s mined in block %s, gas used %d", tx.Hash().Hex(), receipt.BlockNumber, receipt.GasUsed)
	return receipt, nil
}

// Lookup fetches the receipt of a transaction sent earlier, e.g. by a previous
// process that stopped waiting for it. A missing receipt gives ErrTxNotMined
func (w *ReceiptWaiter) Lookup(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := w.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			err = fmt.Errorf("%w: tx %s", ErrTxNotMined, txHash.Hex())
		}
		return nil, lib.WrapError(ErrProvider, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, lib.WrapError(ErrReverted, fmt.Errorf("tx %s", txHash.Hex()))
	}
	return receipt, nil
}

// replayRevertReason re-executes the transaction as a call at the block it was mined
// in to recover the revert message, best effort
func (w *ReceiptWaiter) replayRevertReason(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string {
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return ""
	}
	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	_, err = w.client.CallContract(ctx, msg, receipt.BlockNumber)
	if err == nil {
		return ""
	}
	if reason, ok := RevertReason(err); ok {
		return reason
	}
	w.log.Debugf("revert reason for tx %s unavailable: %s", tx.Hash().Hex(), err)
	return ""
}
