package contracts

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func TestReceiptWaiterSuccess(t *testing.T) {
	client := newFakeClient()
	tx := signedTestTx(t, client.chainID, 0)
	client.receipts[tx.Hash()] = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(7),
	}

	w := NewReceiptWaiter(client, time.Second, &lib.LoggerMock{})
	receipt, err := w.Wait(context.Background(), tx)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), receipt.TxHash)
}

func TestReceiptWaiterReverted(t *testing.T) {
	client := newFakeClient()
	client.callErr = newRevertDataError(t, "Property is not accepting bids")
	tx := signedTestTx(t, client.chainID, 0)
	client.receipts[tx.Hash()] = &types.Receipt{
		Status:      types.ReceiptStatusFailed,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(7),
	}

	w := NewReceiptWaiter(client, time.Second, &lib.LoggerMock{})
	receipt, err := w.Wait(context.Background(), tx)
	require.ErrorIs(t, err, ErrReverted)
	require.Contains(t, err.Error(), "Property is not accepting bids")
	require.NotNil(t, receipt)
}

func TestReceiptWaiterTimeout(t *testing.T) {
	client := newFakeClient()
	tx := signedTestTx(t, client.chainID, 0)

	w := NewReceiptWaiter(client, 50*time.Millisecond, &lib.LoggerMock{})
	_, err := w.Wait(context.Background(), tx)
	require.ErrorIs(t, err, ErrProvider)
	require.ErrorIs(t, err, ErrReceiptTimeout)
}

func TestReceiptWaiterLookup(t *testing.T) {
	client := newFakeClient()
	tx := signedTestTx(t, client.chainID, 0)
	w := NewReceiptWaiter(client, time.Second, &lib.LoggerMock{})

	_, err := w.Lookup(context.Background(), tx.Hash())
	require.ErrorIs(t, err, ErrProvider)
	require.ErrorIs(t, err, ErrTxNotMined)

	client.receipts[tx.Hash()] = &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash(), BlockNumber: big.NewInt(3)}
	receipt, err := w.Lookup(context.Background(), tx.Hash())
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), receipt.TxHash)

	client.receipts[tx.Hash()].Status = types.ReceiptStatusFailed
	receipt, err = w.Lookup(context.Background(), tx.Hash())
	require.ErrorIs(t, err, ErrReverted)
	require.NotNil(t, receipt)
}
