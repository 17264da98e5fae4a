package contracts

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestTransactorFrom(t *testing.T) {
	tr, err := NewTransactor(newFakeClient(), testKey(t), &lib.LoggerMock{})
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), tr.From())
}

func TestTransactorNonceAllocation(t *testing.T) {
	client := newFakeClient()
	client.setPendingNonce(5)
	tr, err := NewTransactor(client, testKey(t), &lib.LoggerMock{})
	require.NoError(t, err)

	opts, err := tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(5), opts.Nonce.Uint64())
	require.Equal(t, int64(0), opts.Value.Int64())

	// pending nonce is still 5, the local counter wins
	opts, err = tr.TransactOpts(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	require.Equal(t, uint64(6), opts.Nonce.Uint64())
	require.Equal(t, int64(42), opts.Value.Int64())

	client.setPendingNonce(10)
	opts, err = tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(10), opts.Nonce.Uint64())

	tr.ReleaseNonce(opts.Nonce)
	client.setPendingNonce(0)
	opts, err = tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(10), opts.Nonce.Uint64())
}

func TestTransactorReleaseStaleNonce(t *testing.T) {
	tr, err := NewTransactor(newFakeClient(), testKey(t), &lib.LoggerMock{})
	require.NoError(t, err)

	first, err := tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)
	_, err = tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)

	// a newer nonce is already allocated, releasing the older one must not rewind
	tr.ReleaseNonce(first.Nonce)
	third, err := tr.TransactOpts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), third.Nonce.Uint64())
}

func TestTransactorChainIDError(t *testing.T) {
	client := newFakeClient()
	client.chainIDErr = errors.New("connection refused")
	tr, err := NewTransactor(client, testKey(t), &lib.LoggerMock{})
	require.NoError(t, err)

	_, err = tr.TransactOpts(context.Background(), nil)
	require.ErrorIs(t, err, ErrProvider)
}
