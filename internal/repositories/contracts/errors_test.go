package contracts

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyErrorRevertReason(t *testing.T) {
	err := ClassifyError(newRevertDataError(t, "Bid amount must match sent value"))

	require.ErrorIs(t, err, ErrReverted)
	require.Contains(t, err.Error(), "Bid amount must match sent value")

	reason, ok := RevertReason(fmt.Errorf("estimate gas: %w", newRevertDataError(t, "Not the owner")))
	require.True(t, ok)
	require.Equal(t, "Not the owner", reason)
}

func TestClassifyErrorRevertWithoutData(t *testing.T) {
	err := ClassifyError(errors.New("VM Exception while processing transaction: revert"))
	require.ErrorIs(t, err, ErrReverted)
}

func TestClassifyErrorRejected(t *testing.T) {
	for _, msg := range []string{
		"insufficient funds for gas * price + value",
		"nonce too low",
		"replacement transaction underpriced",
	} {
		err := ClassifyError(errors.New(msg))
		require.ErrorIs(t, err, ErrRejected, msg)
		require.NotErrorIs(t, err, ErrProvider, msg)
	}
}

func TestClassifyErrorProvider(t *testing.T) {
	err := ClassifyError(errors.New("dial tcp 127.0.0.1:8545: connect: connection refused"))
	require.ErrorIs(t, err, ErrProvider)

	err = ClassifyError(fmt.Errorf("call: %w", context.DeadlineExceeded))
	require.ErrorIs(t, err, ErrProvider)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClassifyErrorKeepsClassified(t *testing.T) {
	orig := fmt.Errorf("%w: no log", ErrParse)
	require.Equal(t, orig, ClassifyError(orig))
	require.NoError(t, ClassifyError(nil))
}
