package contracts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	ErrRejected       = errors.New("transaction rejected") // signer or node refused to accept the transaction
	ErrReverted       = errors.New("transaction reverted") // contract rejected the call
	ErrProvider       = errors.New("provider failure")     // network or node failure
	ErrParse          = errors.New("unexpected log shape") // receipt does not contain expected data
	ErrReceiptTimeout = errors.New("receipt wait timeout")
	ErrTxNotMined     = errors.New("transaction not mined")
)

// messages the nodes return when a transaction is refused before execution
var rejectedMessages = []string{
	"insufficient funds",
	"nonce too low",
	"nonce too high",
	"replacement transaction underpriced",
	"already known",
	"intrinsic gas too low",
	"gas limit reached",
	"exceeds block gas limit",
	"max fee per gas less than block base fee",
	"user denied",
	"user rejected",
	"invalid sender",
}

// ClassifyError wraps err with one of ErrRejected, ErrReverted, ErrProvider.
// Already classified errors are returned as is
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}

	if reason, ok := RevertReason(err); ok {
		return lib.WrapError(ErrReverted, fmt.Errorf("%s: %w", reason, err))
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "execution reverted") || strings.Contains(msg, "vm exception") {
		return lib.WrapError(ErrReverted, err)
	}
	for _, m := range rejectedMessages {
		if strings.Contains(msg, m) {
			return lib.WrapError(ErrRejected, err)
		}
	}

	return lib.WrapError(ErrProvider, err)
}

func IsClassified(err error) bool {
	return errors.Is(err, ErrRejected) ||
		errors.Is(err, ErrReverted) ||
		errors.Is(err, ErrProvider) ||
		errors.Is(err, ErrParse)
}

// RevertReason extracts Error(string) payload from the json-rpc error data
func RevertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return "", false
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return "", false
	}
	data, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil {
		return "", false
	}
	reason, unpackErr := abi.UnpackRevert(data)
	if unpackErr != nil {
		return "", false
	}
	return reason, true
}
