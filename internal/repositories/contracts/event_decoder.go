package contracts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrEventNotFound  = errors.New("event not found in receipt")
	ErrUnknownEvent   = errors.New("event is not part of the contract abi")
	ErrMissingTopic   = errors.New("log is missing indexed topic")
	ErrNonPositiveID  = errors.New("decoded id is not positive")
	ErrNotIndexedUint = errors.New("first event argument is not an indexed uint256")
)

// EventDecoder extracts values from receipt logs emitted by a single contract.
// Logs are matched by emitter address and event signature, never by position
type EventDecoder struct {
	contractAddr common.Address
	abi          *abi.ABI
	mapper       EventMapper
}

func NewEventDecoder(contractAddr common.Address, contractABI *abi.ABI) *EventDecoder {
	return &EventDecoder{
		contractAddr: contractAddr,
		abi:          contractABI,
		mapper:       CreateEventMapper(marketplaceEventFactory, contractABI),
	}
}

// FindLog returns the first log of the receipt emitted by the contract with the given event signature
func (d *EventDecoder) FindLog(receipt *types.Receipt, eventName string) (*types.Log, error) {
	ev, ok := d.abi.Events[eventName]
	if !ok {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName))
	}
	if receipt == nil {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: nil receipt", ErrEventNotFound))
	}

	for _, log := range receipt.Logs {
		if log == nil || log.Address != d.contractAddr {
			continue
		}
		if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
			continue
		}
		return log, nil
	}

	return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: %s in tx %s", ErrEventNotFound, eventName, receipt.TxHash.Hex()))
}

// PropertyID decodes the first indexed argument of the event as a positive integer
func (d *EventDecoder) PropertyID(receipt *types.Receipt, eventName string) (*big.Int, error) {
	ev, ok := d.abi.Events[eventName]
	if !ok {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName))
	}
	if len(ev.Inputs) == 0 || !ev.Inputs[0].Indexed || ev.Inputs[0].Type.T != abi.UintTy {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: %s", ErrNotIndexedUint, eventName))
	}

	log, err := d.FindLog(receipt, eventName)
	if err != nil {
		return nil, err
	}
	if len(log.Topics) < 2 {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("%w: %s", ErrMissingTopic, eventName))
	}

	id := new(big.Int).SetBytes(log.Topics[1].Bytes())
	if id.Sign() <= 0 {
		return nil, lib.WrapError(ErrParse, ErrNonPositiveID)
	}
	return id, nil
}

// Decode maps a contract log to its generated event struct
func (d *EventDecoder) Decode(log types.Log) (interface{}, error) {
	if log.Address != d.contractAddr {
		return nil, lib.WrapError(ErrParse, fmt.Errorf("log emitted by %s", log.Address.Hex()))
	}
	return d.mapper(log)
}
