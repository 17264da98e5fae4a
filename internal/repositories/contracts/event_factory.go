package contracts

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/estate-chain/marketplace-router/internal/lib"
	rem "github.com/estate-chain/marketplace-router/internal/repositories/contracts/realestatemarketplace"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type EventMapper func(types.Log) (interface{}, error)

func marketplaceEventFactory(name string) interface{} {
	switch name {
	case "PropertyListed":
		return new(rem.RealestatemarketplacePropertyListed)
	case "PropertyDetailsUpdated":
		return new(rem.RealestatemarketplacePropertyDetailsUpdated)
	case "PropertyUnlisted":
		return new(rem.RealestatemarketplacePropertyUnlisted)
	case "PropertyInspected":
		return new(rem.RealestatemarketplacePropertyInspected)
	case "BidPlaced":
		return new(rem.RealestatemarketplaceBidPlaced)
	case "InspectorAdded":
		return new(rem.RealestatemarketplaceInspectorAdded)
	case "InspectorRemoved":
		return new(rem.RealestatemarketplaceInspectorRemoved)
	case "OwnershipTransferred":
		return new(rem.RealestatemarketplaceOwnershipTransferred)
	default:
		return nil
	}
}

// CreateEventMapper returns a mapper that resolves the event by its signature topic,
// allocates the matching binding struct and fills it from the log
func CreateEventMapper(eventFactory func(string) interface{}, contractABI *abi.ABI) EventMapper {
	// address is irrelevant for unpacking
	unpacker := bind.NewBoundContract(common.Address{}, *contractABI, nil, nil, nil)

	return func(log types.Log) (interface{}, error) {
		if len(log.Topics) == 0 {
			return nil, lib.WrapError(ErrParse, errors.New("log has no topics"))
		}

		namedEvent, err := contractABI.EventByID(log.Topics[0])
		if err != nil {
			return nil, lib.WrapError(ErrParse, err)
		}

		event := eventFactory(namedEvent.Name)
		if event == nil {
			return nil, lib.WrapError(ErrParse, fmt.Errorf("unknown event %s", namedEvent.Name))
		}

		err = unpacker.UnpackLog(event, namedEvent.Name, log)
		if err != nil {
			return nil, lib.WrapError(ErrParse, fmt.Errorf("%s: %w", namedEvent.Name, err))
		}

		setRawLog(event, log)
		return event, nil
	}
}

// setRawLog fills the Raw field every generated event struct carries
func setRawLog(event interface{}, log types.Log) {
	v := reflect.ValueOf(event)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	raw := v.Elem().FieldByName("Raw")
	if raw.IsValid() && raw.CanSet() && raw.Type() == reflect.TypeOf(log) {
		raw.Set(reflect.ValueOf(log))
	}
}
