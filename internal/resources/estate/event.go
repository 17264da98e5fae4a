package estate

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type EventName string

const (
	EventPropertyListed         EventName = "PropertyListed"
	EventPropertyDetailsUpdated EventName = "PropertyDetailsUpdated"
	EventPropertyUnlisted       EventName = "PropertyUnlisted"
	EventPropertyInspected      EventName = "PropertyInspected"
	EventBidPlaced              EventName = "BidPlaced"
	EventInspectorAdded         EventName = "InspectorAdded"
	EventInspectorRemoved       EventName = "InspectorRemoved"
	EventOwnershipTransferred   EventName = "OwnershipTransferred"
)

// Event is a decoded marketplace contract log
type Event struct {
	Name        EventName
	PropertyID  *big.Int        // nil for events not scoped to a property
	Account     *common.Address // bidder, owner, inspector or new contract owner
	Amount      *big.Int        // price or bid amount
	Rating      uint8
	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
	ObservedAt  time.Time
}
