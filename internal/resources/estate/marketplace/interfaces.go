package marketplace

import (
	"context"
	"math/big"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
)

// Marketplace is the contract gateway. Write methods return as soon as the node
// accepted the transaction, WaitReceipt blocks until it is mined
type Marketplace interface {
	ListProperty(ctx context.Context, terms estate.ListingTerms) (*types.Transaction, error)
	SetPropertyDetails(ctx context.Context, propertyID *big.Int, details estate.PropertyDetails) (*types.Transaction, error)
	PlaceBid(ctx context.Context, propertyID *big.Int, bid estate.BidRequest) (*types.Transaction, error)
	AcceptBid(ctx context.Context, propertyID *big.Int, bidder common.Address) (*types.Transaction, error)
	InspectProperty(ctx context.Context, propertyID *big.Int, rating uint8, pass bool) (*types.Transaction, error)
	RentProperty(ctx context.Context, propertyID *big.Int, value *big.Int) (*types.Transaction, error)
	ToggleBidAcceptance(ctx context.Context, propertyID *big.Int, accepting bool) (*types.Transaction, error)
	UnlistProperty(ctx context.Context, propertyID *big.Int) (*types.Transaction, error)
	AddInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error)
	RemoveInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error)
	TransferOwnership(ctx context.Context, newOwner common.Address) (*types.Transaction, error)

	WaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	ReceiptByHash(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	DecodePropertyID(receipt *types.Receipt) (*big.Int, error)

	PropertyCounter(ctx context.Context) (*big.Int, error)
	GetProperty(ctx context.Context, propertyID *big.Int) (*estate.Property, error)
	GetAllProperties(ctx context.Context) ([]estate.Property, error)
	GetBid(ctx context.Context, propertyID *big.Int, index int64) (*estate.Bid, error)
	GetInspector(ctx context.Context, addr common.Address) (*estate.Inspector, error)
	Owner(ctx context.Context) (common.Address, error)

	WalletAddress() common.Address
}

type EventSource interface {
	CreateMarketplaceSubscription(ctx context.Context) (*lib.Subscription, error)
}

type WorkflowStore interface {
	Save(ctx context.Context, wf *estate.ListingWorkflow) error
	Get(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error)
	List(ctx context.Context) ([]*estate.ListingWorkflow, error)
}

type Publisher interface {
	Publish(ctx context.Context, event estate.Event) error
}
