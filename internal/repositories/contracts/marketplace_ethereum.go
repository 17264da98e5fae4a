package contracts

import (
	"context"
	"math/big"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	rem "github.com/estate-chain/marketplace-router/internal/repositories/contracts/realestatemarketplace"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MarketplaceEthereum is the typed gateway to the RealEstateMarketplace contract
type MarketplaceEthereum struct {
	// config
	marketplaceAddr common.Address

	// state
	marketplaceABI *abi.ABI

	// deps
	marketplace   *rem.Realestatemarketplace
	transactor    *Transactor
	receiptWaiter *ReceiptWaiter
	decoder       *EventDecoder
	logWatcher    LogWatcher
	log           interfaces.ILogger
}

func MarketplaceEthereumFactory(marketplaceAddr common.Address, client EthereumClient, transactor *Transactor, receiptTimeout time.Duration, forcePolling bool, maxReconnects int, pollingInterval time.Duration, log interfaces.ILogger) *MarketplaceEthereum {
	var watcher LogWatcher
	if client.SupportsSubscriptions() && !forcePolling {
		watcher = NewLogWatcherSubscription(client, maxReconnects, log)
	} else {
		watcher = NewLogWatcherPolling(client, pollingInterval, maxReconnects, log)
	}
	return NewMarketplaceEthereum(marketplaceAddr, client, transactor, NewReceiptWaiter(client, receiptTimeout, log), watcher, log)
}

func NewMarketplaceEthereum(marketplaceAddr common.Address, client EthereumClient, transactor *Transactor, receiptWaiter *ReceiptWaiter, logWatcher LogWatcher, log interfaces.ILogger) *MarketplaceEthereum {
	marketplace, err := rem.NewRealestatemarketplace(marketplaceAddr, client)
	if err != nil {
		panic("invalid marketplace ABI: " + err.Error())
	}
	marketplaceABI, err := rem.RealestatemarketplaceMetaData.GetAbi()
	if err != nil {
		panic("invalid marketplace ABI: " + err.Error())
	}

	return &MarketplaceEthereum{
		marketplaceAddr: marketplaceAddr,
		marketplaceABI:  marketplaceABI,
		marketplace:     marketplace,
		transactor:      transactor,
		receiptWaiter:   receiptWaiter,
		decoder:         NewEventDecoder(marketplaceAddr, marketplaceABI),
		logWatcher:      logWatcher,
		log:             log,
	}
}

func (g *MarketplaceEthereum) Address() common.Address {
	return g.marketplaceAddr
}

func (g *MarketplaceEthereum) WalletAddress() common.Address {
	return g.transactor.From()
}

func (g *MarketplaceEthereum) ListProperty(ctx context.Context, terms estate.ListingTerms) (*types.Transaction, error) {
	return g.submit(ctx, "listProperty", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.ListProperty(opts, orZero(terms.Price), terms.ForSale, terms.ForRent, orZero(terms.RentAmount), orZero(terms.RentDuration), terms.AcceptingBids)
	})
}

func (g *MarketplaceEthereum) SetPropertyDetails(ctx context.Context, propertyID *big.Int, d estate.PropertyDetails) (*types.Transaction, error) {
	return g.submit(ctx, "setPropertyDetails", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.SetPropertyDetails(opts, propertyID,
			d.Name, d.PhysicalAddress, d.ResidenceType,
			d.Bedrooms, d.Bathrooms, orZero(d.SquareFeet), d.YearBuilt,
			nonNil(d.KeyFeatures), nonNil(d.Amenities), d.Description,
		)
	})
}

func (g *MarketplaceEthereum) PlaceBid(ctx context.Context, propertyID *big.Int, bid estate.BidRequest) (*types.Transaction, error) {
	return g.submit(ctx, "placeBid", bid.Value, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.PlaceBid(opts, propertyID, orZero(bid.Amount))
	})
}

func (g *MarketplaceEthereum) AcceptBid(ctx context.Context, propertyID *big.Int, bidder common.Address) (*types.Transaction, error) {
	return g.submit(ctx, "acceptBid", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.AcceptBid(opts, propertyID, bidder)
	})
}

func (g *MarketplaceEthereum) InspectProperty(ctx context.Context, propertyID *big.Int, rating uint8, pass bool) (*types.Transaction, error) {
	return g.submit(ctx, "inspectProperty", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.InspectProperty(opts, propertyID, rating, pass)
	})
}

func (g *MarketplaceEthereum) RentProperty(ctx context.Context, propertyID *big.Int, value *big.Int) (*types.Transaction, error) {
	return g.submit(ctx, "rentProperty", value, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.RentProperty(opts, propertyID)
	})
}

func (g *MarketplaceEthereum) ToggleBidAcceptance(ctx context.Context, propertyID *big.Int, accepting bool) (*types.Transaction, error) {
	return g.submit(ctx, "toggleBidAcceptance", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.ToggleBidAcceptance(opts, propertyID, accepting)
	})
}

func (g *MarketplaceEthereum) UnlistProperty(ctx context.Context, propertyID *big.Int) (*types.Transaction, error) {
	return g.submit(ctx, "unlistProperty", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.UnlistProperty(opts, propertyID)
	})
}

func (g *MarketplaceEthereum) AddInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error) {
	return g.submit(ctx, "addInspector", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.AddInspector(opts, inspector)
	})
}

func (g *MarketplaceEthereum) RemoveInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error) {
	return g.submit(ctx, "removeInspector", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.RemoveInspector(opts, inspector)
	})
}

func (g *MarketplaceEthereum) TransferOwnership(ctx context.Context, newOwner common.Address) (*types.Transaction, error) {
	return g.submit(ctx, "transferOwnership", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return g.marketplace.TransferOwnership(opts, newOwner)
	})
}

func (g *MarketplaceEthereum) WaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return g.receiptWaiter.Wait(ctx, tx)
}

// ReceiptByHash looks up the receipt of a transaction sent earlier
func (g *MarketplaceEthereum) ReceiptByHash(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return g.receiptWaiter.Lookup(ctx, txHash)
}

// DecodePropertyID reads the id of a newly created listing from its receipt
func (g *MarketplaceEthereum) DecodePropertyID(receipt *types.Receipt) (*big.Int, error) {
	return g.decoder.PropertyID(receipt, string(estate.EventPropertyListed))
}

func (g *MarketplaceEthereum) PropertyCounter(ctx context.Context) (*big.Int, error) {
	counter, err := g.marketplace.PropertyCounter(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, ClassifyError(err)
	}
	return counter, nil
}

func (g *MarketplaceEthereum) GetProperty(ctx context.Context, propertyID *big.Int) (*estate.Property, error) {
	data, err := g.marketplace.GetPropertyDetails(&bind.CallOpts{Context: ctx}, propertyID)
	if err != nil {
		return nil, ClassifyError(err)
	}
	return &estate.Property{
		ID:      new(big.Int).Set(propertyID),
		Listing: mapListing(data.Listing),
		Details: mapDetails(data.Details),
	}, nil
}

// GetAllProperties returns listings in contract order, ids are index + 1
func (g *MarketplaceEthereum) GetAllProperties(ctx context.Context) ([]estate.Property, error) {
	data, err := g.marketplace.GetAllProperties(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, ClassifyError(err)
	}

	properties := make([]estate.Property, len(data.Listings))
	for i, listing := range data.Listings {
		properties[i] = estate.Property{
			ID:      big.NewInt(int64(i + 1)),
			Listing: mapListing(listing),
		}
		if i < len(data.Details) {
			properties[i].Details = mapDetails(data.Details[i])
		}
	}
	return properties, nil
}

// GetBid reads a single bid slot, out of range index reverts
func (g *MarketplaceEthereum) GetBid(ctx context.Context, propertyID *big.Int, index int64) (*estate.Bid, error) {
	data, err := g.marketplace.PropertyBids(&bind.CallOpts{Context: ctx}, propertyID, big.NewInt(index))
	if err != nil {
		return nil, ClassifyError(err)
	}
	return &estate.Bid{
		PropertyID: new(big.Int).Set(propertyID),
		Index:      index,
		Bidder:     data.Bidder,
		Amount:     data.Amount,
		IsActive:   data.IsActive,
	}, nil
}

func (g *MarketplaceEthereum) GetInspector(ctx context.Context, addr common.Address) (*estate.Inspector, error) {
	data, err := g.marketplace.GetInspectorDetails(&bind.CallOpts{Context: ctx}, addr)
	if err != nil {
		return nil, ClassifyError(err)
	}
	return &estate.Inspector{
		Address:               addr,
		IsRegistered:          data.IsRegistered,
		SuccessfulInspections: data.SuccessfulInspections,
		TotalInspections:      data.TotalInspections,
	}, nil
}

func (g *MarketplaceEthereum) Owner(ctx context.Context) (common.Address, error) {
	owner, err := g.marketplace.Owner(&bind.CallOpts{Context: ctx})
	if err != nil {
		return common.Address{}, ClassifyError(err)
	}
	return owner, nil
}

// CreateMarketplaceSubscription streams decoded marketplace events starting from the current block
func (g *MarketplaceEthereum) CreateMarketplaceSubscription(ctx context.Context) (*lib.Subscription, error) {
	return g.logWatcher.Watch(ctx, g.marketplaceAddr, CreateEventMapper(marketplaceEventFactory, g.marketplaceABI), nil)
}

func (g *MarketplaceEthereum) submit(ctx context.Context, method string, value *big.Int, send func(opts *bind.TransactOpts) (*types.Transaction, error)) (*types.Transaction, error) {
	opts, err := g.transactor.TransactOpts(ctx, value)
	if err != nil {
		err = ClassifyError(err)
		g.log.Warnf("%s: cannot prepare transaction: %s", method, err)
		return nil, err
	}

	tx, err := send(opts)
	if err != nil {
		g.transactor.ReleaseNonce(opts.Nonce)
		err = ClassifyError(err)
		g.log.Warnf("%s: %s", method, err)
		return nil, err
	}

	g.log.Debugf("%s submitted, tx %s nonce %d", method, tx.Hash().Hex(), tx.Nonce())
	return tx, nil
}

func mapListing(l rem.RealEstateMarketplacePropertyListing) estate.PropertyListing {
	return estate.PropertyListing{
		Owner:            l.Owner,
		Price:            l.Price,
		RentAmount:       l.RentAmount,
		RentDuration:     l.RentDuration,
		ForSale:          l.ForSale,
		ForRent:          l.ForRent,
		IsInspected:      l.IsInspected,
		InspectionRating: l.InspectionRating,
		IsSold:           l.IsSold,
		IsRented:         l.IsRented,
		AcceptingBids:    l.AcceptingBids,
	}
}

func mapDetails(d rem.RealEstateMarketplacePropertyDetails) estate.PropertyDetails {
	return estate.PropertyDetails{
		Name:            d.Name,
		PhysicalAddress: d.PhysicalAddress,
		ResidenceType:   d.ResidenceType,
		Bedrooms:        d.Bedrooms,
		Bathrooms:       d.Bathrooms,
		SquareFeet:      d.SquareFeet,
		YearBuilt:       d.YearBuilt,
		KeyFeatures:     d.KeyFeatures,
		Amenities:       d.Amenities,
		Description:     d.Description,
	}
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
