package marketplace

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/repositories/contracts"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidPropertyID = errors.New("property id must be positive")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrZeroAddress       = errors.New("zero address")
)

// TxResult describes a mined transaction
type TxResult struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

func newTxResult(receipt *types.Receipt) *TxResult {
	res := &TxResult{
		TxHash:  receipt.TxHash,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return res
}

// Service runs single-transaction marketplace operations and cached reads.
// Every write waits for the receipt and invalidates the reads it affects
type Service struct {
	maxBidsScan int

	marketplace Marketplace
	cache       *QueryCache
	log         interfaces.ILogger
}

func NewService(marketplace Marketplace, cache *QueryCache, maxBidsScan int, log interfaces.ILogger) *Service {
	return &Service{
		maxBidsScan: maxBidsScan,
		marketplace: marketplace,
		cache:       cache,
		log:         log,
	}
}

func (s *Service) WalletAddress() common.Address {
	return s.marketplace.WalletAddress()
}

func (s *Service) ListProperties(ctx context.Context) ([]estate.Property, error) {
	return Fetch(ctx, s.cache, KeyProperties, s.marketplace.GetAllProperties)
}

func (s *Service) GetProperty(ctx context.Context, id *big.Int) (*estate.Property, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	property, err := Fetch(ctx, s.cache, PropertyKey(id), func(ctx context.Context) (*estate.Property, error) {
		return s.marketplace.GetProperty(ctx, id)
	})
	if err != nil {
		if errors.Is(err, contracts.ErrReverted) {
			return nil, lib.WrapError(estate.ErrPropertyNotFound, err)
		}
		return nil, err
	}
	if property.Listing.Owner == (common.Address{}) {
		return nil, fmt.Errorf("%w: id %s", estate.ErrPropertyNotFound, id)
	}
	return property, nil
}

func (s *Service) PropertyCounter(ctx context.Context) (*big.Int, error) {
	return Fetch(ctx, s.cache, KeyCounter, s.marketplace.PropertyCounter)
}

// GetBids enumerates bid slots until the contract reverts on an out of range index
func (s *Service) GetBids(ctx context.Context, id *big.Int) ([]estate.Bid, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return Fetch(ctx, s.cache, BidsKey(id), func(ctx context.Context) ([]estate.Bid, error) {
		bids := []estate.Bid{}
		for i := 0; i < s.maxBidsScan; i++ {
			bid, err := s.marketplace.GetBid(ctx, id, int64(i))
			if err != nil {
				if errors.Is(err, contracts.ErrReverted) {
					break
				}
				return nil, err
			}
			if bid.Bidder == (common.Address{}) {
				break
			}
			bids = append(bids, *bid)
		}
		if len(bids) == s.maxBidsScan {
			s.log.Warnf("bid scan for property %s stopped at %d bids", id, s.maxBidsScan)
		}
		return bids, nil
	})
}

func (s *Service) GetInspector(ctx context.Context, addr common.Address) (*estate.Inspector, error) {
	return Fetch(ctx, s.cache, InspectorKey(addr), func(ctx context.Context) (*estate.Inspector, error) {
		return s.marketplace.GetInspector(ctx, addr)
	})
}

func (s *Service) Owner(ctx context.Context) (common.Address, error) {
	return Fetch(ctx, s.cache, KeyOwner, s.marketplace.Owner)
}

// Overview reads the counter, the owner and all listings concurrently
func (s *Service) Overview(ctx context.Context) (*big.Int, common.Address, []estate.Property, error) {
	var (
		counter    *big.Int
		owner      common.Address
		properties []estate.Property
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counter, err = s.PropertyCounter(gctx)
		return err
	})
	g.Go(func() (err error) {
		owner, err = s.Owner(gctx)
		return err
	})
	g.Go(func() (err error) {
		properties, err = s.ListProperties(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, common.Address{}, nil, err
	}
	return counter, owner, properties, nil
}

func (s *Service) SetDetails(ctx context.Context, id *big.Int, details estate.PropertyDetails) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.execute(ctx, "setPropertyDetails", func() (*types.Transaction, error) {
		return s.marketplace.SetPropertyDetails(ctx, id, details)
	}, PropertyKey(id), KeyProperties)
}

// PlaceBid sends bid.Value along with the declared bid.Amount. The contract
// rejects the bid when they differ
func (s *Service) PlaceBid(ctx context.Context, id *big.Int, bid estate.BidRequest) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if bid.Value == nil {
		bid.Value = bid.Amount
	}
	return s.execute(ctx, "placeBid", func() (*types.Transaction, error) {
		return s.marketplace.PlaceBid(ctx, id, bid)
	}, BidsKey(id), PropertyKey(id), KeyProperties)
}

func (s *Service) AcceptBid(ctx context.Context, id *big.Int, bidder common.Address) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if bidder == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	return s.execute(ctx, "acceptBid", func() (*types.Transaction, error) {
		return s.marketplace.AcceptBid(ctx, id, bidder)
	}, BidsKey(id), PropertyKey(id), KeyProperties)
}

func (s *Service) InspectProperty(ctx context.Context, id *big.Int, rating uint8, pass bool) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return s.execute(ctx, "inspectProperty", func() (*types.Transaction, error) {
		return s.marketplace.InspectProperty(ctx, id, rating, pass)
	}, PropertyKey(id), KeyProperties, InspectorKey(s.marketplace.WalletAddress()))
}

func (s *Service) RentProperty(ctx context.Context, id *big.Int, value *big.Int) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.execute(ctx, "rentProperty", func() (*types.Transaction, error) {
		return s.marketplace.RentProperty(ctx, id, value)
	}, PropertyKey(id), KeyProperties)
}

func (s *Service) ToggleBidAcceptance(ctx context.Context, id *big.Int, accepting bool) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.execute(ctx, "toggleBidAcceptance", func() (*types.Transaction, error) {
		return s.marketplace.ToggleBidAcceptance(ctx, id, accepting)
	}, PropertyKey(id), KeyProperties)
}

func (s *Service) UnlistProperty(ctx context.Context, id *big.Int) (*TxResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.execute(ctx, "unlistProperty", func() (*types.Transaction, error) {
		return s.marketplace.UnlistProperty(ctx, id)
	}, PropertyKey(id), BidsKey(id), KeyProperties)
}

func (s *Service) AddInspector(ctx context.Context, addr common.Address) (*TxResult, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	return s.execute(ctx, "addInspector", func() (*types.Transaction, error) {
		return s.marketplace.AddInspector(ctx, addr)
	}, InspectorKey(addr))
}

func (s *Service) RemoveInspector(ctx context.Context, addr common.Address) (*TxResult, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	return s.execute(ctx, "removeInspector", func() (*types.Transaction, error) {
		return s.marketplace.RemoveInspector(ctx, addr)
	}, InspectorKey(addr))
}

func (s *Service) TransferOwnership(ctx context.Context, newOwner common.Address) (*TxResult, error) {
	if newOwner == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	return s.execute(ctx, "transferOwnership", func() (*types.Transaction, error) {
		return s.marketplace.TransferOwnership(ctx, newOwner)
	}, KeyOwner)
}

// execute submits the transaction and waits for it. Keys are invalidated once the
// transaction was accepted by the node, whatever the outcome of waiting
func (s *Service) execute(ctx context.Context, method string, send func() (*types.Transaction, error), keys ...string) (*TxResult, error) {
	tx, err := send()
	if err != nil {
		s.log.Warnf("%s not submitted: %s", method, err)
		return nil, err
	}
	defer s.cache.Invalidate(keys...)

	receipt, err := s.marketplace.WaitReceipt(ctx, tx)
	if err != nil {
		s.log.Warnf("%s tx %s failed: %s", method, tx.Hash().Hex(), err)
		return nil, err
	}

	s.log.Infof("%s confirmed, tx %s", method, tx.Hash().Hex())
	return newTxResult(receipt), nil
}

func validateID(id *big.Int) error {
	if id == nil || id.Sign() <= 0 {
		return ErrInvalidPropertyID
	}
	return nil
}
