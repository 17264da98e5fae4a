package marketplace

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/repositories/contracts"
	rem "github.com/estate-chain/marketplace-router/internal/repositories/contracts/realestatemarketplace"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	marketplaceAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	walletAddr      = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	otherAddr       = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	oneEther        = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type minedTx struct {
	receipt *types.Receipt
	err     error
}

// fakeMarketplace is an in-memory stand-in for the contract. Transactions take
// effect at submission, receipts carry logs the real decoder can parse
type fakeMarketplace struct {
	t       *testing.T
	abi     *abi.ABI
	decoder *contracts.EventDecoder

	mu         sync.Mutex
	wallet     common.Address
	owner      common.Address
	properties []estate.Property
	bids       map[int64][]estate.Bid
	inspectors map[common.Address]*estate.Inspector
	mined      map[common.Hash]minedTx
	nonce      uint64
	block      int64
	reads      map[string]int

	// failure injection
	detailsSubmitErr error
	detailsReverts   bool
	counterErr       error
	listedIDShift    int64
	hideReceipts     bool // transactions look pending
}

func newFakeMarketplace(t *testing.T) *fakeMarketplace {
	parsed, err := rem.RealestatemarketplaceMetaData.GetAbi()
	require.NoError(t, err)
	return &fakeMarketplace{
		t:          t,
		abi:        parsed,
		decoder:    contracts.NewEventDecoder(marketplaceAddr, parsed),
		wallet:     walletAddr,
		owner:      walletAddr,
		bids:       make(map[int64][]estate.Bid),
		inspectors: make(map[common.Address]*estate.Inspector),
		mined:      make(map[common.Hash]minedTx),
		block:      100,
		reads:      make(map[string]int),
	}
}

func reverted(reason string) error {
	return lib.WrapError(contracts.ErrReverted, errors.New(reason))
}

// newTx must be called with the lock held
func (f *fakeMarketplace) newTx(logs ...*types.Log) *types.Transaction {
	tx := types.NewTx(&types.LegacyTx{Nonce: f.nonce, To: &marketplaceAddr, Gas: 100000, GasPrice: big.NewInt(1)})
	f.nonce++
	f.block++
	for i, l := range logs {
		l.TxHash = tx.Hash()
		l.BlockNumber = uint64(f.block)
		l.Index = uint(i)
	}
	f.mined[tx.Hash()] = minedTx{receipt: &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(f.block),
		GasUsed:     21000,
		Logs:        logs,
	}}
	return tx
}

func (f *fakeMarketplace) eventLog(name string, indexed []common.Hash, data ...interface{}) *types.Log {
	ev := f.abi.Events[name]
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	require.NoError(f.t, err)
	return &types.Log{
		Address: marketplaceAddr,
		Topics:  append([]common.Hash{ev.ID}, indexed...),
		Data:    packed,
	}
}

func (f *fakeMarketplace) property(id *big.Int) (*estate.Property, error) {
	if id.Sign() <= 0 || id.Cmp(big.NewInt(int64(len(f.properties)))) > 0 {
		return nil, reverted("Property does not exist")
	}
	return &f.properties[id.Int64()-1], nil
}

func (f *fakeMarketplace) ListProperty(ctx context.Context, terms estate.ListingTerms) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.properties = append(f.properties, estate.Property{
		ID: big.NewInt(int64(len(f.properties) + 1)),
		Listing: estate.PropertyListing{
			Owner:         f.wallet,
			Price:         terms.Price,
			RentAmount:    terms.RentAmount,
			RentDuration:  terms.RentDuration,
			ForSale:       terms.ForSale,
			ForRent:       terms.ForRent,
			AcceptingBids: terms.AcceptingBids,
		},
	})
	id := big.NewInt(int64(len(f.properties)) + f.listedIDShift)

	// an unrelated log first, decoding must not rely on position
	unrelated := f.eventLog("InspectorAdded", []common.Hash{common.BytesToHash(otherAddr.Bytes())})
	listed := f.eventLog("PropertyListed",
		[]common.Hash{common.BigToHash(id), common.BytesToHash(f.wallet.Bytes())},
		terms.Price, terms.ForSale, terms.ForRent,
	)
	return f.newTx(unrelated, listed), nil
}

func (f *fakeMarketplace) SetPropertyDetails(ctx context.Context, id *big.Int, details estate.PropertyDetails) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.detailsSubmitErr != nil {
		return nil, f.detailsSubmitErr
	}
	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	if f.detailsReverts {
		tx := f.newTx()
		f.mined[tx.Hash()] = minedTx{
			receipt: &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: tx.Hash(), BlockNumber: big.NewInt(f.block)},
			err:     reverted("out of gas"),
		}
		return tx, nil
	}
	p.Details = details
	return f.newTx(f.eventLog("PropertyDetailsUpdated", []common.Hash{common.BigToHash(id)})), nil
}

func (f *fakeMarketplace) PlaceBid(ctx context.Context, id *big.Int, bid estate.BidRequest) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	if bid.Value == nil || bid.Amount == nil || bid.Value.Cmp(bid.Amount) != 0 {
		return nil, reverted("Bid amount must match sent value")
	}
	if !p.Listing.AcceptingBids {
		return nil, reverted("Property is not accepting bids")
	}
	key := id.Int64()
	f.bids[key] = append(f.bids[key], estate.Bid{
		PropertyID: id,
		Index:      int64(len(f.bids[key])),
		Bidder:     f.wallet,
		Amount:     bid.Amount,
		IsActive:   true,
	})
	return f.newTx(f.eventLog("BidPlaced",
		[]common.Hash{common.BigToHash(id), common.BytesToHash(f.wallet.Bytes())},
		bid.Amount,
	)), nil
}

func (f *fakeMarketplace) AcceptBid(ctx context.Context, id *big.Int, bidder common.Address) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	bids := f.bids[id.Int64()]
	for i := range bids {
		if bids[i].Bidder == bidder && bids[i].IsActive {
			bids[i].IsActive = false
			p.Listing.IsSold = true
			p.Listing.AcceptingBids = false
			p.Listing.Owner = bidder
			return f.newTx(), nil
		}
	}
	return nil, reverted("No active bid from bidder")
}

func (f *fakeMarketplace) InspectProperty(ctx context.Context, id *big.Int, rating uint8, pass bool) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	p.Listing.IsInspected = pass
	p.Listing.InspectionRating = rating
	return f.newTx(), nil
}

func (f *fakeMarketplace) RentProperty(ctx context.Context, id *big.Int, value *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	if !p.Listing.ForRent || value == nil || p.Listing.RentAmount == nil || value.Cmp(p.Listing.RentAmount) != 0 {
		return nil, reverted("Incorrect rent amount")
	}
	p.Listing.IsRented = true
	return f.newTx(), nil
}

func (f *fakeMarketplace) ToggleBidAcceptance(ctx context.Context, id *big.Int, accepting bool) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	p.Listing.AcceptingBids = accepting
	return f.newTx(), nil
}

func (f *fakeMarketplace) UnlistProperty(ctx context.Context, id *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	p.Listing.ForSale = false
	p.Listing.ForRent = false
	return f.newTx(), nil
}

func (f *fakeMarketplace) AddInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inspectors[inspector] = &estate.Inspector{Address: inspector, IsRegistered: true, SuccessfulInspections: big.NewInt(0), TotalInspections: big.NewInt(0)}
	return f.newTx(), nil
}

func (f *fakeMarketplace) RemoveInspector(ctx context.Context, inspector common.Address) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.inspectors[inspector]; ok {
		i.IsRegistered = false
	}
	return f.newTx(), nil
}

func (f *fakeMarketplace) TransferOwnership(ctx context.Context, newOwner common.Address) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.owner != f.wallet {
		return nil, reverted("Ownable: caller is not the owner")
	}
	f.owner = newOwner
	return f.newTx(), nil
}

func (f *fakeMarketplace) WaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mined[tx.Hash()]
	if !ok || f.hideReceipts {
		return nil, lib.WrapError(contracts.ErrProvider, fmt.Errorf("%w: %s", contracts.ErrReceiptTimeout, tx.Hash()))
	}
	return m.receipt, m.err
}

func (f *fakeMarketplace) ReceiptByHash(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mined[txHash]
	if !ok || f.hideReceipts {
		return nil, lib.WrapError(contracts.ErrProvider, fmt.Errorf("%w: %s", contracts.ErrTxNotMined, txHash))
	}
	return m.receipt, m.err
}

func (f *fakeMarketplace) DecodePropertyID(receipt *types.Receipt) (*big.Int, error) {
	return f.decoder.PropertyID(receipt, string(estate.EventPropertyListed))
}

func (f *fakeMarketplace) PropertyCounter(ctx context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[KeyCounter]++
	if f.counterErr != nil {
		return nil, f.counterErr
	}
	return big.NewInt(int64(len(f.properties))), nil
}

func (f *fakeMarketplace) GetProperty(ctx context.Context, id *big.Int) (*estate.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[PropertyKey(id)]++
	if id.Cmp(big.NewInt(int64(len(f.properties)))) > 0 {
		// unset storage slot
		return &estate.Property{ID: id}, nil
	}
	p, err := f.property(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (f *fakeMarketplace) GetAllProperties(ctx context.Context) ([]estate.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[KeyProperties]++
	return append([]estate.Property(nil), f.properties...), nil
}

func (f *fakeMarketplace) GetBid(ctx context.Context, id *big.Int, index int64) (*estate.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bids := f.bids[id.Int64()]
	if index >= int64(len(bids)) {
		return nil, reverted("")
	}
	b := bids[index]
	return &b, nil
}

func (f *fakeMarketplace) GetInspector(ctx context.Context, addr common.Address) (*estate.Inspector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.inspectors[addr]; ok {
		cp := *i
		return &cp, nil
	}
	return &estate.Inspector{Address: addr, SuccessfulInspections: big.NewInt(0), TotalInspections: big.NewInt(0)}, nil
}

func (f *fakeMarketplace) Owner(ctx context.Context) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owner, nil
}

func (f *fakeMarketplace) WalletAddress() common.Address {
	return f.wallet
}

func (f *fakeMarketplace) readCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[key]
}
