package contracts

import (
	"math/big"
	"testing"

	rem "github.com/estate-chain/marketplace-router/internal/repositories/contracts/realestatemarketplace"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	testMarketplaceAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testOwner           = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testBidder          = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func testABI(t *testing.T) *abi.ABI {
	parsed, err := rem.RealestatemarketplaceMetaData.GetAbi()
	require.NoError(t, err)
	return parsed
}

func propertyListedLog(t *testing.T, emitter common.Address, id int64, price *big.Int) *types.Log {
	ev := testABI(t).Events["PropertyListed"]
	data, err := ev.Inputs.NonIndexed().Pack(price, true, false)
	require.NoError(t, err)
	return &types.Log{
		Address: emitter,
		Topics:  []common.Hash{ev.ID, common.BigToHash(big.NewInt(id)), common.BytesToHash(testOwner.Bytes())},
		Data:    data,
	}
}

func bidPlacedLog(t *testing.T, id int64, amount *big.Int) *types.Log {
	ev := testABI(t).Events["BidPlaced"]
	data, err := ev.Inputs.NonIndexed().Pack(amount)
	require.NoError(t, err)
	return &types.Log{
		Address: testMarketplaceAddr,
		Topics:  []common.Hash{ev.ID, common.BigToHash(big.NewInt(id)), common.BytesToHash(testBidder.Bytes())},
		Data:    data,
	}
}

func TestEventDecoderSkipsUnrelatedLogs(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))
	other := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	receipt := &types.Receipt{Logs: []*types.Log{
		bidPlacedLog(t, 99, big.NewInt(1)),
		propertyListedLog(t, other, 77, big.NewInt(1)),
		propertyListedLog(t, testMarketplaceAddr, 4, big.NewInt(1)),
	}}

	id, err := d.PropertyID(receipt, "PropertyListed")
	require.NoError(t, err)
	require.Equal(t, int64(4), id.Int64())
}

func TestEventDecoderMissingEvent(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))

	_, err := d.PropertyID(&types.Receipt{Logs: []*types.Log{bidPlacedLog(t, 1, big.NewInt(1))}}, "PropertyListed")
	require.ErrorIs(t, err, ErrParse)
	require.ErrorIs(t, err, ErrEventNotFound)

	_, err = d.PropertyID(&types.Receipt{}, "PropertyListed")
	require.ErrorIs(t, err, ErrParse)
}

func TestEventDecoderMissingTopic(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))
	log := propertyListedLog(t, testMarketplaceAddr, 1, big.NewInt(1))
	log.Topics = log.Topics[:1]

	_, err := d.PropertyID(&types.Receipt{Logs: []*types.Log{log}}, "PropertyListed")
	require.ErrorIs(t, err, ErrParse)
	require.ErrorIs(t, err, ErrMissingTopic)
}

func TestEventDecoderZeroID(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))

	_, err := d.PropertyID(&types.Receipt{Logs: []*types.Log{propertyListedLog(t, testMarketplaceAddr, 0, big.NewInt(1))}}, "PropertyListed")
	require.ErrorIs(t, err, ErrNonPositiveID)
}

func TestEventDecoderUnknownEvent(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))

	_, err := d.PropertyID(&types.Receipt{}, "PropertySold")
	require.ErrorIs(t, err, ErrUnknownEvent)

	// OwnershipTransferred is keyed by address, not by an integer id
	_, err = d.PropertyID(&types.Receipt{}, "OwnershipTransferred")
	require.ErrorIs(t, err, ErrNotIndexedUint)
}

func TestEventDecoderDecode(t *testing.T) {
	d := NewEventDecoder(testMarketplaceAddr, testABI(t))
	price := big.NewInt(1_000_000_000_000_000_000)
	log := propertyListedLog(t, testMarketplaceAddr, 3, price)

	event, err := d.Decode(*log)
	require.NoError(t, err)

	listed, ok := event.(*rem.RealestatemarketplacePropertyListed)
	require.True(t, ok)
	require.Equal(t, int64(3), listed.PropertyId.Int64())
	require.Equal(t, testOwner, listed.Owner)
	require.Equal(t, price, listed.Price)
	require.True(t, listed.ForSale)
	require.False(t, listed.ForRent)
	require.Equal(t, *log, listed.Raw)

	bid, err := d.Decode(*bidPlacedLog(t, 3, big.NewInt(5)))
	require.NoError(t, err)
	require.Equal(t, testBidder, bid.(*rem.RealestatemarketplaceBidPlaced).Bidder)
}
