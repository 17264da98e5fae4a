package marketplace

import (
	"testing"

	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func feedEvent(block uint64, logIndex uint) estate.Event {
	return estate.Event{
		Name:        estate.EventBidPlaced,
		TxHash:      common.BigToHash(common.Big1),
		BlockNumber: block,
		LogIndex:    logIndex,
	}
}

func TestEventFeedBounded(t *testing.T) {
	f := NewEventFeed(3)
	for i := uint(0); i < 5; i++ {
		require.True(t, f.Push(feedEvent(uint64(i), i)))
	}
	require.Equal(t, 3, f.Len())

	recent := f.Recent(0)
	require.Len(t, recent, 3)
	require.Equal(t, uint64(4), recent[0].BlockNumber)
	require.Equal(t, uint64(2), recent[2].BlockNumber)

	require.Len(t, f.Recent(2), 2)
}

func TestEventFeedDeduplicates(t *testing.T) {
	f := NewEventFeed(3)
	require.True(t, f.Push(feedEvent(1, 0)))
	require.False(t, f.Push(feedEvent(1, 0)))
	require.True(t, f.Push(feedEvent(1, 1)))
	require.Equal(t, 2, f.Len())
}

func TestEventFeedDroppedEventCanReturn(t *testing.T) {
	f := NewEventFeed(1)
	require.True(t, f.Push(feedEvent(1, 0)))
	require.True(t, f.Push(feedEvent(1, 1)))
	require.True(t, f.Push(feedEvent(1, 0)))
}
