package contracts

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/require"
)

var watchedAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func blockNumberMapper(l types.Log) (interface{}, error) {
	return l.BlockNumber, nil
}

// scriptedSub is a node side log subscription the test can break on demand
type scriptedSub struct {
	event.Subscription
	logs chan<- types.Log
	fail chan error
}

func newScriptedSub(logs chan<- types.Log) *scriptedSub {
	s := &scriptedSub{logs: logs, fail: make(chan error, 1)}
	s.Subscription = event.NewSubscription(func(quit <-chan struct{}) error {
		select {
		case <-quit:
			return nil
		case err := <-s.fail:
			return err
		}
	})
	return s
}

// watcherClient serves the log related calls of EthereumClient from scripted data
type watcherClient struct {
	EthereumClient

	mu sync.Mutex

	// subscriptions
	subscribeErr func(call int) error
	subQueries   []ethereum.FilterQuery
	subs         []*scriptedSub

	// polling
	heads         []uint64
	headerErrs    int
	headerCalls   []time.Time
	logs          []types.Log
	filterQueries []ethereum.FilterQuery
}

func (c *watcherClient) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	call := len(c.subQueries)
	c.subQueries = append(c.subQueries, q)
	if c.subscribeErr != nil {
		if err := c.subscribeErr(call); err != nil {
			return nil, err
		}
	}
	s := newScriptedSub(ch)
	c.subs = append(c.subs, s)
	return s, nil
}

func (c *watcherClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.headerCalls = append(c.headerCalls, time.Now())
	if c.headerErrs > 0 {
		c.headerErrs--
		return nil, errors.New("connection refused")
	}
	head := c.heads[0]
	if len(c.heads) > 1 {
		c.heads = c.heads[1:]
	}
	return &types.Header{Number: new(big.Int).SetUint64(head)}, nil
}

func (c *watcherClient) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filterQueries = append(c.filterQueries, q)
	res := []types.Log{}
	for _, l := range c.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			res = append(res, l)
		}
	}
	return res, nil
}

func (c *watcherClient) subAt(i int) *scriptedSub {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i >= len(c.subs) {
		return nil
	}
	return c.subs[i]
}

func (c *watcherClient) subQueryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subQueries)
}

func (c *watcherClient) filterQueryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filterQueries)
}

func (c *watcherClient) headerCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.headerCalls)
}

func receiveEvent(t *testing.T, sub *lib.Subscription) interface{} {
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "no event received")
	}
	return nil
}

func receiveErr(t *testing.T, sub *lib.Subscription) error {
	select {
	case err := <-sub.Err():
		return err
	case <-time.After(time.Second):
		require.FailNow(t, "subscription did not end")
	}
	return nil
}

func TestLogWatcherSubscriptionFailedResubscribe(t *testing.T) {
	client := &watcherClient{
		subscribeErr: func(call int) error {
			if call == 0 {
				return nil
			}
			return errors.New("connection refused")
		},
	}
	w := NewLogWatcherSubscription(client, 2, &lib.LoggerMock{})
	w.retryDelay = time.Millisecond

	sub, err := w.Watch(context.Background(), watchedAddr, blockNumberMapper, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	client.subAt(0).fail <- errors.New("websocket closed")

	err = receiveErr(t, sub)
	require.ErrorIs(t, err, ErrProvider)
	require.Equal(t, 3, client.subQueryCount())

	_, ok := <-sub.Events()
	require.False(t, ok)
}

func TestLogWatcherSubscriptionResubscribesFromLastBlock(t *testing.T) {
	client := &watcherClient{}
	w := NewLogWatcherSubscription(client, 2, &lib.LoggerMock{})
	w.retryDelay = time.Millisecond

	sub, err := w.Watch(context.Background(), watchedAddr, blockNumberMapper, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	first := client.subAt(0)
	first.logs <- types.Log{Address: watchedAddr, BlockNumber: 7}
	require.Equal(t, uint64(7), receiveEvent(t, sub))

	first.fail <- errors.New("websocket closed")
	require.Eventually(t, func() bool { return client.subAt(1) != nil }, time.Second, time.Millisecond)

	client.mu.Lock()
	resumed := client.subQueries[1]
	client.mu.Unlock()
	require.Equal(t, []common.Address{watchedAddr}, resumed.Addresses)
	require.Equal(t, 0, resumed.FromBlock.Cmp(big.NewInt(7)))

	second := client.subAt(1)
	second.logs <- types.Log{Address: watchedAddr, BlockNumber: 8, Removed: true}
	second.logs <- types.Log{Address: watchedAddr, BlockNumber: 9}
	require.Equal(t, uint64(9), receiveEvent(t, sub))
}

func TestLogWatcherPollingAdvancesBlockRange(t *testing.T) {
	client := &watcherClient{
		heads: []uint64{10, 10, 12},
		logs: []types.Log{
			{Address: watchedAddr, BlockNumber: 10},
			{Address: watchedAddr, BlockNumber: 11, Removed: true},
			{Address: watchedAddr, BlockNumber: 12},
		},
	}
	w := NewLogWatcherPolling(client, time.Millisecond, 3, &lib.LoggerMock{})

	sub, err := w.Watch(context.Background(), watchedAddr, blockNumberMapper, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.Equal(t, uint64(10), receiveEvent(t, sub))
	require.Equal(t, uint64(12), receiveEvent(t, sub))

	// head stays at 12, nothing new to query
	calls := client.headerCallCount()
	require.Eventually(t, func() bool { return client.headerCallCount() > calls+2 }, time.Second, time.Millisecond)
	require.Equal(t, 2, client.filterQueryCount())

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Equal(t, uint64(10), client.filterQueries[0].FromBlock.Uint64())
	require.Equal(t, uint64(10), client.filterQueries[0].ToBlock.Uint64())
	require.Equal(t, uint64(11), client.filterQueries[1].FromBlock.Uint64())
	require.Equal(t, uint64(12), client.filterQueries[1].ToBlock.Uint64())
}

func TestLogWatcherPollingRetriesWithDelay(t *testing.T) {
	client := &watcherClient{
		heads:      []uint64{5},
		headerErrs: 2,
		logs:       []types.Log{{Address: watchedAddr, BlockNumber: 5}},
	}
	w := NewLogWatcherPolling(client, time.Millisecond, 3, &lib.LoggerMock{})
	w.retryDelay = 20 * time.Millisecond

	sub, err := w.Watch(context.Background(), watchedAddr, blockNumberMapper, big.NewInt(5))
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.Equal(t, uint64(5), receiveEvent(t, sub))

	client.mu.Lock()
	defer client.mu.Unlock()
	require.GreaterOrEqual(t, len(client.headerCalls), 3)
	require.GreaterOrEqual(t, client.headerCalls[1].Sub(client.headerCalls[0]), w.retryDelay)
	require.GreaterOrEqual(t, client.headerCalls[2].Sub(client.headerCalls[1]), w.retryDelay)
}

func TestLogWatcherPollingGivesUpAfterMaxReconnects(t *testing.T) {
	client := &watcherClient{
		heads:      []uint64{5},
		headerErrs: 100,
	}
	w := NewLogWatcherPolling(client, time.Millisecond, 2, &lib.LoggerMock{})
	w.retryDelay = time.Millisecond

	sub, err := w.Watch(context.Background(), watchedAddr, blockNumberMapper, big.NewInt(5))
	require.NoError(t, err)
	defer sub.Unsubscribe()

	err = receiveErr(t, sub)
	require.ErrorIs(t, err, ErrProvider)
	require.Equal(t, 2, client.headerCallCount())
}
