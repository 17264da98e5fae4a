package contracts

import (
	"context"
	"math/big"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const RECONNECT_TIMEOUT = 2 * time.Second

type LogWatcherSubscription struct {
	// config
	maxReconnects int
	retryDelay    time.Duration

	// deps
	client EthereumClient
	log    interfaces.ILogger
}

func NewLogWatcherSubscription(client EthereumClient, maxReconnects int, log interfaces.ILogger) *LogWatcherSubscription {
	return &LogWatcherSubscription{
		client:        client,
		maxReconnects: maxReconnects,
		retryDelay:    RECONNECT_TIMEOUT,
		log:           log,
	}
}

func (w *LogWatcherSubscription) Watch(ctx context.Context, contractAddr common.Address, mapper EventMapper, fromBlock *big.Int) (*lib.Subscription, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{contractAddr},
		FromBlock: fromBlock,
	}
	in := make(chan types.Log)
	sub, err := w.subscribeFilterLogsRetry(ctx, query, in)
	if err != nil {
		return nil, err
	}

	sink := make(chan interface{})
	return lib.NewSubscription(func(quit <-chan struct{}) error {
		defer close(sink)
		defer func() {
			if sub != nil {
				sub.Unsubscribe()
			}
		}()

		for {
			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case err := <-sub.Err():
				w.log.Warnf("log subscription error: %s, resubscribing from block %v", err, query.FromBlock)
				sub.Unsubscribe()
				sub = nil
				newSub, err := w.subscribeFilterLogsRetry(ctx, query, in)
				if err != nil {
					return err
				}
				sub = newSub
			case log := <-in:
				if log.Removed {
					continue
				}
				event, err := mapper(log)
				if err != nil {
					return err
				}
				// resubscription replays from the last seen block
				query.FromBlock = new(big.Int).SetUint64(log.BlockNumber)

				select {
				case <-quit:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				case sink <- event:
				}
			}
		}
	}, sink), nil
}

func (w *LogWatcherSubscription) subscribeFilterLogsRetry(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	var lastErr error

	for attempts := 0; attempts < w.maxReconnects; attempts++ {
		sub, err := w.client.SubscribeFilterLogs(ctx, query, ch)
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(w.retryDelay):
			}
			continue
		}
		if attempts > 0 {
			w.log.Warnf("subscription reconnected due to error: %s", lastErr)
		}
		return sub, nil
	}

	return nil, lib.WrapError(ErrProvider, lastErr)
}
