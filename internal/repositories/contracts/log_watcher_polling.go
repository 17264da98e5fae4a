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

type LogWatcherPolling struct {
	// config
	maxReconnects int
	pollInterval  time.Duration
	retryDelay    time.Duration

	// deps
	client EthereumClient
	log    interfaces.ILogger
}

func NewLogWatcherPolling(client EthereumClient, pollInterval time.Duration, maxReconnects int, log interfaces.ILogger) *LogWatcherPolling {
	return &LogWatcherPolling{
		client:        client,
		pollInterval:  pollInterval,
		maxReconnects: maxReconnects,
		retryDelay:    RECONNECT_TIMEOUT,
		log:           log,
	}
}

func (w *LogWatcherPolling) Watch(ctx context.Context, contractAddr common.Address, mapper EventMapper, fromBlock *big.Int) (*lib.Subscription, error) {
	if fromBlock == nil {
		header, err := w.client.HeaderByNumber(ctx, nil)
		if err != nil {
			return nil, lib.WrapError(ErrProvider, err)
		}
		fromBlock = header.Number
	}
	nextBlock := new(big.Int).Set(fromBlock)

	sink := make(chan interface{})
	return lib.NewSubscription(func(quit <-chan struct{}) error {
		defer close(sink)

		for {
			header, err := w.headerRetry(ctx)
			if err != nil {
				return err
			}

			if header.Number.Cmp(nextBlock) >= 0 {
				query := ethereum.FilterQuery{
					Addresses: []common.Address{contractAddr},
					FromBlock: nextBlock,
					ToBlock:   header.Number,
				}
				logs, err := w.filterLogsRetry(ctx, query)
				if err != nil {
					return err
				}

				for _, log := range logs {
					if log.Removed {
						continue
					}
					event, err := mapper(log)
					if err != nil {
						return err // mapper error, retry won't help
					}

					select {
					case <-quit:
						return nil
					case <-ctx.Done():
						return ctx.Err()
					case sink <- event:
					}
				}

				nextBlock = new(big.Int).Add(header.Number, big.NewInt(1))
			}

			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.pollInterval):
			}
		}
	}, sink), nil
}

func (w *LogWatcherPolling) headerRetry(ctx context.Context) (*types.Header, error) {
	var lastErr error

	for attempts := 0; attempts < w.maxReconnects; attempts++ {
		if attempts > 0 {
			if err := w.waitRetry(ctx); err != nil {
				return nil, err
			}
		}
		header, err := w.client.HeaderByNumber(ctx, nil)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			w.log.Debugf("cannot fetch head block, attempt %d: %s", attempts+1, err)
			continue
		}
		if attempts > 0 {
			w.log.Warnf("polling recovered after error: %s", lastErr)
		}
		return header, nil
	}

	return nil, lib.WrapError(ErrProvider, lastErr)
}

func (w *LogWatcherPolling) filterLogsRetry(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var lastErr error

	for attempts := 0; attempts < w.maxReconnects; attempts++ {
		if attempts > 0 {
			if err := w.waitRetry(ctx); err != nil {
				return nil, err
			}
		}
		logs, err := w.client.FilterLogs(ctx, query)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			w.log.Debugf("cannot filter logs %v..%v, attempt %d: %s", query.FromBlock, query.ToBlock, attempts+1, err)
			continue
		}
		if attempts > 0 {
			w.log.Warnf("polling recovered after error: %s", lastErr)
		}

		return logs, nil
	}

	return nil, lib.WrapError(ErrProvider, lastErr)
}

func (w *LogWatcherPolling) waitRetry(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.retryDelay):
		return nil
	}
}
