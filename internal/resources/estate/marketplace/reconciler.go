package marketplace

import (
	"context"
	"errors"
	"time"

	"github.com/estate-chain/marketplace-router/internal/interfaces"
	rem "github.com/estate-chain/marketplace-router/internal/repositories/contracts/realestatemarketplace"
	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/atomic"
)

const (
	resubscribeDelay = 5 * time.Second
	publishQueueSize = 256
	publishTimeout   = 5 * time.Second
)

// Reconciler follows marketplace contract events and drops cached reads they affect.
// Changes made by other wallets become visible without waiting for the cache ttl
type Reconciler struct {
	source    EventSource
	cache     *QueryCache
	feed      *EventFeed
	publisher Publisher // optional
	log       interfaces.ILogger

	resubscribeDelay time.Duration
	publishTimeout   time.Duration
	outbox           chan estate.Event

	lastBlock atomic.Uint64
	processed atomic.Uint64
	restarts  atomic.Uint64
	dropped   atomic.Uint64
	now       func() time.Time
}

func NewReconciler(source EventSource, cache *QueryCache, feed *EventFeed, publisher Publisher, log interfaces.ILogger) *Reconciler {
	return &Reconciler{
		source:           source,
		cache:            cache,
		feed:             feed,
		publisher:        publisher,
		log:              log,
		resubscribeDelay: resubscribeDelay,
		publishTimeout:   publishTimeout,
		outbox:           make(chan estate.Event, publishQueueSize),
		now:              time.Now,
	}
}

// Run keeps following events until ctx is cancelled. A failed subscription is
// recreated after resubscribeDelay and the whole cache is dropped, since events
// emitted while disconnected are not replayed
func (r *Reconciler) Run(ctx context.Context) error {
	if r.publisher != nil {
		publisherDone := make(chan struct{})
		go func() {
			defer close(publisherDone)
			r.publishLoop(ctx)
		}()
		defer func() { <-publisherDone }()
	}

	for {
		err := r.follow(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.restarts.Inc()
		r.cache.InvalidateAll()
		r.log.Warnf("event subscription ended: %s, resubscribing in %s", err, r.resubscribeDelay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.resubscribeDelay):
		}
	}
}

func (r *Reconciler) follow(ctx context.Context) error {
	sub, err := r.source.CreateMarketplaceSubscription(ctx)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()
	r.log.Infof("subscribed to marketplace events")

	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				// producer exited, its error arrives on sub.Err()
				events = nil
				continue
			}
			r.handle(event)
		case err := <-sub.Err():
			if err == nil {
				err = errors.New("subscription closed")
			}
			return err
		}
	}
}

func (r *Reconciler) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.outbox:
			pubCtx, cancel := context.WithTimeout(ctx, r.publishTimeout)
			err := r.publisher.Publish(pubCtx, ev)
			cancel()
			if err != nil {
				r.log.Warnf("cannot publish event %s: %s", ev.Name, err)
			}
		}
	}
}

func (r *Reconciler) LastBlock() uint64 {
	return r.lastBlock.Load()
}

func (r *Reconciler) Processed() uint64 {
	return r.processed.Load()
}

func (r *Reconciler) Restarts() uint64 {
	return r.restarts.Load()
}

// Dropped counts events not published because the queue was full
func (r *Reconciler) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *Reconciler) handle(raw interface{}) {
	ev, ok := MapEvent(raw)
	if !ok {
		r.log.Debugf("ignoring event %T", raw)
		return
	}
	ev.ObservedAt = r.now()

	r.invalidate(ev)
	r.processed.Inc()
	if ev.BlockNumber > r.lastBlock.Load() {
		r.lastBlock.Store(ev.BlockNumber)
	}

	if !r.feed.Push(ev) {
		return // already seen
	}
	r.log.Debugf("event %s, property %v, block %d", ev.Name, ev.PropertyID, ev.BlockNumber)

	if r.publisher == nil {
		return
	}
	select {
	case r.outbox <- ev:
	default:
		r.dropped.Inc()
		r.log.Warnf("publish queue is full, dropping event %s tx %s", ev.Name, ev.TxHash.Hex())
	}
}

func (r *Reconciler) invalidate(ev estate.Event) {
	switch ev.Name {
	case estate.EventPropertyListed:
		r.cache.Invalidate(KeyProperties, KeyCounter)
	case estate.EventPropertyDetailsUpdated, estate.EventPropertyUnlisted:
		r.cache.Invalidate(PropertyKey(ev.PropertyID), KeyProperties)
	case estate.EventPropertyInspected:
		keys := []string{PropertyKey(ev.PropertyID), KeyProperties}
		if ev.Account != nil {
			keys = append(keys, InspectorKey(*ev.Account))
		}
		r.cache.Invalidate(keys...)
	case estate.EventBidPlaced:
		r.cache.Invalidate(BidsKey(ev.PropertyID), PropertyKey(ev.PropertyID), KeyProperties)
	case estate.EventInspectorAdded, estate.EventInspectorRemoved:
		r.cache.Invalidate(InspectorKey(*ev.Account))
	case estate.EventOwnershipTransferred:
		r.cache.Invalidate(KeyOwner)
	}
}

// MapEvent converts a decoded binding event into the domain event
func MapEvent(raw interface{}) (estate.Event, bool) {
	switch e := raw.(type) {
	case *rem.RealestatemarketplacePropertyListed:
		ev := fromLog(estate.EventPropertyListed, e.Raw)
		ev.PropertyID = e.PropertyId
		ev.Account = &e.Owner
		ev.Amount = e.Price
		return ev, true
	case *rem.RealestatemarketplacePropertyDetailsUpdated:
		ev := fromLog(estate.EventPropertyDetailsUpdated, e.Raw)
		ev.PropertyID = e.PropertyId
		return ev, true
	case *rem.RealestatemarketplacePropertyUnlisted:
		ev := fromLog(estate.EventPropertyUnlisted, e.Raw)
		ev.PropertyID = e.PropertyId
		return ev, true
	case *rem.RealestatemarketplacePropertyInspected:
		ev := fromLog(estate.EventPropertyInspected, e.Raw)
		ev.PropertyID = e.PropertyId
		ev.Account = &e.Inspector
		ev.Rating = e.Rating
		return ev, true
	case *rem.RealestatemarketplaceBidPlaced:
		ev := fromLog(estate.EventBidPlaced, e.Raw)
		ev.PropertyID = e.PropertyId
		ev.Account = &e.Bidder
		ev.Amount = e.BidAmount
		return ev, true
	case *rem.RealestatemarketplaceInspectorAdded:
		ev := fromLog(estate.EventInspectorAdded, e.Raw)
		ev.Account = &e.Inspector
		return ev, true
	case *rem.RealestatemarketplaceInspectorRemoved:
		ev := fromLog(estate.EventInspectorRemoved, e.Raw)
		ev.Account = &e.Inspector
		return ev, true
	case *rem.RealestatemarketplaceOwnershipTransferred:
		ev := fromLog(estate.EventOwnershipTransferred, e.Raw)
		ev.Account = &e.NewOwner
		return ev, true
	}
	return estate.Event{}, false
}

func fromLog(name estate.EventName, log types.Log) estate.Event {
	return estate.Event{
		Name:        name,
		TxHash:      log.TxHash,
		BlockNumber: log.BlockNumber,
		LogIndex:    log.Index,
	}
}
