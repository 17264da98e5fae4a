package lib

import (
	"github.com/ethereum/go-ethereum/event"
)

// Subscription couples an event.Subscription with the channel its producer writes to
type Subscription struct {
	event.Subscription
	sink <-chan interface{}
}

// NewSubscription runs producer in a separate goroutine. The producer must stop when
// quit is closed and must close sink when it returns
func NewSubscription(producer func(quit <-chan struct{}) error, sink <-chan interface{}) *Subscription {
	return &Subscription{
		Subscription: event.NewSubscription(producer),
		sink:         sink,
	}
}

func (s *Subscription) Events() <-chan interface{} {
	return s.sink
}
