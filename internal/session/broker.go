// Package session implements the process-wide session-change broadcast: one
// writer (the auth service) publishes, any number of subscribers observe.
package session

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yalajobs/jobboard-api/internal/api/metrics"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
	subBuffer      = 16
)

// EventKind identifies what changed about a session.
type EventKind string

const (
	SignedIn        EventKind = "signed_in"
	SignedOut       EventKind = "signed_out"
	MetadataUpdated EventKind = "metadata_updated"
)

// Event is one session state change. Session is nil for SignedOut.
type Event struct {
	Kind    EventKind
	UserID  string
	Session *domain.Session
	At      time.Time
}

// Broker fans session events out to subscribers. Events are sharded to a
// fixed set of workers by user id, so changes to one user's session are
// always observed in publish order.
type Broker struct {
	workers []chan Event
	log     zerolog.Logger

	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
}

// NewBroker creates a Broker with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewBroker(numWorkers int, log zerolog.Logger) *Broker {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	b := &Broker{
		workers: make([]chan Event, numWorkers),
		log:     log,
		subs:    make(map[int]chan Event),
	}
	for i := range b.workers {
		b.workers[i] = make(chan Event, channelBuffer)
	}
	return b
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (b *Broker) Start(ctx context.Context) {
	for i, ch := range b.workers {
		go b.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its user. Only the
// auth service calls this; every other component subscribes.
func (b *Broker) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	idx := b.shardIndex(event.UserID)
	b.workers[idx] <- event
	metrics.SessionEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(b.workers[idx])))
}

// Subscribe registers a new subscriber and returns its id and channel.
// Callers must Unsubscribe when done; an abandoned subscriber eventually
// drops events.
func (b *Broker) Subscribe() (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, subBuffer)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (b *Broker) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(b.workers)
}

func (b *Broker) runWorker(ctx context.Context, id int, ch <-chan Event) {
	gauge := metrics.SessionEventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			b.deliver(event)
		}
	}
}

func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		select {
		case sub <- event:
		default:
			// Slow subscriber: drop rather than block the worker.
			metrics.SessionEventsDroppedTotal.Inc()
			b.log.Warn().
				Str("user_id", event.UserID).
				Str("kind", string(event.Kind)).
				Msg("session event dropped on slow subscriber")
		}
	}
}
