package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindIngredientsCreated Kind = "ingredients.created"
	KindMemberUpdated      Kind = "member.updated"
	KindLogsRecorded       Kind = "ingredient_logs.recorded"
)

// IngredientSnapshot carries the fields alert generation needs. Events hold
// plain values, never gorm objects, so consumers can not reach back into the
// publisher's transaction state.
type IngredientSnapshot struct {
	ID   uuid.UUID
	Name string
}

type Event struct {
	Kind        Kind
	Ingredients []IngredientSnapshot
	MemberID    uuid.UUID
	LogIDs      []uuid.UUID
}

type Handler func(ctx context.Context, event Event)

// Bus is an in-process queue for post-commit work. Publishers call Publish
// only after their database transaction has committed, so handlers never
// observe uncommitted state. Handlers run on a worker pool detached from the
// request goroutine.
type Bus struct {
	log      *zap.Logger
	queue    chan Event
	handlers map[Kind][]Handler
	mu       sync.RWMutex
	wg       sync.WaitGroup
	workers  int
}

func NewBus(log *zap.Logger, workers int) *Bus {
	if workers <= 0 {
		workers = 2
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Bus{
		log:      log,
		queue:    make(chan Event, 256),
		handlers: make(map[Kind][]Handler),
		workers:  workers,
	}
}

// Subscribe registers a handler for an event kind. Must be called before
// Start.
func (b *Bus) Subscribe(kind Kind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[kind] = append(b.handlers[kind], handler)
}

func (b *Bus) Start() {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}
}

// Stop closes the queue and waits until every queued event has been handled.
func (b *Bus) Stop() {
	close(b.queue)
	b.wg.Wait()
}

// Publish enqueues an event for asynchronous handling. Call it only after the
// transaction that produced the event has committed.
func (b *Bus) Publish(event Event) {
	b.queue <- event
}

func (b *Bus) worker() {
	defer b.wg.Done()

	for event := range b.queue {
		b.dispatch(event)
	}
}

func (b *Bus) dispatch(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Kind]
	b.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panicked",
						zap.String("kind", string(event.Kind)),
						zap.Any("panic", r),
					)
				}
			}()

			handler(context.Background(), event)
		}()
	}
}
