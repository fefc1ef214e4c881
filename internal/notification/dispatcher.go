package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	queueCapacity   = 256
	deliveryTimeout = 15 * time.Second
)

// Sink is the outbound surface ledger services emit notification intents to.
// Enqueueing never blocks and never reports failure back to the caller.
type Sink interface {
	Notify(chatID, text string)
	NotifyWithActions(chatID, text string, actions []Action)
}

// Dispatcher decouples ledger mutations from notification delivery: intents
// are queued and drained by a single worker, and failures are only logged.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	queue    chan Message
	wg       sync.WaitGroup
	once     sync.Once
}

// NewDispatcher starts a dispatcher draining into the given notifier.
func NewDispatcher(notifier Notifier, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan Message, queueCapacity),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Notify enqueues a plain text message.
func (d *Dispatcher) Notify(chatID, text string) {
	d.enqueue(Message{ChatID: chatID, Text: text})
}

// NotifyWithActions enqueues a message carrying inline resolution actions.
func (d *Dispatcher) NotifyWithActions(chatID, text string, actions []Action) {
	d.enqueue(Message{ChatID: chatID, Text: text, Actions: actions})
}

func (d *Dispatcher) enqueue(msg Message) {
	if msg.ChatID == "" {
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("notification queue full, dropping message", "chat_id", msg.ChatID)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := d.notifier.Send(ctx, msg); err != nil {
			d.logger.Warn("notification delivery failed", "chat_id", msg.ChatID, "error", err)
		}
		cancel()
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
