package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rupee-pay/rupee_pay/internal/logging"
)

type captureNotifier struct {
	mu       sync.Mutex
	messages []Message
	fail     map[string]bool
}

func (n *captureNotifier) Send(_ context.Context, msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[msg.ChatID] {
		return errors.New("delivery refused")
	}
	n.messages = append(n.messages, msg)
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	notifier := &captureNotifier{}
	d := NewDispatcher(notifier, logging.Discard())

	d.Notify("chat-1", "first")
	d.Notify("chat-1", "second")
	d.NotifyWithActions("ops", "decide", []Action{{Label: "ok", URL: "https://example.com"}})
	d.Close()

	if len(notifier.messages) != 3 {
		t.Fatalf("expected 3 delivered messages, got %d", len(notifier.messages))
	}
	if notifier.messages[0].Text != "first" || notifier.messages[1].Text != "second" {
		t.Fatalf("messages delivered out of order: %+v", notifier.messages)
	}
	if len(notifier.messages[2].Actions) != 1 {
		t.Fatalf("actions lost in transit: %+v", notifier.messages[2])
	}
}

func TestDispatcherSurvivesDeliveryFailure(t *testing.T) {
	notifier := &captureNotifier{fail: map[string]bool{"broken": true}}
	d := NewDispatcher(notifier, logging.Discard())

	d.Notify("broken", "never lands")
	d.Notify("chat-1", "still delivered")
	d.Close()

	if len(notifier.messages) != 1 || notifier.messages[0].ChatID != "chat-1" {
		t.Fatalf("worker must keep draining after a failure, got %+v", notifier.messages)
	}
}

func TestDispatcherIgnoresEmptyChatID(t *testing.T) {
	notifier := &captureNotifier{}
	d := NewDispatcher(notifier, logging.Discard())

	d.Notify("", "nowhere to go")
	d.Close()

	if len(notifier.messages) != 0 {
		t.Fatalf("expected no deliveries, got %+v", notifier.messages)
	}
}
