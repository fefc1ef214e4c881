package upi

import (
	"context"
	"testing"
)

func TestBindCreatesUnverifiedBinding(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	b, err := svc.Bind(context.Background(), BindInput{ChatID: "chat-1"})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if b.IsVerified || b.VPA != "" || b.LinkedAt != nil {
		t.Fatalf("fresh binding must be unverified, got %+v", b)
	}
}

func TestBindVerifiesOnVPA(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	b, err := svc.Bind(ctx, BindInput{ChatID: "chat-1", VPA: "user@upi", BankName: "HDFC"})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !b.IsVerified || b.VPA != "user@upi" || b.BankName != "HDFC" || b.LinkedAt == nil {
		t.Fatalf("expected verified binding, got %+v", b)
	}
}

func TestBindKeepsVPAWhenOmitted(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Bind(ctx, BindInput{ChatID: "chat-1", VPA: "user@upi"}); err != nil {
		t.Fatalf("bind: %v", err)
	}

	// A later call without a VPA only touches the bank name.
	b, err := svc.Bind(ctx, BindInput{ChatID: "chat-1", BankName: "ICICI"})
	if err != nil {
		t.Fatalf("bind update: %v", err)
	}
	if b.VPA != "user@upi" || !b.IsVerified || b.BankName != "ICICI" {
		t.Fatalf("update must not drop the stored vpa, got %+v", b)
	}
}

func TestBindRequiresChatID(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Bind(context.Background(), BindInput{}); err == nil {
		t.Fatal("expected error for missing chat id")
	}
}
