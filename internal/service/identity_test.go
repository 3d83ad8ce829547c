package service

import (
	"context"
	"testing"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestHandleEvent_CreatedUpsertIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := NewIdentityService(store)

	event := domain.IdentityEvent{
		Type:     domain.IdentityCreated,
		UserID:   "user_2abc",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		ImageURL: "https://img.example.com/a.png",
	}

	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("redelivered created must upsert, got: %v", err)
	}

	user := store.users["user_2abc"]
	if user == nil {
		t.Fatal("expected user row")
	}
	if user.Name != "Jane Doe" || user.Email != "jane@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestHandleEvent_UpdatedPatchesProfileOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewIdentityService(store)

	courseID := uuid.New()
	store.users["user_1"] = &domain.User{ID: "user_1", Name: "Old", Email: "old@example.com", Role: "educator"}
	store.enrollments["user_1"] = map[uuid.UUID]bool{courseID: true}

	event := domain.IdentityEvent{
		Type:   domain.IdentityUpdated,
		UserID: "user_1",
		Name:   "New Name",
		Email:  "new@example.com",
	}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	user := store.users["user_1"]
	if user.Name != "New Name" || user.Email != "new@example.com" {
		t.Errorf("profile not patched: %+v", user)
	}
	if user.Role != "educator" {
		t.Error("update must not touch the role")
	}
	if !store.enrollments["user_1"][courseID] {
		t.Error("update must not touch enrollments")
	}
}

func TestHandleEvent_DeletedLeavesPurchasesOrphaned(t *testing.T) {
	store := newFakeStore()
	svc := NewIdentityService(store)

	purchaseID := uuid.New()
	store.users["user_1"] = &domain.User{ID: "user_1"}
	store.purchases[purchaseID] = &domain.Purchase{
		ID:     purchaseID,
		UserID: "user_1",
		Amount: decimal.NewFromInt(10),
		Status: domain.PurchaseCompleted,
	}

	event := domain.IdentityEvent{Type: domain.IdentityDeleted, UserID: "user_1"}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if _, ok := store.users["user_1"]; ok {
		t.Error("user row must be removed")
	}
	// Каскада нет: покупка остается с осиротевшей ссылкой
	if _, ok := store.purchases[purchaseID]; !ok {
		t.Error("purchase row must survive user deletion")
	}
}

func TestHandleEvent_UnknownTypeIsAcknowledged(t *testing.T) {
	store := newFakeStore()
	svc := NewIdentityService(store)

	event := domain.IdentityEvent{Type: "session.created", UserID: "user_1"}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Errorf("unknown type must be acked, got: %v", err)
	}
}
