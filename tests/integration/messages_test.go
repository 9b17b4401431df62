package integration

import (
	"context"
	"testing"

	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

func TestMessageRecipientStateIsolation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sender := createTestEmployee(t, db, "Dispatcher", models.RoleManager)
	alice := createTestEmployee(t, db, "Alice Agent", models.RoleShipper)
	bob := createTestEmployee(t, db, "Bob Agent", models.RoleShipper)

	message, err := store.CreateMessage(ctx, db, store.CreateMessageRequest{
		Subject:      "Container CNT-AIR-001 arriving",
		Body:         "Prepare the pickup area.",
		SenderID:     sender.ID,
		RecipientIDs: []int64{alice.ID, bob.ID},
	})
	if err != nil {
		t.Fatalf("Create message: %v", err)
	}
	if len(message.Recipients) != 2 {
		t.Fatalf("Expected 2 recipient entries, got %d", len(message.Recipients))
	}

	// Alice reads and stars; Bob's entry must be untouched.
	if _, err := store.MarkMessageRead(ctx, db, message.ID, alice.ID); err != nil {
		t.Fatalf("Mark read: %v", err)
	}
	updated, err := store.ToggleMessageStar(ctx, db, message.ID, alice.ID)
	if err != nil {
		t.Fatalf("Toggle star: %v", err)
	}

	aliceState := updated.Recipients[store.RecipientKey(alice.ID)]
	if !aliceState.Read || !aliceState.Starred {
		t.Errorf("Expected alice read+starred, got %+v", aliceState)
	}
	bobState := updated.Recipients[store.RecipientKey(bob.ID)]
	if bobState.Read || bobState.Starred || bobState.Deleted {
		t.Errorf("Bob's state mutated: %+v", bobState)
	}

	// Deleting for Bob hides it from his inbox only.
	if err := store.DeleteMessageForRecipient(ctx, db, message.ID, bob.ID); err != nil {
		t.Fatalf("Delete for bob: %v", err)
	}

	bobInbox, err := store.ListInbox(ctx, db, bob.ID)
	if err != nil {
		t.Fatalf("List bob inbox: %v", err)
	}
	if len(bobInbox) != 0 {
		t.Errorf("Expected empty inbox for bob, got %d messages", len(bobInbox))
	}

	aliceInbox, err := store.ListInbox(ctx, db, alice.ID)
	if err != nil {
		t.Fatalf("List alice inbox: %v", err)
	}
	if len(aliceInbox) != 1 {
		t.Errorf("Expected one message in alice inbox, got %d", len(aliceInbox))
	}
}

func TestInboxExcludesUnaddressedRecipients(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sender := createTestEmployee(t, db, "Solo Sender", models.RoleAdmin)
	recipient := createTestEmployee(t, db, "Only Recipient", models.RoleCashier)
	outsider := createTestEmployee(t, db, "Outsider", models.RoleCashier)

	if _, err := store.CreateMessage(ctx, db, store.CreateMessageRequest{
		Subject:      "Payment reconciliation",
		SenderID:     sender.ID,
		RecipientIDs: []int64{recipient.ID},
	}); err != nil {
		t.Fatalf("Create message: %v", err)
	}

	inbox, err := store.ListInbox(ctx, db, outsider.ID)
	if err != nil {
		t.Fatalf("List outsider inbox: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("Outsider must not see the message, got %d", len(inbox))
	}
}
