package store

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	original := PackageCursor{
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		ID:        589,
	}

	encoded := EncodeCursor(original)
	if encoded == "" {
		t.Fatal("Expected non-empty cursor")
	}

	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("Failed to decode cursor: %v", err)
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", original.CreatedAt, decoded.CreatedAt)
	}
	if decoded.ID != original.ID {
		t.Errorf("Expected id %d, got %d", original.ID, decoded.ID)
	}
}

func TestEmptyCursorStartsFromNewest(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("Empty cursor should decode: %v", err)
	}
	if cursor.ID != int64(1<<63-1) {
		t.Errorf("Expected max id sentinel, got %d", cursor.ID)
	}
	if time.Since(cursor.CreatedAt) > time.Minute {
		t.Errorf("Expected a recent created_at, got %v", cursor.CreatedAt)
	}
}

func TestGarbageCursorRejected(t *testing.T) {
	if _, err := DecodeCursor("not-base64!!!"); err == nil {
		t.Error("Expected error for malformed cursor")
	}
}
