package queue

import (
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewRefreshMessage("guest:g1", "request-456", time.Date(2026, time.January, 30, 22, 0, 0, 0, time.UTC))

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if got != msg {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
	if got.EnqueuedAt != "2026-01-30T22:00:00Z" || got.Version != MessageVersion {
		t.Fatalf("unexpected message fields: %+v", got)
	}
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	if _, err := DecodeMessage([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}
