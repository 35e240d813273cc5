package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the payload version written by this build.
const MessageVersion = 1

// Message asks a worker to recompute one user's recommendation scores.
type Message struct {
	UserID     string `json:"userId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewRefreshMessage builds a current-version message for userID.
func NewRefreshMessage(userID, requestID string, now time.Time) Message {
	return Message{
		UserID:     userID,
		RequestID:  requestID,
		EnqueuedAt: now.UTC().Format(time.RFC3339),
		Version:    MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
