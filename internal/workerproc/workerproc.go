package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"petmatch-backend/internal/queue"
	"petmatch-backend/internal/recommendations"
)

// Refresher recomputes and stores a user's recommendations.
type Refresher interface {
	Refresh(ctx context.Context, userID string, limit int) (recommendations.List, error)
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingUserID indicates a message without a user id.
type ErrMissingUserID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingUserID) Error() string { return "missing user id" }

// ErrUnsupportedVersion indicates a payload written by a newer producer.
type ErrUnsupportedVersion struct {
	Meta      MessageMeta
	RequestID string
	Version   int
}

func (e ErrUnsupportedVersion) Error() string { return "unsupported message version" }

// ErrProcess indicates the refresh failed after successful parsing.
type ErrProcess struct {
	UserID    string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "refresh recommendations"
	}
	return "refresh recommendations: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Unrecoverable reports whether redelivering the message can never succeed.
func Unrecoverable(err error) bool {
	var (
		empty   ErrEmptyBody
		decode  ErrDecode
		missing ErrMissingUserID
		version ErrUnsupportedVersion
	)
	return errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &missing) || errors.As(err, &version)
}

// ParseMessage validates and decodes the queue payload. Version 0 is read as version 1.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.UserID) == "" {
		return msg, meta, ErrMissingUserID{Meta: meta, RequestID: msg.RequestID}
	}
	if msg.Version > queue.MessageVersion {
		return msg, meta, ErrUnsupportedVersion{Meta: meta, RequestID: msg.RequestID, Version: msg.Version}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and processes a message payload.
func HandleMessage(ctx context.Context, refresher Refresher, body string) error {
	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(msg.UserID) == "" {
		return ErrMissingUserID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}
	return Process(ctx, refresher, msg)
}

// Process refreshes the scores of the message's user.
func Process(ctx context.Context, refresher Refresher, msg queue.Message) error {
	if refresher == nil {
		return errors.New("recommendations service not configured")
	}
	if _, err := refresher.Refresh(ctx, msg.UserID, recommendations.RefreshLimit); err != nil {
		return ErrProcess{UserID: msg.UserID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
