package queue

import (
	"context"
	"sync"
)

// MemoryClient is the in-process queue used when no SQS queue is configured.
// With Deliver set, messages are handed over synchronously; otherwise they are
// buffered up to Capacity, dropping the oldest.
type MemoryClient struct {
	Deliver  func(ctx context.Context, msg Message) error
	Capacity int

	mu      sync.Mutex
	pending []Message
}

const defaultMemoryCapacity = 1000

func NewMemoryClient(deliver func(ctx context.Context, msg Message) error) *MemoryClient {
	return &MemoryClient{Deliver: deliver, Capacity: defaultMemoryCapacity}
}

func (m *MemoryClient) Send(ctx context.Context, msg Message) error {
	if m.Deliver != nil {
		return m.Deliver(ctx, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, msg)
	if m.Capacity > 0 && len(m.pending) > m.Capacity {
		m.pending = m.pending[len(m.pending)-m.Capacity:]
	}
	return nil
}

// Drain returns and clears the buffered messages.
func (m *MemoryClient) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	return out
}

var _ Client = (*MemoryClient)(nil)
