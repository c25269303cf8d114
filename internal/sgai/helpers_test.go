package sgai

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

// createTestLogger creates a logger for testing
func createTestLogger() arbor.ILogger {
	return arbor.NewLogger()
}

// sentRequest records one call made through mockSender
type sentRequest struct {
	Method string
	Path   string
	APIKey string
	Body   any
}

// scriptedReply is the answer mockSender gives to one call
type scriptedReply struct {
	body    JobResponse
	elapsed time.Duration
	err     error
}

// mockSender implements Sender by replaying a fixed script of replies
type mockSender struct {
	mu      sync.Mutex
	replies []scriptedReply
	calls   []sentRequest
	onSend  func()
}

func newMockSender(replies ...scriptedReply) *mockSender {
	return &mockSender{replies: replies}
}

func reply(body JobResponse, elapsed time.Duration) scriptedReply {
	return scriptedReply{body: body, elapsed: elapsed}
}

func replyErr(err error) scriptedReply {
	return scriptedReply{err: err}
}

func (m *mockSender) Send(ctx context.Context, method, path, apiKey string, body any) (*Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, sentRequest{Method: method, Path: path, APIKey: apiKey, Body: body})
	if m.onSend != nil {
		m.onSend()
	}

	if len(m.replies) == 0 {
		return &Exchange{Body: JobResponse{"status": StatusPending}}, nil
	}
	next := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	if next.err != nil {
		return nil, next.err
	}
	return &Exchange{Body: next.body, Elapsed: next.elapsed}, nil
}

func (m *mockSender) Calls() []sentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// fakeClock advances only when the engine sleeps or a test moves it
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}

// newTestEngine wires an engine to sender and a fake clock
func newTestEngine(sender Sender, budget, interval time.Duration) (*Engine, *fakeClock) {
	clock := newFakeClock()
	e := NewEngine(sender, budget, interval, createTestLogger())
	e.now = clock.Now
	e.sleep = clock.Sleep
	return e, clock
}
