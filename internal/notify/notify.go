// Package notify carries user-facing notices from services to whatever
// transport shows them.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notice)

func (f Func) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Discard drops every notice.
var Discard Notifier = Func(func(context.Context, Notice) {})

// Queue collects the notices of one request.
type Queue struct {
	mu    sync.Mutex
	items []Notice
}

func (q *Queue) Add(n Notice) {
	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()
}

// Drain returns and clears the queued notices.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

type queueKey struct{}

// WithQueue attaches a fresh queue to ctx.
func WithQueue(ctx context.Context) (context.Context, *Queue) {
	q := &Queue{}
	return context.WithValue(ctx, queueKey{}, q), q
}

func QueueFrom(ctx context.Context) (*Queue, bool) {
	q, ok := ctx.Value(queueKey{}).(*Queue)
	return q, ok
}

// Request queues notices on the request queue in ctx and falls back to
// Next when there is none (background jobs, CLI).
type Request struct {
	Next Notifier
}

func (r Request) Notify(ctx context.Context, n Notice) {
	if q, ok := QueueFrom(ctx); ok {
		q.Add(n)
		return
	}
	if r.Next != nil {
		r.Next.Notify(ctx, n)
	}
}

// Log writes notices to a structured logger.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(ctx context.Context, n Notice) {
	level := slog.LevelInfo
	switch n.Kind {
	case Warning:
		level = slog.LevelWarn
	case Error:
		level = slog.LevelError
	}
	l.Logger.LogAttrs(ctx, level, "notice",
		slog.String("kind", string(n.Kind)),
		slog.String("message", n.Message),
	)
}

// Recorder keeps every notice; meant for tests.
type Recorder struct {
	mu      sync.Mutex
	Notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	r.Notices = append(r.Notices, n)
	r.mu.Unlock()
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}
