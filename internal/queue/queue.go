package queue

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"song-request-service/internal/events"
)

// Queue is the in-memory request store. All reads and writes go through mu;
// the conflict scan and the append in Submit share one critical section.
type Queue struct {
	mu       sync.RWMutex
	requests []SongRequest
	index    map[int64]int
	nextID   int64

	publisher events.Publisher
	now       func() time.Time
}

func New(pub events.Publisher) *Queue {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Queue{
		index:     make(map[int64]int),
		publisher: pub,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (q *Queue) Submit(ctx context.Context, in SubmitInput) (SongRequest, error) {
	if in.SongID == "" {
		return SongRequest{}, &ValidationError{msgFieldsRequired}
	}
	if in.TableNo <= 0 {
		return SongRequest{}, &ValidationError{msgBadTableNo}
	}

	name := in.SongName
	if name == "" {
		name = defaultSongName
	}

	q.mu.Lock()
	for _, r := range q.requests {
		if r.TableNo == in.TableNo && isActive(r.Status) {
			q.mu.Unlock()
			return SongRequest{}, ErrTableActive
		}
	}

	q.nextID++
	req := SongRequest{
		ID:        q.nextID,
		TableNo:   in.TableNo,
		SongID:    in.SongID,
		SongName:  name,
		SongURL:   in.SongURL,
		Status:    StatusPending,
		CreatedAt: q.now(),
	}
	q.index[req.ID] = len(q.requests)
	q.requests = append(q.requests, req)
	q.mu.Unlock()

	q.publish(ctx, events.TypeRequestCreated, req)
	return req, nil
}

// List returns a copy of the queue ordered by creation time. A non-empty
// status keeps only requests whose status equals it after upper-casing.
func (q *Queue) List(ctx context.Context, status string) []SongRequest {
	filter := normalizeStatus(status)

	q.mu.RLock()
	out := make([]SongRequest, 0, len(q.requests))
	for _, r := range q.requests {
		if filter != "" && r.Status != filter {
			continue
		}
		out = append(out, r)
	}
	q.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (q *Queue) Get(ctx context.Context, id int64) (SongRequest, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	i, ok := q.index[id]
	if !ok {
		return SongRequest{}, ErrNotFound
	}
	return q.requests[i], nil
}

// UpdateStatus overwrites the status of request id. Any transition is
// accepted; an empty status means DONE.
func (q *Queue) UpdateStatus(ctx context.Context, id int64, status string) (SongRequest, error) {
	next := normalizeStatus(status)
	if next == "" {
		next = StatusDone
	}

	q.mu.Lock()
	i, ok := q.index[id]
	if !ok {
		q.mu.Unlock()
		return SongRequest{}, ErrNotFound
	}
	q.requests[i].Status = next
	updated := q.requests[i]
	q.mu.Unlock()

	q.publish(ctx, events.TypeRequestStatusChanged, updated)
	return updated, nil
}

func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.requests)
}

func (q *Queue) publish(ctx context.Context, eventType string, req SongRequest) {
	if err := q.publisher.Publish(ctx, events.New(eventType, req)); err != nil {
		slog.Warn("queue: publish event failed", "type", eventType, "requestId", req.ID, "err", err)
	}
}

func normalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
