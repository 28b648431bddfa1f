package store

import (
	"context"
	"strings"
	"sync"

	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/google/uuid"
)

// MemoryStore is an in-process Store implementation. It backs the
// single-node server and the test suites. All operations are atomic with
// respect to each other; subscription delivery runs on one goroutine per
// subscriber so handler calls for a given path arrive in commit order.
type MemoryStore struct {
	lock      sync.Mutex
	values    map[string]string
	childKeys map[string][]string
	counters  map[string]int64
	logs      map[string][]LogRecord
	subs      map[string]map[*memorySubscription]struct{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:    make(map[string]string),
		childKeys: make(map[string][]string),
		counters:  make(map[string]int64),
		logs:      make(map[string][]LogRecord),
		subs:      make(map[string]map[*memorySubscription]struct{}),
	}
}

func splitPath(path string) (parent, key string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func (s *MemoryStore) Get(ctx context.Context, path string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	value, ok := s.values[path]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.setLocked(path, value)
	return nil
}

func (s *MemoryStore) SetIfAbsent(ctx context.Context, path string, value string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.values[path]; ok {
		return false, nil
	}
	s.setLocked(path, value)
	return true, nil
}

func (s *MemoryStore) setLocked(path, value string) {
	parent, key := splitPath(path)
	_, existed := s.values[path]
	s.values[path] = value
	if !existed {
		s.childKeys[parent] = append(s.childKeys[parent], key)
		s.publishLocked(parent, childEvent{added: true, key: key, value: value})
	}
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	value, ok := s.values[path]
	if !ok {
		return nil
	}
	delete(s.values, path)
	parent, key := splitPath(path)
	keys := s.childKeys[parent]
	for i, k := range keys {
		if k == key {
			s.childKeys[parent] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	s.publishLocked(parent, childEvent{added: false, key: key, value: value})
	return nil
}

func (s *MemoryStore) Push(ctx context.Context, parent string, value string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	key := uuid.NewString()
	s.setLocked(parent+"/"+key, value)
	return key, nil
}

func (s *MemoryStore) GetChildren(ctx context.Context, parent string) (map[string]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	children := make(map[string]string, len(s.childKeys[parent]))
	for _, key := range s.childKeys[parent] {
		children[key] = s.values[parent+"/"+key]
	}
	return children, nil
}

func (s *MemoryStore) IncrementCounter(ctx context.Context, path string, delta int64) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.counters[path] += delta
	return s.counters[path], nil
}

func (s *MemoryStore) GetCounter(ctx context.Context, path string) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.counters[path], nil
}

func (s *MemoryStore) Append(ctx context.Context, path string, value string) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	seq := int64(len(s.logs[path]))
	s.logs[path] = append(s.logs[path], LogRecord{Seq: seq, Value: value})
	return seq, nil
}

func (s *MemoryStore) ReadLog(ctx context.Context, path string) ([]LogRecord, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	records := make([]LogRecord, len(s.logs[path]))
	copy(records, s.logs[path])
	return records, nil
}

// Subscribe registers a child subscription on parent. The snapshot is
// enqueued and the subscriber registered under one lock acquisition, so
// a concurrent write is observed either in the snapshot or as a delta,
// never both and never neither.
func (s *MemoryStore) Subscribe(ctx context.Context, parent string, handler ChildEventHandler) (Subscription, error) {
	sub := newMemorySubscription(s, parent, handler)

	s.lock.Lock()
	for _, key := range s.childKeys[parent] {
		sub.enqueue(childEvent{added: true, key: key, value: s.values[parent+"/"+key]})
	}
	if s.subs[parent] == nil {
		s.subs[parent] = make(map[*memorySubscription]struct{})
	}
	s.subs[parent][sub] = struct{}{}
	s.lock.Unlock()

	go sub.pump()
	return sub, nil
}

func (s *MemoryStore) publishLocked(parent string, event childEvent) {
	for sub := range s.subs[parent] {
		sub.enqueue(event)
	}
}

type childEvent struct {
	added bool
	key   string
	value string
}

type memorySubscription struct {
	store   *MemoryStore
	parent  string
	handler ChildEventHandler

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []childEvent
	closed bool
}

func newMemorySubscription(s *MemoryStore, parent string, handler ChildEventHandler) *memorySubscription {
	sub := &memorySubscription{
		store:   s,
		parent:  parent,
		handler: handler,
	}
	sub.cond = sync.NewCond(&sub.mu)
	return sub
}

func (s *memorySubscription) enqueue(event childEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, event)
	s.cond.Signal()
}

// pump delivers queued events to the handler in order until Cancel.
func (s *memorySubscription) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		event := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if event.added {
			s.handler.ChildAdded(event.key, event.value)
		} else {
			s.handler.ChildRemoved(event.key, event.value)
		}
	}
}

func (s *memorySubscription) Cancel() {
	s.store.lock.Lock()
	if subs, ok := s.store.subs[s.parent]; ok {
		delete(subs, s)
	}
	s.store.lock.Unlock()

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		if n := len(s.queue); n > 0 {
			log.Trace("Dropping %d in-flight events for %s", n, s.parent)
		}
		s.queue = nil
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}
