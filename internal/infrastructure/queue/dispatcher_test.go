package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *recordingStorage) Upload(context.Context, string) (string, error) {
	return "", nil
}

func (s *recordingStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *recordingStorage) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func TestDispatcher_DeletesEnqueuedAssets(t *testing.T) {
	storage := &recordingStorage{}
	d := NewDispatcher(2, storage, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue("user-1", "https://cdn.example.com/a.png")
	d.Enqueue("user-2", "https://cdn.example.com/b.png")
	d.Enqueue("user-1", "https://cdn.example.com/c.png")

	deadline := time.After(2 * time.Second)
	for {
		if len(storage.snapshot()) == 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected 3 deletions, got %v", storage.snapshot())
		case <-time.After(10 * time.Millisecond):
		}
	}

	got := make(map[string]bool)
	for _, url := range storage.snapshot() {
		got[url] = true
	}
	for _, want := range []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png",
		"https://cdn.example.com/c.png",
	} {
		if !got[want] {
			t.Fatalf("missing deletion for %s", want)
		}
	}
}

func TestDispatcher_SameOwnerSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingStorage{}, zerolog.Nop())

	first := d.shardIndex("user-1")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user-1") != first {
			t.Fatalf("sharding is not deterministic")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingStorage{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
