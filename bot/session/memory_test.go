package session

import (
	"strconv"
	"sync"
	"testing"

	"github.com/hopevpn/tokenbot/bot/provider"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get(1); ok {
		t.Fatal("fresh store must not hold a record")
	}

	first := Record{Phase: PhaseAwaitingProvider}
	s.Put(1, first)
	got, ok := s.Get(1)
	if !ok || got != first {
		t.Fatalf("got %+v (%v), want %+v", got, ok, first)
	}

	// Put replaces wholesale; no residual fields survive.
	second := Record{Phase: PhaseComplete, Provider: provider.Hertz, Token: "abc"}
	s.Put(1, second)
	got, _ = s.Get(1)
	if got != second {
		t.Fatalf("overwrite: got %+v, want %+v", got, second)
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Fatal("record must be absent after delete")
	}

	// Deleting a missing key is a no-op, not an error state.
	s.Delete(42)
}

func TestMemoryStoreCounts(t *testing.T) {
	s := NewMemoryStore()
	s.Put(1, Record{Phase: PhaseAwaitingProvider})
	s.Put(2, Record{Phase: PhaseAwaitingToken, Provider: provider.Hertz})
	s.Put(3, Record{Phase: PhaseComplete, Provider: provider.Hertz, Token: "t"})
	s.Put(4, Record{Phase: PhaseComplete, Provider: provider.DigitalOcean, Token: "u"})

	counts := s.Counts()
	if counts[PhaseAwaitingProvider] != 1 || counts[PhaseAwaitingToken] != 1 || counts[PhaseComplete] != 2 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestUserIsolation(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	users := []int64{10, 20, 30, 40}
	for _, id := range users {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Put(id, Record{Phase: PhaseAwaitingToken, Provider: provider.Hertz, Token: ""})
				if rec, ok := s.Get(id); ok && rec.Provider != provider.Hertz {
					t.Errorf("user %d observed foreign record %+v", id, rec)
					return
				}
				s.Put(id, Record{Phase: PhaseComplete, Provider: provider.Hertz, Token: strconv.FormatInt(id, 10)})
			}
		}(id)
	}
	wg.Wait()

	for _, id := range users {
		rec, ok := s.Get(id)
		if !ok || rec.Token != strconv.FormatInt(id, 10) {
			t.Fatalf("user %d: got %+v (%v)", id, rec, ok)
		}
	}
}

// Acquire must serialize read-modify-write cycles for one user: with a
// counter stored in the token field, no increment may be lost.
func TestAcquireSerializesSameUser(t *testing.T) {
	s := NewMemoryStore()
	s.Put(7, Record{Phase: PhaseAwaitingProvider, Token: ""})

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := s.Acquire(7)
			defer release()
			rec, _ := s.Get(7)
			n, _ := strconv.Atoi(rec.Token)
			rec.Token = strconv.Itoa(n + 1)
			s.Put(7, rec)
		}()
	}
	wg.Wait()

	rec, _ := s.Get(7)
	if rec.Token != strconv.Itoa(workers) {
		t.Fatalf("lost updates: token = %q, want %d", rec.Token, workers)
	}
}

func TestAcquireDistinctUsersDoNotBlock(t *testing.T) {
	s := NewMemoryStore()
	releaseA := s.Acquire(1)
	done := make(chan struct{})
	go func() {
		release := s.Acquire(2)
		release()
		close(done)
	}()
	<-done
	releaseA()
}
