package dashboard

import (
	"context"
	"testing"
	"time"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	r := NewRegistry(time.Hour, (&fakeFetcher{}).factory())

	a := r.Create("abc123")
	b := r.Create("")

	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("IDs = %q, %q, want distinct non-empty", a.ID(), b.ID())
	}
	if r.Get(a.ID()) != a {
		t.Error("Get() did not return created view")
	}
	if !r.Get(a.ID()).Snapshot().Authenticated {
		t.Error("view a not authenticated")
	}
	if r.Get(b.ID()).Snapshot().Authenticated {
		t.Error("view b authenticated without token")
	}
	if r.Get("unknown") != nil {
		t.Error("Get(unknown) != nil")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry(time.Hour, (&fakeFetcher{}).factory())
	d := r.Create("abc123")

	r.Delete(d.ID())

	if r.Get(d.ID()) != nil {
		t.Error("Get() after Delete() != nil")
	}
}

func TestRegistry_Expiry(t *testing.T) {
	r := NewRegistry(time.Millisecond, (&fakeFetcher{}).factory())
	d := r.Create("abc123")

	time.Sleep(5 * time.Millisecond)

	if r.Get(d.ID()) != nil {
		t.Error("Get() returned expired view")
	}
	if n := r.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Sweep() = %d, want 0", r.Len())
	}
}

func TestRegistry_DefaultTTL(t *testing.T) {
	r := NewRegistry(0, (&fakeFetcher{}).factory())
	if r.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", r.ttl, DefaultTTL)
	}
}

func TestRegistry_RunSweeperStops(t *testing.T) {
	r := NewRegistry(time.Millisecond, (&fakeFetcher{}).factory())
	r.Create("abc123")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for r.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not remove expired view")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunSweeper() did not return after cancel")
	}
}
