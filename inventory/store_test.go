package inventory

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestSnapshotReturnsSeed(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	got := store.Snapshot()
	want := map[string]int{"tshirts": 20, "pants": 15}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected snapshot: %v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	snap := store.Snapshot()
	snap["tshirts"] = -100

	if store.Snapshot()["tshirts"] != 20 {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}

func TestApplyPositiveAndNegativeChanges(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())

	state, err := store.Apply("tshirts", -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state["tshirts"] != 17 || state["pants"] != 15 {
		t.Fatalf("unexpected state after sale: %v", state)
	}

	state, err = store.Apply("pants", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state["pants"] != 20 {
		t.Fatalf("unexpected pants count: %d", state["pants"])
	}
}

func TestApplyCaseInsensitiveItem(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	state, err := store.Apply("TShirts", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state["tshirts"] != 21 {
		t.Fatalf("unexpected count: %d", state["tshirts"])
	}
}

func TestApplyUnknownItem(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	before := store.Snapshot()

	_, err := store.Apply("shoes", 1)
	var unknownErr *UnknownItemError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownItemError, got %v", err)
	}
	if unknownErr.Item != "shoes" {
		t.Fatalf("unexpected item in error: %s", unknownErr.Item)
	}
	if !reflect.DeepEqual(store.Snapshot(), before) {
		t.Fatal("store must be unchanged after a rejected update")
	}
}

func TestApplyRejectsNegativeStock(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	before := store.Snapshot()

	_, err := store.Apply("pants", -100)
	var negErr *NegativeStockError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected NegativeStockError, got %v", err)
	}
	if negErr.Current != 15 || negErr.Change != -100 {
		t.Fatalf("unexpected error detail: current=%d change=%d", negErr.Current, negErr.Change)
	}
	if !reflect.DeepEqual(store.Snapshot(), before) {
		t.Fatal("store must be unchanged after a rejected update")
	}
}

func TestApplyExactlyToZero(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	state, err := store.Apply("pants", -15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state["pants"] != 0 {
		t.Fatalf("expected pants at zero, got %d", state["pants"])
	}
}

func TestReadReflectsAcceptedUpdates(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	_, _ = store.Apply("tshirts", -3)
	_, _ = store.Apply("tshirts", 2)
	// Both of these are rejected and must not affect state.
	_, _ = store.Apply("shoes", 7)
	_, _ = store.Apply("pants", -1000)

	want := map[string]int{"tshirts": 19, "pants": 15}
	if got := store.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected cumulative state: %v", got)
	}

	// Repeated reads with no intervening update are identical.
	if !reflect.DeepEqual(store.Snapshot(), store.Snapshot()) {
		t.Fatal("reads must be idempotent")
	}
}

func TestConcurrentUpdatesNeverGoNegative(t *testing.T) {
	t.Parallel()

	store := NewStore(map[string]int{"tshirts": 50})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Apply("tshirts", -1)
		}()
	}
	wg.Wait()

	if got := store.Snapshot()["tshirts"]; got != 0 {
		t.Fatalf("expected 50 accepted decrements then rejections, got count %d", got)
	}
}

func TestUnknownItemErrorMessage(t *testing.T) {
	t.Parallel()

	err := &UnknownItemError{Item: "shoes", Known: []string{"pants", "tshirts"}}
	want := "Invalid item: 'shoes'. Only 'pants' and 'tshirts' are supported."
	if err.Error() != want {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestNegativeStockErrorMessage(t *testing.T) {
	t.Parallel()

	err := &NegativeStockError{Item: "pants", Current: 15, Change: -100}
	want := "Cannot reduce 'pants' stock below zero. Current: 15, Attempted change: -100"
	if err.Error() != want {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
