package customdict

import (
	"context"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestClean(t *testing.T) {
	got := clean([]string{"  Casa ", "", "RIO", "\t"})
	want := []any{"casa", "rio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("clean() = %v, want %v", got, want)
	}
}

func TestNew_DefaultKey(t *testing.T) {
	if s := New(nil, ""); s.key != DefaultKey {
		t.Errorf("New().key = %q, want %q", s.key, DefaultKey)
	}
	if s := New(nil, "custom"); s.key != "custom" {
		t.Errorf("New().key = %q, want %q", s.key, "custom")
	}
}

func openTestStore(t *testing.T, key string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := Open(context.Background(), Options{Addr: mr.Addr(), Key: key})
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestStore_AddRemoveAll(t *testing.T) {
	ctx := context.Background()
	store, mr := openTestStore(t, "")

	if err := store.Add(ctx, " Rio", "casa", "", "Açaí"); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	// duplicates in any case collapse into the set
	if err := store.Add(ctx, "CASA"); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	got, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if want := []string{"açaí", "casa", "rio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}

	if ok, _ := mr.SIsMember(DefaultKey, "rio"); !ok {
		t.Errorf("rio not stored under %q", DefaultKey)
	}

	if err := store.Remove(ctx, "RIO ", "missing"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	got, err = store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if want := []string{"açaí", "casa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("All() after Remove = %v, want %v", got, want)
	}
}

func TestStore_BlankInputIsNoop(t *testing.T) {
	ctx := context.Background()
	store, mr := openTestStore(t, "")

	if err := store.Add(ctx, "", "  "); err != nil {
		t.Errorf("Add(blank) unexpected error: %v", err)
	}
	if err := store.Remove(ctx); err != nil {
		t.Errorf("Remove() unexpected error: %v", err)
	}
	if mr.Exists(DefaultKey) {
		t.Errorf("blank Add created key %q", DefaultKey)
	}

	got, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("All() = %v, want empty", got)
	}
}

func TestStore_CustomKey(t *testing.T) {
	ctx := context.Background()
	store, mr := openTestStore(t, "pt:extra")

	if err := store.Add(ctx, "ocrtidy"); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	members, err := mr.Members("pt:extra")
	if err != nil {
		t.Fatalf("Members() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(members, []string{"ocrtidy"}) {
		t.Errorf("Members(pt:extra) = %v, want [ocrtidy]", members)
	}
	if mr.Exists(DefaultKey) {
		t.Errorf("default key written when a custom key is set")
	}
}

func TestOpen_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Open(context.Background(), Options{Addr: addr}); err == nil {
		t.Error("Open() expected error for a stopped server, got nil")
	}
}
