package registry

import (
	"slices"
	"testing"
)

type widget struct {
	name string
}

func TestCreate(t *testing.T) {
	r := New[*widget]()
	r.Register("foo", func() *widget { return &widget{name: "foo"} })

	w, ok := r.Create("foo")
	if !ok || w == nil {
		t.Fatal("expected to get a widget for key foo")
	}
	if w.name != "foo" {
		t.Fatalf("expected widget name to be foo; got %s", w.name)
	}

	w2, _ := r.Create("foo")
	if w == w2 {
		t.Fatal("expected each Create call to return a fresh instance")
	}

	w, ok = r.Create("nonexistent")
	if ok || w != nil {
		t.Fatalf("expected Create to return nil for an unknown key; got %v", w)
	}
}

func TestKeysFollowRegistrationOrder(t *testing.T) {
	r := New[*widget]()
	for _, key := range []string{"zeta", "alpha", "mid"} {
		r.Register(key, func() *widget { return &widget{} })
	}

	expKeys := []string{"zeta", "alpha", "mid"}
	for pass := 0; pass < 2; pass++ {
		keys := slices.Collect(r.Keys())
		if !slices.Equal(keys, expKeys) {
			t.Fatalf("[pass %d] expected keys %v; got %v", pass, expKeys, keys)
		}
	}

	// Early termination must not affect later iterations
	for key := range r.Keys() {
		if key == "zeta" {
			break
		}
	}
	if got := len(slices.Collect(r.Keys())); got != 3 {
		t.Fatalf("expected 3 keys; got %d", got)
	}
}

func TestRegisterLastWins(t *testing.T) {
	r := New[*widget]()
	r.Register("a", func() *widget { return &widget{name: "first"} })
	r.Register("b", func() *widget { return &widget{name: "b"} })
	r.Register("a", func() *widget { return &widget{name: "second"} })

	if r.Len() != 2 {
		t.Fatalf("expected registry to contain 2 keys; got %d", r.Len())
	}

	w, _ := r.Create("a")
	if w.name != "second" {
		t.Fatalf("expected last registration to win; got %s", w.name)
	}

	keys := slices.Collect(r.Keys())
	if !slices.Equal(keys, []string{"a", "b"}) {
		t.Fatalf("expected overwritten key to keep its position; got %v", keys)
	}
}

func TestShutdown(t *testing.T) {
	r := New[*widget]()
	r.Register("a", func() *widget { return &widget{name: "a"} })
	w, _ := r.Create("a")

	r.Shutdown()
	r.Shutdown()

	if r.Len() != 0 {
		t.Fatalf("expected empty registry after shutdown; got %d keys", r.Len())
	}
	if _, ok := r.Create("a"); ok {
		t.Fatal("expected Create to fail after shutdown")
	}
	if w.name != "a" {
		t.Fatal("expected previously created instances to survive shutdown")
	}

	r.Register("b", func() *widget { return &widget{} })
	if r.Len() != 0 {
		t.Fatal("expected Register to be ignored after shutdown")
	}
}
