package location

import (
	"sync"
	"testing"
)

func TestStaticAndFunc(t *testing.T) {
	var s Source = Static("#/test")
	if s.Hash() != "#/test" {
		t.Errorf("Static.Hash() = %q", s.Hash())
	}

	calls := 0
	s = SourceFunc(func() string {
		calls++
		return "#/dynamic"
	})
	if s.Hash() != "#/dynamic" || calls != 1 {
		t.Errorf("SourceFunc.Hash() = %q after %d calls", s.Hash(), calls)
	}
}

func TestLocationSetNotifies(t *testing.T) {
	loc := New("")

	var got []string
	cancel := loc.OnChange(func(hash string) {
		got = append(got, hash)
	})

	if !loc.Set("#/a") {
		t.Error("Set(#/a) should report a change")
	}
	if loc.Set("#/a") {
		t.Error("Set with the same value should not report a change")
	}
	loc.Set("#/b")

	if len(got) != 2 || got[0] != "#/a" || got[1] != "#/b" {
		t.Errorf("listener saw %v, want [#/a #/b]", got)
	}
	if loc.Hash() != "#/b" {
		t.Errorf("Hash() = %q", loc.Hash())
	}

	cancel()
	cancel()
	loc.Set("#/c")
	if len(got) != 2 {
		t.Errorf("listener called after cancel: %v", got)
	}
	if loc.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", loc.ListenerCount())
	}
}

func TestLocationReplaceIsSilent(t *testing.T) {
	loc := New("#/start")
	called := false
	loc.OnChange(func(string) { called = true })

	loc.Replace("#/quiet")
	if called {
		t.Error("Replace should not notify listeners")
	}
	if loc.Hash() != "#/quiet" {
		t.Errorf("Hash() = %q", loc.Hash())
	}
}

func TestLocationListenerMaySet(t *testing.T) {
	loc := New("")
	loc.OnChange(func(hash string) {
		if hash == "#/old" {
			loc.Set("#/new")
		}
	})

	loc.Set("#/old")
	if loc.Hash() != "#/new" {
		t.Errorf("Hash() = %q, want #/new", loc.Hash())
	}
}

func TestLocationConcurrentAccess(t *testing.T) {
	loc := New("")
	loc.OnChange(func(string) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if j%2 == 0 {
					loc.Set("#/even")
				} else {
					loc.Set("#/odd")
				}
				_ = loc.Hash()
			}
		}(i)
	}
	wg.Wait()
}
