package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/maxjmartin/seqcontainer/pkg/parser"
	"github.com/maxjmartin/seqcontainer/pkg/types"
)

func compile(t *testing.T, source string) *types.Expression {
	t.Helper()
	expr, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return expr
}

func TestGetSet(t *testing.T) {
	c := New(4)

	if _, ok := c.Get("[1]"); ok {
		t.Error("Get on empty cache should miss")
	}

	expr := compile(t, "[1]")
	c.Set("[1]", expr)

	got, ok := c.Get("[1]")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if got != expr {
		t.Error("Get returned a different expression")
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(2)
	c.Set("a", compile(t, "[1]"))
	c.Set("b", compile(t, "[2]"))

	// Touch a so b becomes the eviction candidate.
	c.Get("a")
	c.Set("c", compile(t, "[3]"))

	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive eviction")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestSetRefreshesExisting(t *testing.T) {
	c := New(2)
	c.Set("a", compile(t, "[1]"))
	c.Set("b", compile(t, "[2]"))
	c.Set("a", compile(t, "[9]"))
	c.Set("c", compile(t, "[3]"))

	// Re-setting a made b least recently used.
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if got, ok := c.Get("a"); !ok || got.Source() != "[9]" {
		t.Error("a should hold the refreshed expression")
	}
}

func TestGetOrCompile(t *testing.T) {
	c := New(4)
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := c.GetOrCompile("[1,2]", func() (*types.Expression, error) {
			calls++
			return parser.Parse("[1,2]")
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if calls != 1 {
		t.Errorf("compile ran %d times, want 1", calls)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits, 1 miss", stats)
	}
}

func TestGetOrCompileErrorNotCached(t *testing.T) {
	c := New(4)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		if _, err := c.GetOrCompile("bad", func() (*types.Expression, error) {
			return nil, boom
		}); !errors.Is(err, boom) {
			t.Fatalf("got %v, want boom", err)
		}
	}

	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed compiles, want 0", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New(4)
	c.Set("a", compile(t, "[1]"))
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestCapacityFloor(t *testing.T) {
	c := New(0)
	if c.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", c.Capacity())
	}
	c.Set("a", compile(t, "[1]"))
	c.Set("b", compile(t, "[2]"))
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(8)
	sources := []string{"[1]", "[2]", "[3]", "[1]+[2]", "[2]*[3]"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				src := sources[j%len(sources)]
				if _, err := c.GetOrCompile(src, func() (*types.Expression, error) {
					return parser.Parse(src)
				}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() != len(sources) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(sources))
	}
}
