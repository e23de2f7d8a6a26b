package cache

import "testing"

func TestCache(t *testing.T) {
	c := NewCache[string, int]()

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Expected 1, got %d (ok=%v)", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected miss after delete")
	}

	c.SetTo(map[string]int{"x": 10})
	if v, _ := c.Get("x"); v != 10 {
		t.Errorf("Expected 10 after SetTo, got %d", v)
	}

	c.Clear()
	if _, ok := c.Get("x"); ok {
		t.Error("Expected empty cache after Clear")
	}
}

func TestStaticHash(t *testing.T) {
	SetStaticHash("/static/blog.js", "abc123")
	if hash, ok := GetStaticHash("/static/blog.js"); !ok || hash != "abc123" {
		t.Errorf("Expected abc123, got %q (ok=%v)", hash, ok)
	}
}
