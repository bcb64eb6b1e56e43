package httputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	tests := []struct {
		name string
		key  string
		body string
	}{
		{"text", "https://ci.example.com/deps.txt", "runtimeClasspath - Runtime classpath.\n"},
		{"json", "https://ci.example.com/deps.json", `{"edges":[]}`},
		{"empty", "https://ci.example.com/empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(tt.key, []byte(tt.body)); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, ok, err := c.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !ok {
				t.Fatal("Get() returned false for existing key")
			}
			if string(got) != tt.body {
				t.Errorf("Get() = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	data, ok, err := c.Get("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || data != nil {
		t.Error("Get() returned data for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", []byte("value")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, err := c.Get("key"); err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	data, ok, err := c.Get("key")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired key")
	}
	if string(data) != "value" {
		t.Errorf("expired entry should still return stale body, got %q", data)
	}
}

func TestCache_NoExpiry(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 0)
	_ = c.Set("key", []byte("value"))
	old := time.Now().Add(-365 * 24 * time.Hour)
	if err := os.Chtimes(c.keyPath("key"), old, old); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get("key"); !ok || err != nil {
		t.Errorf("Get() = %v, %v; want true, nil with zero TTL", ok, err)
	}
}

func TestCache_KeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	p1 := c.keyPath("test")
	p2 := c.keyPath("test")
	if p1 != p2 {
		t.Error("path should be deterministic")
	}
	p3 := c.keyPath("other")
	if p1 == p3 {
		t.Error("different keys should produce different paths")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	_ = c.Set("a", []byte("1"))
	_ = c.Set("b", []byte("2"))

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if _, ok, _ := c.Get("a"); ok {
		t.Error("entry survived Clear()")
	}
}

func TestNewCache_DefaultDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := filepath.Join(xdg, "composecheck")
	if c.Dir() != want {
		t.Errorf("got Dir = %s, want %s", c.Dir(), want)
	}
	if c.TTL() != time.Hour {
		t.Errorf("got TTL = %v, want 1h", c.TTL())
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
