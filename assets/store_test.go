package assets

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_SaveAndRelease(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewStore(tmp)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	data := []byte("fake image bytes")
	p, err := s.Save(ctx, "blogs", "cover.JPG", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(p, "blogs/") {
		t.Fatalf("expected namespaced path, got %q", p)
	}
	if !strings.HasSuffix(p, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", p)
	}

	f, err := s.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, _ := io.ReadAll(f)
	_ = f.Close()
	if string(got) != string(data) {
		t.Fatalf("content mismatch: %q", string(got))
	}

	s.Release(ctx, p)
	if s.Exists(p) {
		t.Fatalf("expected asset removed after release")
	}
}

func TestStore_ReplaceDeletesOldLocalFile(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewStore(tmp)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	oldPath, err := s.Save(ctx, "avatars", "me.png", strings.NewReader("old"))
	if err != nil {
		t.Fatalf("save old: %v", err)
	}

	newPath, err := s.Replace(ctx, oldPath, "avatars", "me2.png", strings.NewReader("new"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if newPath == oldPath {
		t.Fatalf("expected a fresh path on replace")
	}
	if s.Exists(oldPath) {
		t.Fatalf("expected old asset deleted after replace")
	}
	if !s.Exists(newPath) {
		t.Fatalf("expected new asset present after replace")
	}
}

func TestStore_ReleaseSkipsExternalURLs(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewStore(tmp)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	// Must be a no-op, not an attempted delete.
	s.Release(ctx, "https://cdn.example.com/images/logo.svg")
	s.Release(ctx, "")
}

func TestStore_ReleaseRefusesPathEscape(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewStore(tmp)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	outside := filepath.Join(filepath.Dir(tmp), "victim.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	s.Release(context.Background(), "../victim.txt")
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside base dir was deleted")
	}
}

func TestStore_ReplaceAllGallery(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewStore(tmp)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	first, err := s.Save(ctx, "projects/gallery", "a.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.Save(ctx, "projects/gallery", "b.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	external := "https://images.example.com/c.png"
	oldSet := []string{first, second, external}

	newSet, err := s.ReplaceAll(ctx, oldSet, "projects/gallery", []File{
		{Name: "x.png", Reader: strings.NewReader("x")},
		{Name: "y.png", Reader: strings.NewReader("y")},
	})
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}

	if len(newSet) != 2 {
		t.Fatalf("expected 2 stored paths, got %d", len(newSet))
	}
	if s.Exists(first) || s.Exists(second) {
		t.Fatalf("expected old gallery files released")
	}
	for _, p := range newSet {
		if !s.Exists(p) {
			t.Fatalf("expected new gallery file %q present", p)
		}
	}
}

func TestIsExternalURL(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"https://cdn.example.com/a.png", true},
		{"http://example.com/b.pdf", true},
		{"blogs/3f2a9c1e.jpg", false},
		{"avatars/me.png", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsExternalURL(c.path); got != c.want {
			t.Errorf("IsExternalURL(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
