package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func newMemStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(afero.NewMemMapFs(), "/renders")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestFileStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)

	a := NewArtifact("deps", "svg", "abc", []byte("<svg/>"))
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s := newMemStore(t)
	_, err := s.Get(context.Background(), NewID())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)

	for _, id := range []string{"", "../escape", "not-a-uuid", "a/b"} {
		if _, err := s.Get(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Get(%q) = %v, want ErrInvalidID", id, err)
		}
		if err := s.Put(ctx, &Artifact{ID: id}); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Put(%q) = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := range 3 {
		a := NewArtifact("", "svg", "h", []byte("x"))
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		ids = append(ids, a.ID)
		if err := s.Put(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	// stray files are ignored
	_ = afero.WriteFile(s.fs, "/renders/notes.txt", []byte("hi"), 0o644)

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, a := range list {
		got = append(got, a.ID)
		if a.Data != nil {
			t.Errorf("List returned data for %s", a.ID)
		}
	}
	want := []string{ids[2], ids[1], ids[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List order (-want +got):\n%s", diff)
	}

	list, _ = s.List(ctx, 2)
	if len(list) != 2 {
		t.Errorf("List(2) returned %d", len(list))
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID(NewID()); err != nil {
		t.Errorf("fresh ID rejected: %v", err)
	}
	if err := ValidateID("nope"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("ValidateID(nope) = %v", err)
	}
}

func TestNewArtifact(t *testing.T) {
	a := NewArtifact("t", "png", "hash", []byte{1})
	if a.ID == "" || a.CreatedAt.IsZero() {
		t.Errorf("NewArtifact did not stamp ID and time: %+v", a)
	}
	if b := NewArtifact("t", "png", "hash", []byte{1}); b.ID == a.ID {
		t.Error("NewArtifact reused an ID")
	}
}

// TestMongoStore runs against a live server when BLOCKGRAPH_TEST_MONGO is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("BLOCKGRAPH_TEST_MONGO")
	if uri == "" {
		t.Skip("BLOCKGRAPH_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "blockgraph_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()

	a := NewArtifact("deps", "svg", "abc", []byte("<svg/>"))
	a.CreatedAt = a.CreatedAt.Truncate(time.Millisecond)
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != a.Title || string(got.Data) != string(a.Data) {
		t.Errorf("Get = %+v", got)
	}
	if _, err := s.Get(ctx, NewID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v", err)
	}
}
