package jobs

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("Open : %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	j, err := s.Create(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Create : %v", err)
	}
	if j.ID == "" || j.Status != StatusPending {
		t.Fatalf("job initial inattendu : %+v", j)
	}

	if err := s.UpdateProgress(ctx, j.ID, "Downloading transcript..."); err != nil {
		t.Fatalf("UpdateProgress : %v", err)
	}
	got, err := s.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get : %v", err)
	}
	if got.Status != StatusProcessing || got.Progress != "Downloading transcript..." {
		t.Errorf("après UpdateProgress : %+v", got)
	}

	if err := s.Complete(ctx, j.ID, "# Doc", "# Doc - Summary"); err != nil {
		t.Fatalf("Complete : %v", err)
	}
	got, err = s.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get : %v", err)
	}
	if got.Status != StatusCompleted || got.Result != "# Doc" || got.Summary != "# Doc - Summary" {
		t.Errorf("après Complete : %+v", got)
	}
	if got.Progress != "Complete! 🎉" {
		t.Errorf("progress final = %q", got.Progress)
	}
}

func TestStore_Fail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	j, err := s.Create(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Create : %v", err)
	}
	if err := s.Fail(ctx, j.ID, "no caption track available"); err != nil {
		t.Fatalf("Fail : %v", err)
	}
	got, err := s.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get : %v", err)
	}
	if got.Status != StatusError || got.Error != "no caption track available" {
		t.Errorf("après Fail : %+v", got)
	}
}

func TestStore_NotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "absent"); err != ErrNotFound {
		t.Errorf("Get absent : %v", err)
	}
	if err := s.UpdateProgress(ctx, "absent", "x"); err != ErrNotFound {
		t.Errorf("UpdateProgress absent : %v", err)
	}
	if err := s.Fail(ctx, "absent", "x"); err != ErrNotFound {
		t.Errorf("Fail absent : %v", err)
	}
}
