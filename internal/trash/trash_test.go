package trash

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stalefind/stalefind/internal/testutil"
)

func TestRenameToTrash(t *testing.T) {
	f := testutil.NewFixture(t)
	trashDir := f.Path("trash")
	m := NewMoverAt(trashDir)

	path := f.CreateFile("Downloads/old.zip", []byte("data"))
	if err := m.renameToTrash(path); err != nil {
		t.Fatalf("renameToTrash: %v", err)
	}

	f.AssertFileNotExists(path)
	f.AssertFileExists(filepath.Join(trashDir, "old.zip"))
}

func TestRenameToTrashNameCollision(t *testing.T) {
	f := testutil.NewFixture(t)
	trashDir := f.Path("trash")
	m := NewMoverAt(trashDir)

	first := f.CreateFile("Downloads/dup.txt", []byte("one"))
	if err := m.renameToTrash(first); err != nil {
		t.Fatalf("first move: %v", err)
	}

	second := f.CreateFile("Downloads/dup.txt", []byte("two"))
	if err := m.renameToTrash(second); err != nil {
		t.Fatalf("second move: %v", err)
	}

	entries, err := os.ReadDir(trashDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d trashed files, want 2 (collision must not overwrite)", len(entries))
	}
}

func TestRenameToTrashNoTrashDir(t *testing.T) {
	m := NewMoverAt("")
	if err := m.renameToTrash("/tmp/whatever"); err == nil {
		t.Error("expected error with empty trash dir")
	}
}

func TestMoveAccounting(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("skipping: would use the real Finder trash")
	}

	f := testutil.NewFixture(t)
	m := NewMoverAt(f.Path("trash"))

	a := f.CreateFile("Downloads/a.bin", make([]byte, 100))
	b := f.CreateFile("Downloads/b.bin", make([]byte, 200))
	missing := f.Path("Downloads/never.bin")

	res := m.Move([]string{a, b, missing})

	if len(res.Trashed) != 2 {
		t.Errorf("Trashed = %v, want 2 entries", res.Trashed)
	}
	if res.Freed != 300 {
		t.Errorf("Freed = %d, want 300", res.Freed)
	}
	if _, ok := res.Failed[missing]; !ok {
		t.Errorf("missing path not recorded as failed: %v", res.Failed)
	}
}
