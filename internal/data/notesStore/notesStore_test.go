package notesStore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_FolderAndUploadLifecycle(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.CreateFolder("", "physics"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if !store.SubjectExists("physics") {
		t.Fatal("subject folder should exist after CreateFolder")
	}

	path, err := store.SaveUpload("physics", "notes.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	if _, err := store.SaveUpload("ghost-subject", "x.txt", strings.NewReader("")); err == nil {
		t.Error("upload into a missing subject should fail")
	}
}

func TestStore_CreateFolderRejectsEscape(t *testing.T) {
	// a root named "notes" so a sibling like "notes_evil" shares its string
	// prefix - the check must not be fooled by that
	root := filepath.Join(t.TempDir(), "notes")
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	escapes := []struct {
		parent string
		name   string
	}{
		{"..", "evil"},
		{"../notes_evil", "x"},
		{"physics/../..", "evil"},
	}
	for _, esc := range escapes {
		if _, err := store.CreateFolder(esc.parent, esc.name); err == nil {
			t.Errorf("CreateFolder(%q, %q) escaping the root must be rejected", esc.parent, esc.name)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(root))
	if err != nil {
		t.Fatalf("reading parent dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes" {
		t.Errorf("escape attempt created something outside the root: %v", entries)
	}
}

func TestStore_SubjectEscapeRejectedEverywhere(t *testing.T) {
	root := filepath.Join(t.TempDir(), "notes")
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	// a real sibling directory outside the root
	evil := filepath.Join(filepath.Dir(root), "notes_evil")
	os.MkdirAll(evil, 0o755)
	os.WriteFile(filepath.Join(evil, "secret.txt"), []byte("outside"), 0o644)

	if store.SubjectExists("../notes_evil") {
		t.Error("SubjectExists must not see folders outside the root")
	}
	if _, err := store.SaveUpload("../notes_evil", "x.txt", strings.NewReader("payload")); err == nil {
		t.Error("SaveUpload must not write outside the root")
	}
	if _, err := store.ExtractedTexts("../notes_evil"); err == nil {
		t.Error("ExtractedTexts must not read outside the root")
	}
	if _, err := os.Stat(filepath.Join(evil, "x.txt")); err == nil {
		t.Error("escape attempt wrote a file outside the root")
	}
}

func TestStore_ExtractedTexts(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	folder := filepath.Join(root, "math")
	os.MkdirAll(folder, 0o755)
	os.WriteFile(filepath.Join(folder, "algebra.txt"), []byte("groups and rings"), 0o644)
	os.WriteFile(filepath.Join(folder, "scan.png"), []byte("binary"), 0o644)

	texts, err := store.ExtractedTexts("math")
	if err != nil {
		t.Fatalf("ExtractedTexts failed: %v", err)
	}
	if len(texts) != 1 || texts[0].TextFile != "algebra.txt" || texts[0].Content != "groups and rings" {
		t.Errorf("unexpected artifacts: %+v", texts)
	}

	if _, err := store.ExtractedTexts("missing"); err == nil {
		t.Error("missing subject folder should error")
	}
}

func TestStore_ListTree(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	os.MkdirAll(filepath.Join(root, "physics"), 0o755)
	os.WriteFile(filepath.Join(root, "physics", "notes.txt"), []byte("x"), 0o644)

	tree, err := store.ListTree()
	if err != nil {
		t.Fatalf("ListTree failed: %v", err)
	}
	if len(tree) != 1 || tree[0].Type != "folder" || tree[0].Name != "physics" {
		t.Fatalf("unexpected tree root: %+v", tree)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Type != "file" {
		t.Errorf("unexpected children: %+v", tree[0].Children)
	}
}
