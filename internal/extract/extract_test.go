package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
)

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) ImageToText(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		fname    string
		expected commonModels.DocType
	}{
		{"scan.PNG", commonModels.IMAGE},
		{"photo.jpeg", commonModels.IMAGE},
		{"lecture.pdf", commonModels.PDF},
		{"essay.DOCX", commonModels.DOCX},
		{"notes.txt", commonModels.TXT},
		{"song.mp3", commonModels.UNSUPPORTED},
		{"noext", commonModels.UNSUPPORTED},
	}

	for _, tt := range tests {
		if got := classifyFile(tt.fname); got != tt.expected {
			t.Errorf("classifyFile(%s) = %v; want %v", tt.fname, got, tt.expected)
		}
	}
}

func TestExtractSubject_WritesTxtSiblings(t *testing.T) {
	root := t.TempDir()
	subject := "biology"
	folder := filepath.Join(root, subject)
	os.MkdirAll(folder, 0o755)
	os.WriteFile(filepath.Join(folder, "scan.png"), []byte("fake image bytes"), 0o644)
	os.WriteFile(filepath.Join(folder, "existing.txt"), []byte("already text"), 0o644)
	os.WriteFile(filepath.Join(folder, "skipme.mp3"), []byte("audio"), 0o644)

	e := NewExtractor(root, &fakeOCR{text: "recognized words"})
	report, err := e.ExtractSubject(context.Background(), subject)
	if err != nil {
		t.Fatalf("ExtractSubject failed: %v", err)
	}

	if len(report.ProcessedFiles) != 1 {
		t.Fatalf("expected 1 processed file, got %+v", report.ProcessedFiles)
	}
	pf := report.ProcessedFiles[0]
	if pf.OriginalFile != "scan.png" || pf.TextFile != "scan.txt" || pf.TextLength != len("recognized words") {
		t.Errorf("unexpected processed file record: %+v", pf)
	}

	data, err := os.ReadFile(filepath.Join(folder, "scan.txt"))
	if err != nil {
		t.Fatalf("sibling artifact missing: %v", err)
	}
	if string(data) != "recognized words" {
		t.Errorf("artifact content = %q", data)
	}
}

func TestExtractSubject_FileFailureIsIsolated(t *testing.T) {
	root := t.TempDir()
	subject := "chemistry"
	folder := filepath.Join(root, subject)
	os.MkdirAll(folder, 0o755)
	// ocr fails for every image; the broken pdf fails to open; neither
	// should abort the pass
	os.WriteFile(filepath.Join(folder, "bad.png"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(folder, "broken.pdf"), []byte("not a pdf"), 0o644)

	e := NewExtractor(root, &fakeOCR{err: errors.New("ocr crashed")})
	report, err := e.ExtractSubject(context.Background(), subject)
	if err != nil {
		t.Fatalf("per-file failures must not fail the batch: %v", err)
	}
	if len(report.ProcessedFiles) != 0 {
		t.Errorf("expected no processed files, got %+v", report.ProcessedFiles)
	}
}

func TestExtractSubject_MissingFolder(t *testing.T) {
	e := NewExtractor(t.TempDir(), &fakeOCR{})
	if _, err := e.ExtractSubject(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for a missing subject folder")
	}
}
