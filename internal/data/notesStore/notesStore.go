package notesStore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// Store is plain folder-per-subject storage under one root. Uploaded files
// and their .txt extraction artifacts live side by side, so the ingestion
// input survives restarts without any extra bookkeeping.
type Store struct {
	root   string
	logger *logger_i.Logger
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating notes root %q: %w", root, err)
	}
	return &Store{
		root:   root,
		logger: logger_i.NewLogger("Notes Store"),
	}, nil
}

func (s *Store) Root() string {
	return s.root
}

// resolve joins parts under the root and rejects any result that leaves it.
// A prefix comparison is not enough - "../notes_evil" shares the string
// prefix of a root named "notes" - so the check goes through filepath.Rel.
func (s *Store) resolve(parts ...string) (string, error) {
	target := filepath.Join(append([]string{s.root}, parts...)...)
	rel, err := filepath.Rel(s.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes notes root: %s", filepath.Join(parts...))
	}
	return target, nil
}

func (s *Store) CreateFolder(parent string, name string) (string, error) {
	folder, err := s.resolve(parent, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", err
	}
	s.logger.Debug("Created folder", "path", folder)
	return folder, nil
}

func (s *Store) SubjectExists(subject string) bool {
	folder, err := s.resolve(subject)
	if err != nil {
		return false
	}
	info, err := os.Stat(folder)
	return err == nil && info.IsDir()
}

func (s *Store) SaveUpload(subject string, filename string, r io.Reader) (string, error) {
	if !s.SubjectExists(subject) {
		return "", fmt.Errorf("subject folder %q does not exist", subject)
	}

	destination := filepath.Join(s.root, subject, filepath.Base(filename))
	f, err := os.Create(destination)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	s.logger.Debug("Saved upload", "path", destination)
	return destination, nil
}

// ExtractedTexts lists the .txt artifacts of one subject, folder order.
// A file that cannot be read is skipped, same isolation policy as extraction.
func (s *Store) ExtractedTexts(subject string) ([]commonModels.ExtractedText, error) {
	folder, err := s.resolve(subject)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("subject folder %q: %w", subject, err)
	}

	var texts []commonModels.ExtractedText
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(folder, entry.Name()))
		if err != nil {
			s.logger.Error("Error reading artifact, skipping", "file", entry.Name(), "error", err)
			continue
		}
		texts = append(texts, commonModels.ExtractedText{
			TextFile: entry.Name(),
			Content:  string(data),
		})
	}
	return texts, nil
}
