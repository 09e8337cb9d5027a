package notesStore

import (
	"os"
	"path/filepath"
)

type TreeNode struct {
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Children []TreeNode `json:"children,omitempty"`
}

// ListTree walks the whole notes root so the frontend can draw the
// folder/file explorer in one request.
func (s *Store) ListTree() ([]TreeNode, error) {
	return s.buildTree(s.root)
}

func (s *Store) buildTree(folder string) ([]TreeNode, error) {
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	children := make([]TreeNode, 0, len(dirEntries))
	for _, entry := range dirEntries {
		fullPath := filepath.Join(folder, entry.Name())
		relPath, err := filepath.Rel(s.root, fullPath)
		if err != nil {
			return nil, err
		}

		if entry.IsDir() {
			sub, err := s.buildTree(fullPath)
			if err != nil {
				return nil, err
			}
			children = append(children, TreeNode{
				Type:     "folder",
				Name:     entry.Name(),
				Path:     relPath,
				Children: sub,
			})
		} else {
			children = append(children, TreeNode{
				Type: "file",
				Name: entry.Name(),
				Path: relPath,
			})
		}
	}
	return children, nil
}
