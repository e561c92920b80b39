package provisioning

import (
	"fmt"
	"os"
	"strings"
)

// FileStore persists the project ID as a single line of plain text at a
// well-known path. Downstream scripts read the same file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Write overwrites the file with the project ID followed by a newline.
func (s *FileStore) Write(projectID string) error {
	if err := os.WriteFile(s.Path, []byte(projectID+"\n"), 0o644); err != nil {
		return fmt.Errorf("write project ID file %s: %w", s.Path, err)
	}
	return nil
}

// Read returns the persisted project ID, trimmed. A missing or empty file
// is an error.
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read project ID file %s: %w", s.Path, err)
	}
	projectID := strings.TrimSpace(string(data))
	if projectID == "" {
		return "", fmt.Errorf("project ID file %s is empty", s.Path)
	}
	return projectID, nil
}
