package implementation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"advocate-portal-client/internal/repository/contract"
)

// FileTokenRepository persists the bearer token as a single file under the
// user's home directory, the terminal counterpart of the browser's local
// storage key.
type FileTokenRepository struct {
	path string
}

var _ contract.TokenRepository = &FileTokenRepository{}

func NewFileTokenRepository(path string) *FileTokenRepository {
	return &FileTokenRepository{path: path}
}

func (r *FileTokenRepository) Load() (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (r *FileTokenRepository) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (r *FileTokenRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
