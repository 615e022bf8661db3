package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultSecretsDir = "/var/run/secrets/kyc"

// FileConfig configures the mounted-volume store
type FileConfig struct {
	BaseDir string
}

// fileStore reads a secret volume where every file is one key
type fileStore struct {
	baseDir string
}

func newFileStore(cfg FileConfig) (*fileStore, error) {
	base := cfg.BaseDir
	if base == "" {
		base = defaultSecretsDir
	}

	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("secrets: secret directory %s not accessible: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secrets: %s is not a directory", base)
	}
	return &fileStore{baseDir: base}, nil
}

// Fetch reads the file at ref.Path as a single value, or every regular file of the
// directory at ref.Path as one key each. Hidden entries are skipped.
func (s *fileStore) Fetch(_ context.Context, ref Reference) (Secret, error) {
	target := filepath.Join(s.baseDir, filepath.Clean("/"+ref.Path))

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("secrets: %s not found: %w", ref.Path, err)
	}

	if !info.IsDir() {
		v, err := readValue(target)
		if err != nil {
			return nil, err
		}
		return Secret{singleValueKey: v, filepath.Base(target): v}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to list %s: %w", ref.Path, err)
	}

	secret := make(Secret)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || e.IsDir() {
			continue
		}
		v, err := readValue(filepath.Join(target, e.Name()))
		if err != nil {
			return nil, err
		}
		secret[e.Name()] = v
	}
	return secret, nil
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("secrets: failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
