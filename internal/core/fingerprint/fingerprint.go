// Package fingerprint computes short content hashes used for drift detection.
//
// Hashes are the first 12 hex characters of a SHA-256 digest. They are advisory:
// collisions are statistically unlikely but not impossible, which is acceptable
// for deciding whether an item changed since the last sync.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
)

// Length is the number of hex characters kept from the digest.
const Length = 12

// skippedEntries are never folded into a directory hash.
var skippedEntries = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// HashFile returns the fingerprint of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return digest(h), nil
}

// HashDirectory returns the fingerprint of a directory tree.
//
// Entries are visited in sorted name order and only file bytes are hashed.
// Directory names are not part of the digest, so two trees holding the same
// bytes in the same sorted order hash identically even when their
// subdirectories are named differently. Symlinks are followed.
func HashDirectory(path string) (string, error) {
	h := sha256.New()
	if err := hashTree(h, path); err != nil {
		return "", err
	}
	return digest(h), nil
}

// HashString returns the fingerprint of a literal string.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:Length]
}

func hashTree(h hash.Hash, dir string) error {
	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if skippedEntries[entry.Name()] {
			continue
		}
		full := filepath.Join(dir, entry.Name())

		info, err := os.Stat(full)
		if err != nil {
			return fmt.Errorf("stat %s: %w", full, err)
		}
		if info.IsDir() {
			if err := hashTree(h, full); err != nil {
				return err
			}
			continue
		}

		if err := hashInto(h, full); err != nil {
			return err
		}
	}
	return nil
}

func hashInto(h hash.Hash, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func digest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))[:Length]
}
