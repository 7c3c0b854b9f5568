package security

import (
	"os"
	"path/filepath"
)

// evalSymlinksTolerant resolves symlinks in abs, the same way
// filepath.EvalSymlinks does, but tolerates the target file not existing
// yet: it walks up to the nearest existing ancestor, resolves that, and
// reattaches the remaining (not-yet-existing) suffix unresolved.
func evalSymlinksTolerant(abs string) (string, error) {
	if _, err := os.Lstat(abs); err == nil {
		return filepath.EvalSymlinks(abs)
	}

	dir := filepath.Dir(abs)
	base := filepath.Base(abs)
	if dir == abs {
		return abs, nil
	}

	resolvedDir, err := evalSymlinksTolerant(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}
