// Package security enforces the broker's path and input validation: every
// file path argument must canonicalize to an absolute path under a
// configured workspace root, with symlinks resolved so a link cannot be
// used to escape the root; integers and opaque JSON payloads are bounds-
// and size-checked before they reach a downstream LSP server.
package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"mcplsbridge/errs"
)

// MaxCoordinate is the inclusive upper bound on line/character parameters.
const MaxCoordinate = 1_000_000

// MaxPayloadBytes bounds opaque JSON blobs (call-hierarchy items, code
// action arguments) accepted from MCP callers.
const MaxPayloadBytes = 1 << 20 // 1 MiB

// CanonicalizePath resolves path (which may be relative, contain ".." or
// symlinks) to its absolute, symlink-resolved form.
func CanonicalizePath(path string) (string, error) {
	if path == "" {
		return "", errs.Newf(errs.PathEscape, "path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errs.New(errs.PathEscape, err)
	}

	resolved, err := evalSymlinksTolerant(abs)
	if err != nil {
		return "", errs.New(errs.FileNotFound, err)
	}

	return filepath.Clean(resolved), nil
}

// ValidateWorkspacePath canonicalizes path and checks it lies under at
// least one of roots, with symlink resolution on both sides so a symlink
// inside the workspace cannot point the broker at a file outside it.
func ValidateWorkspacePath(path string, roots []string) (string, error) {
	canonical, err := CanonicalizePath(path)
	if err != nil {
		return "", err
	}

	for _, root := range roots {
		canonicalRoot, err := CanonicalizePath(root)
		if err != nil {
			continue
		}
		if IsWithinDirectory(canonical, canonicalRoot) {
			return canonical, nil
		}
	}

	return "", errs.Newf(errs.PathEscape, "path %q is outside all configured workspace roots", canonical)
}

// IsWithinDirectory reports whether path is baseDir itself or a descendant
// of it. Parents of baseDir are never considered "within" it.
func IsWithinDirectory(path, baseDir string) bool {
	cleanBase := filepath.Clean(baseDir)
	cleanPath := filepath.Clean(path)

	if cleanPath == cleanBase {
		return true
	}
	return strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

// ValidateCoordinate checks an MCP line or character parameter is within
// [1, MaxCoordinate].
func ValidateCoordinate(name string, value int) error {
	if value < 1 || value > MaxCoordinate {
		return errs.Newf(errs.OutOfRange, "%s=%d outside allowed range [1, %d]", name, value, MaxCoordinate)
	}
	return nil
}

// ValidatePayloadSize rejects opaque JSON blobs larger than MaxPayloadBytes.
func ValidatePayloadSize(data []byte) error {
	if len(data) > MaxPayloadBytes {
		return errs.Newf(errs.PayloadTooLarge, "payload of %d bytes exceeds %d byte limit", len(data), MaxPayloadBytes)
	}
	return nil
}

// ValidateFileScheme rejects any URI/path argument not using the file://
// scheme (or a bare filesystem path, which is assumed file-scheme).
func ValidateFileScheme(uriOrPath string) error {
	if !strings.Contains(uriOrPath, "://") {
		return nil
	}
	if !strings.HasPrefix(uriOrPath, "file://") {
		return errs.Newf(errs.Unsupported, "unsupported URI scheme in %q, only file:// is accepted", uriOrPath)
	}
	return nil
}

// ValidateConfigPath validates a config file path against a set of allowed
// directories (current directory always implicitly allowed), used for
// --config/$MCPLS_CONFIG before the file is opened.
func ValidateConfigPath(path string, allowedDirectories []string) (string, error) {
	canonical, err := CanonicalizePath(path)
	if err != nil {
		return "", fmt.Errorf("invalid config path: %w", err)
	}

	dirs := allowedDirectories
	if !contains(dirs, ".") {
		dirs = append(dirs, ".")
	}

	for _, dir := range dirs {
		canonicalDir, err := CanonicalizePath(dir)
		if err != nil {
			continue
		}
		if IsWithinDirectory(canonical, canonicalDir) {
			return canonical, nil
		}
	}

	return "", errs.Newf(errs.PathEscape, "config path %q is not in an allowed directory", canonical)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
