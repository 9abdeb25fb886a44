// Package session holds the state of one interactive file manager session:
// the user it belongs to and the current directory cursor every relative
// path is resolved against.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/zoro11031/file-manager/internal/common"
)

// DirectoryChecker is the part of the filesystem a Session needs to validate
// navigation targets.
type DirectoryChecker interface {
	DirectoryExists(path string) (bool, error)
}

// Session is owned by the dispatcher. Only ChangeDirectory and GoUp move the
// cursor, and only after the target has been validated.
type Session struct {
	username string
	cwd      string
	fs       DirectoryChecker
}

// New creates a Session whose cursor starts at start, which must be an
// existing directory.
func New(username, start string, fs DirectoryChecker) (*Session, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	ok, err := fs.DirectoryExists(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to check start directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("start directory %s does not exist", abs)
	}
	return &Session{username: username, cwd: abs, fs: fs}, nil
}

// Username returns the name the session was started with. It may be empty.
func (s *Session) Username() string {
	return s.username
}

// CurrentDirectory returns the absolute path of the cursor.
func (s *Session) CurrentDirectory() string {
	return s.cwd
}

// Resolve turns p into a clean absolute path. Relative paths are joined to
// the cursor; absolute paths are only cleaned.
func (s *Session) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.cwd, p)
}

// ChangeDirectory moves the cursor to target when it names an existing
// directory. Otherwise the cursor is left unchanged.
func (s *Session) ChangeDirectory(target string) error {
	dir := s.Resolve(target)
	ok, err := s.fs.DirectoryExists(dir)
	if err != nil {
		return err
	}
	if !ok {
		return &common.NotFoundError{Kind: "directory", Path: dir}
	}
	s.cwd = dir
	return nil
}

// GoUp moves the cursor to its parent directory.
func (s *Session) GoUp() error {
	parent := filepath.Dir(s.cwd)
	if parent == s.cwd {
		return common.Usagef("already in root directory")
	}
	ok, err := s.fs.DirectoryExists(parent)
	if err != nil {
		return err
	}
	if !ok {
		return common.Usagef("already in root directory")
	}
	s.cwd = parent
	return nil
}
