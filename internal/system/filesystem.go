package system

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// DefaultBufferSize is the copy buffer used by CopyFile when none is configured.
const DefaultBufferSize = 64 * 1024

// ErrSameFile is returned when a copy source and destination are the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// FileSystem handles file system operations on the local OS
type FileSystem struct {
	bufferSize int
}

// NewFileSystem creates a new FileSystem instance
func NewFileSystem() *FileSystem {
	return &FileSystem{bufferSize: DefaultBufferSize}
}

// NewFileSystemWithBuffer creates a FileSystem whose CopyFile uses a buffer of n bytes
func NewFileSystemWithBuffer(n int) *FileSystem {
	if n <= 0 {
		n = DefaultBufferSize
	}
	return &FileSystem{bufferSize: n}
}

// FileExists checks if anything exists at path
func (fs *FileSystem) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// DirectoryExists checks if a directory exists
func (fs *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// RegularFileExists checks if a regular file exists at path
func (fs *FileSystem) RegularFileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// ListDirectory lists all entries in a directory
func (fs *FileSystem) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// ReadFile returns the full content of a file
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// CreateEmptyFile creates an empty regular file.
// An existing file is truncated to zero length.
func (fs *FileSystem) CreateEmptyFile(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// Rename renames (moves) a file. It fails across filesystem boundaries.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// CopyFile copies a regular file from src to dst through a bounded buffer,
// keeping the source permissions.
func (fs *FileSystem) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &os.PathError{Op: "copy", Path: src, Err: syscall.EINVAL}
	}
	// Truncating dst would destroy src when both name the same file
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return &os.PathError{Op: "copy", Path: dst, Err: ErrSameFile}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	buf := make([]byte, fs.bufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return err
	}

	// A failed close can mean the data never reached the disk
	return out.Close()
}

// RemoveFile removes a file. Directories are refused.
func (fs *FileSystem) RemoveFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return &os.PathError{Op: "remove", Path: path, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		return &os.PathError{Op: "remove", Path: path, Err: syscall.EISDIR}
	}
	return os.Remove(path)
}

// Open opens a file for streaming reads
func (fs *FileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create creates or truncates a file for streaming writes
func (fs *FileSystem) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
