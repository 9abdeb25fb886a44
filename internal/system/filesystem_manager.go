package system

import "io"

// FileSystemManager defines the interface for file system operations.
// This allows for mocking the file system in tests.
type FileSystemManager interface {
	FileExists(path string) (bool, error)
	DirectoryExists(path string) (bool, error)
	RegularFileExists(path string) (bool, error)
	ListDirectory(path string) ([]string, error)
	ReadFile(path string) ([]byte, error)

	CreateEmptyFile(path string) error
	Rename(oldPath, newPath string) error
	CopyFile(src, dst string) error
	RemoveFile(path string) error

	// Open and Create back the streaming transfer engine.
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}

var (
	_ FileSystemManager = (*FileSystem)(nil)
	_ FileSystemManager = (*MockFileSystem)(nil)
)
