package system

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
)

// MockFileSystem is an in-memory FileSystemManager for testing. It records
// every call (spy) and simulates filesystem state. Pre-populate Dirs, Files
// and Errors before use; an entry in Errors is returned before anything else.
type MockFileSystem struct {
	mu     sync.Mutex
	Dirs   map[string]bool
	Files  map[string][]byte
	Errors map[string]error
	Calls  []Call
}

// Call records a single method invocation on MockFileSystem.
type Call struct {
	Method string
	Path   string
}

// mutating lists the methods that change filesystem state.
var mutating = map[string]bool{
	"CreateEmptyFile": true,
	"Rename":          true,
	"CopyFile":        true,
	"RemoveFile":      true,
	"Create":          true,
}

// NewMockFileSystem creates a new MockFileSystem with the root directory present.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Dirs:   map[string]bool{string(filepath.Separator): true},
		Files:  make(map[string][]byte),
		Errors: make(map[string]error),
	}
}

// AddDir adds a directory and all of its parents.
func (m *MockFileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		m.Dirs[p] = true
		if p == filepath.Dir(p) {
			break
		}
	}
}

// AddFile adds a file, creating its parent directories.
func (m *MockFileSystem) AddFile(path string, content []byte) {
	m.AddDir(filepath.Dir(path))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[filepath.Clean(path)] = append([]byte(nil), content...)
}

// MutatingCalls returns the recorded calls that would have changed state.
func (m *MockFileSystem) MutatingCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []Call
	for _, c := range m.Calls {
		if mutating[c.Method] {
			calls = append(calls, c)
		}
	}
	return calls
}

func (m *MockFileSystem) record(method, path string) error {
	m.Calls = append(m.Calls, Call{Method: method, Path: path})
	if err, ok := m.Errors[path]; ok {
		return err
	}
	return nil
}

// FileExists reports whether a file or directory exists.
func (m *MockFileSystem) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FileExists", path); err != nil {
		return false, err
	}
	_, isFile := m.Files[path]
	return isFile || m.Dirs[path], nil
}

// DirectoryExists reports whether path is a known directory.
func (m *MockFileSystem) DirectoryExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DirectoryExists", path); err != nil {
		return false, err
	}
	return m.Dirs[path], nil
}

// RegularFileExists reports whether path is a known file.
func (m *MockFileSystem) RegularFileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("RegularFileExists", path); err != nil {
		return false, err
	}
	_, ok := m.Files[path]
	return ok, nil
}

// ListDirectory returns the sorted names of direct children.
func (m *MockFileSystem) ListDirectory(path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListDirectory", path); err != nil {
		return nil, err
	}
	if !m.Dirs[path] {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	var names []string
	for d := range m.Dirs {
		if d != path && filepath.Dir(d) == path {
			names = append(names, filepath.Base(d))
		}
	}
	for f := range m.Files {
		if filepath.Dir(f) == path {
			names = append(names, filepath.Base(f))
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns a copy of the stored content.
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ReadFile", path); err != nil {
		return nil, err
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// CreateEmptyFile stores an empty file, truncating any existing content.
func (m *MockFileSystem) CreateEmptyFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateEmptyFile", path); err != nil {
		return err
	}
	if !m.Dirs[filepath.Dir(path)] {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	m.Files[path] = []byte{}
	return nil
}

// Rename moves a stored file.
func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Rename", oldPath); err != nil {
		return err
	}
	data, ok := m.Files[oldPath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: os.ErrNotExist}
	}
	m.Files[newPath] = data
	delete(m.Files, oldPath)
	return nil
}

// CopyFile duplicates a stored file.
func (m *MockFileSystem) CopyFile(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CopyFile", src); err != nil {
		return err
	}
	data, ok := m.Files[src]
	if !ok {
		return &os.PathError{Op: "open", Path: src, Err: os.ErrNotExist}
	}
	m.Files[dst] = append([]byte(nil), data...)
	return nil
}

// RemoveFile deletes a stored file. Directories are refused.
func (m *MockFileSystem) RemoveFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("RemoveFile", path); err != nil {
		return err
	}
	if m.Dirs[path] {
		return &os.PathError{Op: "remove", Path: path, Err: syscall.EISDIR}
	}
	if _, ok := m.Files[path]; !ok {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	delete(m.Files, path)
	return nil
}

// Open returns a reader over a copy of the stored content.
func (m *MockFileSystem) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Open", path); err != nil {
		return nil, err
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), data...))), nil
}

// Create returns a writer whose content is stored when it is closed.
func (m *MockFileSystem) Create(path string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Create", path); err != nil {
		return nil, err
	}
	m.Files[path] = []byte{}
	return &mockFile{fs: m, path: path}, nil
}

type mockFile struct {
	fs   *MockFileSystem
	path string
	buf  bytes.Buffer
}

func (f *mockFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *mockFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.Files[f.path] = append([]byte(nil), f.buf.Bytes()...)
	return nil
}
