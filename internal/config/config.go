// Package config provides thread-safe configuration management for the file
// manager. Settings are stored as key=value pairs in a plain config file and
// can be overridden from the environment.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultFileName is the config file looked up in the user's home directory.
const DefaultFileName = ".file-manager.conf"

// ErrKeyNotFound is returned by Get when the file does not set a key.
var ErrKeyNotFound = errors.New("config key not found")

// Config is a key=value file loaded lazily on first use. It is safe for
// concurrent use.
type Config struct {
	mu       sync.Mutex
	filePath string
	data     map[string]string
	loaded   bool
}

// New creates a new Config instance. An empty filePath selects
// ~/.file-manager.conf.
func New(filePath string) *Config {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		filePath = filepath.Join(home, DefaultFileName)
	}

	return &Config{filePath: filePath, data: map[string]string{}}
}

// locked runs fn with the mutex held and the file loaded.
func (c *Config) locked(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		if err := c.load(); err != nil {
			return err
		}
	}
	return fn()
}

// Load reads configuration from file. A missing file is not an error.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Config) load() error {
	f, err := os.Open(c.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.data, c.loaded = map[string]string{}, true
		return nil
	case err != nil:
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if key, value, ok := parseLine(sc.Text()); ok {
			data[key] = value
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", c.filePath, err)
	}
	c.data, c.loaded = data, true
	return nil
}

// parseLine splits a KEY=value line. Comments, blank lines and lines
// without '=' are skipped. Matching quotes around the value are removed.
func parseLine(raw string) (key, value string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] == '#' {
		return "", "", false
	}
	key, value, ok = strings.Cut(raw, "=")
	if !ok {
		return "", "", false
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		value = value[1 : n-1]
	}
	return key, value, key != ""
}

// persist renders the sorted pairs and replaces the file. Must be called
// with c.mu held.
func (c *Config) persist() error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# File Manager Configuration\n# Generated: %s\n\n", time.Now().Format(time.RFC3339))
	for _, key := range c.keys() {
		fmt.Fprintf(&buf, "%s=%s\n", key, c.data[key])
	}
	return writeAtomic(c.filePath, buf.Bytes())
}

// writeAtomic writes data to a private temp file next to path, syncs it
// and renames it over path.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0600); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

func (c *Config) keys() []string {
	keys := make([]string, 0, len(c.data))
	for key := range c.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value saved in the file for key, or an error wrapping
// ErrKeyNotFound when the file does not set it.
func (c *Config) Get(key string) (value string, err error) {
	err = c.locked(func() error {
		v, ok := c.data[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		value = v
		return nil
	})
	return value, err
}

// GetOrDefault returns the file value, then the Defaults table entry, then
// fallback. A file that cannot be read yields fallback.
func (c *Config) GetOrDefault(key, fallback string) string {
	value := fallback
	_ = c.locked(func() error {
		if v, ok := c.data[key]; ok {
			value = v
		} else if v, ok := Defaults[key]; ok {
			value = v
		}
		return nil
	})
	return value
}

// Set stores a value and rewrites the file.
func (c *Config) Set(key, value string) error {
	return c.locked(func() error {
		c.data[key] = value
		return c.persist()
	})
}

// Delete removes a key and rewrites the file. Deleting a missing key is
// not an error and leaves the file alone.
func (c *Config) Delete(key string) error {
	return c.locked(func() error {
		if _, ok := c.data[key]; !ok {
			return nil
		}
		delete(c.data, key)
		return c.persist()
	})
}

// Entry is one resolved configuration value.
type Entry struct {
	Key      string
	Value    string
	FromFile bool
}

// Effective returns every known key with its file value or default,
// sorted by key.
func (c *Config) Effective() ([]Entry, error) {
	var entries []Entry
	err := c.locked(func() error {
		for _, key := range KnownKeys() {
			value, fromFile := c.data[key]
			if !fromFile {
				value = Defaults[key]
			}
			entries = append(entries, Entry{Key: key, Value: value, FromFile: fromFile})
		}
		return nil
	})
	return entries, err
}

// UnknownKeys returns the sorted keys in the file that the file manager
// does not use.
func (c *Config) UnknownKeys() []string {
	var unknown []string
	_ = c.locked(func() error {
		for _, key := range c.keys() {
			if !IsKnownKey(key) {
				unknown = append(unknown, key)
			}
		}
		return nil
	})
	return unknown
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}
