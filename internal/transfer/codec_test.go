package transfer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"brotli", "gzip", "zstd"}, r.Names())

	c, ok := r.Lookup("ZSTD")
	require.True(t, ok)
	assert.Equal(t, ".zst", c.Extension)

	_, ok = r.Lookup("lz4")
	assert.False(t, ok)
}

func TestRegistryForPath(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		path string
		want string
	}{
		{"/tmp/a.txt.br", "brotli"},
		{"/tmp/a.txt.GZ", "gzip"},
		{"a.zst", "zstd"},
		{"/tmp/a.br.txt", ""},
		{"/tmp/plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, ok := r.ForPath(tt.path)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, c.Name)
		})
	}
}

func TestCodecsRoundTrip(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog. ")
	data = bytes.Repeat(data, 200)
	r := NewRegistry()

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			c, _ := r.Lookup(name)

			var compressed bytes.Buffer
			w, err := c.NewWriter(&compressed)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			assert.Less(t, compressed.Len(), len(data))

			rd, err := c.NewReader(&compressed)
			require.NoError(t, err)
			got, err := io.ReadAll(rd)
			require.NoError(t, err)
			require.NoError(t, rd.Close())
			assert.Equal(t, data, got)
		})
	}
}

func TestDigestLookup(t *testing.T) {
	assert.Equal(t, []string{"blake2b-256", "sha256", "sha3-256", "sha512"}, DigestNames())

	sizes := map[string]int{"sha256": 32, "sha512": 64, "sha3-256": 32, "blake2b-256": 32}
	for name, size := range sizes {
		d, ok := LookupDigest(name)
		require.True(t, ok, name)
		assert.Equal(t, size, d.New().Size(), name)
	}

	_, ok := LookupDigest("md5")
	assert.False(t, ok)
}
