package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/file-manager/internal/system"
)

func newMockEngine(t *testing.T, opts Options) (*Engine, *system.MockFileSystem) {
	t.Helper()
	fs := system.NewMockFileSystem()
	fs.AddDir("/data")
	e, err := New(fs, opts)
	require.NoError(t, err)
	return e, fs
}

func TestNewRejectsUnknownNames(t *testing.T) {
	fs := system.NewMockFileSystem()

	_, err := New(fs, Options{Codec: "lz4"})
	assert.ErrorContains(t, err, `unknown codec "lz4"`)

	_, err = New(fs, Options{Digest: "md5"})
	assert.ErrorContains(t, err, `unknown hash algorithm "md5"`)

	e, err := New(fs, Options{})
	require.NoError(t, err)
	assert.Equal(t, "brotli", e.Codec().Name)
}

func TestHashKnownValue(t *testing.T) {
	e, fs := newMockEngine(t, Options{})
	fs.AddFile("/data/abc.txt", []byte("abc"))

	digest, err := e.Hash(context.Background(), "/data/abc.txt")

	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}

func TestHashDeterministicAndSensitive(t *testing.T) {
	for _, algo := range DigestNames() {
		t.Run(algo, func(t *testing.T) {
			e, fs := newMockEngine(t, Options{Digest: algo, BufferSize: 7})
			content := bytes.Repeat([]byte("0123456789"), 100)
			fs.AddFile("/data/f", content)

			first, err := e.Hash(context.Background(), "/data/f")
			require.NoError(t, err)
			second, err := e.Hash(context.Background(), "/data/f")
			require.NoError(t, err)
			assert.Equal(t, first, second)

			d, _ := LookupDigest(algo)
			assert.Len(t, first, 2*d.New().Size())

			content[500] ^= 1
			fs.AddFile("/data/f", content)
			changed, err := e.Hash(context.Background(), "/data/f")
			require.NoError(t, err)
			assert.NotEqual(t, first, changed)
		})
	}
}

type brokenFS struct {
	*system.MockFileSystem
	readErr  error
	closeErr error
}

func (b *brokenFS) Open(path string) (io.ReadCloser, error) {
	if b.readErr != nil {
		return io.NopCloser(io.MultiReader(bytes.NewReader([]byte("partial")), errReader{b.readErr})), nil
	}
	return b.MockFileSystem.Open(path)
}

func (b *brokenFS) Create(path string) (io.WriteCloser, error) {
	w, err := b.MockFileSystem.Create(path)
	if err != nil || b.closeErr == nil {
		return w, err
	}
	return closeErrWriter{w, b.closeErr}, nil
}

type closeErrWriter struct {
	io.WriteCloser
	err error
}

func (w closeErrWriter) Close() error {
	w.WriteCloser.Close()
	return w.err
}

func TestHashReadErrorYieldsNoDigest(t *testing.T) {
	boom := errors.New("input/output error")
	fs := &brokenFS{MockFileSystem: system.NewMockFileSystem(), readErr: boom}
	e, err := New(fs, Options{})
	require.NoError(t, err)

	res, err := e.Run(context.Background(), Job{Source: "/f", Kind: KindNone})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, res.Digest)
}

func TestHashMissingFile(t *testing.T) {
	e, _ := newMockEngine(t, Options{})

	_, err := e.Hash(context.Background(), "/data/missing")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	content := bytes.Repeat([]byte("stream me through a codec\n"), 5000)

	for _, codec := range NewRegistry().Names() {
		t.Run(codec, func(t *testing.T) {
			e, fs := newMockEngine(t, Options{Codec: codec, BufferSize: 1000})
			fs.AddFile("/data/f.txt", content)

			res, err := e.Compress(context.Background(), "/data/f.txt", "/data/archive")
			require.NoError(t, err)
			assert.Equal(t, "/data/archive"+e.Codec().Extension, res.Destination)
			assert.Equal(t, int64(len(content)), res.Bytes)

			compressed, err := fs.ReadFile(res.Destination)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(content))

			res, err = e.Decompress(context.Background(), res.Destination, "/data/restored.txt"+e.Codec().Extension)
			require.NoError(t, err)
			assert.Equal(t, "/data/restored.txt", res.Destination)

			restored, err := fs.ReadFile("/data/restored.txt")
			require.NoError(t, err)
			assert.Equal(t, content, restored)
		})
	}
}

func TestDecompressPicksCodecFromSuffix(t *testing.T) {
	zstdEngine, fs := newMockEngine(t, Options{Codec: "zstd"})
	fs.AddFile("/data/f", []byte("hello zstd"))
	_, err := zstdEngine.Compress(context.Background(), "/data/f", "/data/f")
	require.NoError(t, err)

	brotliEngine, err := New(fs, Options{Codec: "brotli"})
	require.NoError(t, err)

	res, err := brotliEngine.Decompress(context.Background(), "/data/f.zst", "/data/out")
	require.NoError(t, err)
	assert.Equal(t, "/data/out", res.Destination)

	got, err := fs.ReadFile("/data/out")
	require.NoError(t, err)
	assert.Equal(t, "hello zstd", string(got))
}

func TestDecompressDestinationNaming(t *testing.T) {
	e, fs := newMockEngine(t, Options{})
	fs.AddFile("/data/f", []byte("x"))
	_, err := e.Compress(context.Background(), "/data/f", "")
	require.NoError(t, err)

	tests := []struct {
		name string
		dst  string
		want string
	}{
		{"suffix stripped", "/data/a.br", "/data/a"},
		{"no suffix", "/data/b", "/data/b"},
		{"suffix only at end", "/data/c.br.txt", "/data/c.br.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Decompress(context.Background(), "/data/f.br", tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Destination)
		})
	}
}

func TestDecompressDerivesDestinationFromSource(t *testing.T) {
	e, fs := newMockEngine(t, Options{})
	fs.AddFile("/data/f", []byte("x"))
	_, err := e.Compress(context.Background(), "/data/f", "/data/copy")
	require.NoError(t, err)

	res, err := e.Decompress(context.Background(), "/data/copy.br", "")

	require.NoError(t, err)
	assert.Equal(t, "/data/copy", res.Destination)
	assert.Equal(t, "x", string(mustRead(t, fs, "/data/copy")))
}

func mustRead(t *testing.T, fs *system.MockFileSystem, path string) []byte {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestCompressMissingSourceCreatesNothing(t *testing.T) {
	e, fs := newMockEngine(t, Options{})

	_, err := e.Compress(context.Background(), "/data/missing", "/data/out")

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, fs.MutatingCalls())
}

func TestTransformRefusesSameFile(t *testing.T) {
	e, fs := newMockEngine(t, Options{})
	fs.AddFile("/data/plain", []byte("not compressed"))

	_, err := e.Decompress(context.Background(), "/data/plain", "")

	assert.ErrorIs(t, err, system.ErrSameFile)
	assert.Equal(t, "not compressed", string(mustRead(t, fs, "/data/plain")))
}

func TestDecompressCorruptInput(t *testing.T) {
	e, fs := newMockEngine(t, Options{Codec: "gzip"})
	fs.AddFile("/data/bad.gz", []byte("definitely not gzip"))

	_, err := e.Decompress(context.Background(), "/data/bad.gz", "/data/bad")

	assert.Error(t, err)
}

func TestCompressSinkCloseError(t *testing.T) {
	boom := errors.New("no space left on device")
	fs := &brokenFS{MockFileSystem: system.NewMockFileSystem(), closeErr: boom}
	fs.AddFile("/data/f", []byte("content"))
	e, err := New(fs, Options{})
	require.NoError(t, err)

	_, err = e.Compress(context.Background(), "/data/f", "/data/f")

	assert.ErrorIs(t, err, boom)
}

func TestCompressCreateError(t *testing.T) {
	e, fs := newMockEngine(t, Options{})
	fs.AddFile("/data/f", []byte("content"))
	boom := errors.New("permission denied")
	fs.Errors["/data/f.br"] = boom

	_, err := e.Compress(context.Background(), "/data/f", "/data/f")

	assert.ErrorIs(t, err, boom)
}

func TestEngineOnRealFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.bin")
	content := bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, 200000)
	require.NoError(t, os.WriteFile(src, content, 0644))

	e, err := New(system.NewFileSystem(), Options{Codec: "zstd", BufferSize: 4096})
	require.NoError(t, err)

	res, err := e.Compress(context.Background(), src, filepath.Join(dir, "big.bin"))
	require.NoError(t, err)
	assert.Equal(t, src+".zst", res.Destination)

	res, err = e.Decompress(context.Background(), res.Destination, filepath.Join(dir, "again.bin.zst"))
	require.NoError(t, err)

	got, err := os.ReadFile(res.Destination)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "a.txt", trimExtension("a.txt.br", ".br"))
	assert.Equal(t, "a.txt", trimExtension("a.txt.BR", ".br"))
	assert.Equal(t, "a.txt", trimExtension("a.txt", ".br"))
	assert.Equal(t, ".br", trimExtension(".br", ".br"))
	assert.Equal(t, "a", trimExtension("a", ""))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "hash", KindNone.String())
	assert.Equal(t, "compress", KindCompress.String())
	assert.Equal(t, "decompress", KindDecompress.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
