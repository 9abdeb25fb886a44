package transfer

import (
	"io"
	"sort"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec is a streaming compression format and the filename suffix it owns.
type Codec struct {
	Name      string
	Extension string
	NewWriter func(w io.Writer) (io.WriteCloser, error)
	NewReader func(r io.Reader) (io.ReadCloser, error)
}

// DefaultCodec is used when no codec is configured.
const DefaultCodec = "brotli"

var brotliCodec = Codec{
	Name:      "brotli",
	Extension: ".br",
	NewWriter: func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriter(w), nil
	},
	NewReader: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
}

var zstdCodec = Codec{
	Name:      "zstd",
	Extension: ".zst",
	NewWriter: func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	},
	NewReader: func(r io.Reader) (io.ReadCloser, error) {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	},
}

var gzipCodec = Codec{
	Name:      "gzip",
	Extension: ".gz",
	NewWriter: func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	},
	NewReader: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
}

// Registry maps codec names and extensions to codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns a registry holding brotli, zstd and gzip.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register(brotliCodec)
	r.Register(zstdCodec)
	r.Register(gzipCodec)
	return r
}

// Register adds or replaces a codec.
func (r *Registry) Register(c Codec) {
	r.codecs[strings.ToLower(c.Name)] = c
}

// Lookup finds a codec by name, case-insensitively.
func (r *Registry) Lookup(name string) (Codec, bool) {
	c, ok := r.codecs[strings.ToLower(name)]
	return c, ok
}

// ForPath finds the codec whose extension ends path.
func (r *Registry) ForPath(path string) (Codec, bool) {
	lower := strings.ToLower(path)
	for _, c := range r.codecs {
		if strings.HasSuffix(lower, c.Extension) {
			return c, true
		}
	}
	return Codec{}, false
}

// Names returns the registered codec names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
