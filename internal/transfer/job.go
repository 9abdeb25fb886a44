// Package transfer moves file contents from a source to a sink through an
// optional compression transform. Every stage streams: memory use is bounded
// by the copy buffers regardless of file size, and a job yields one result.
package transfer

import "fmt"

// Kind selects the transform applied between source and sink.
type Kind int

const (
	// KindNone streams the source into a digest.
	KindNone Kind = iota
	// KindCompress encodes the source into a new file.
	KindCompress
	// KindDecompress decodes the source into a new file.
	KindDecompress
)

// String returns the command name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "hash"
	case KindCompress:
		return "compress"
	case KindDecompress:
		return "decompress"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Job describes one transfer. Destination is ignored for KindNone. An empty
// Destination for the other kinds derives the output name from Source.
type Job struct {
	Source      string
	Destination string
	Kind        Kind
}

// Result is the terminal outcome of a successful job.
type Result struct {
	Destination string // file written, empty for KindNone
	Digest      string // hex digest, KindNone only
	Bytes       int64  // bytes read from the source
}
