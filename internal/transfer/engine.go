package transfer

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zoro11031/file-manager/internal/logging"
	"github.com/zoro11031/file-manager/internal/system"
)

const defaultBufferSize = 64 * 1024

// FileOpener opens the streams a job reads from and writes to.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Codec      string
	Digest     string
	BufferSize int
	Logger     *logging.Logger
}

// Engine runs transfer jobs against a filesystem.
type Engine struct {
	fs         FileOpener
	codecs     *Registry
	codec      Codec
	digest     Digest
	bufferSize int
	logger     *logging.Logger
}

// New creates an Engine. Unknown codec or digest names are an error.
func New(fs FileOpener, opts Options) (*Engine, error) {
	codecs := NewRegistry()

	name := opts.Codec
	if name == "" {
		name = DefaultCodec
	}
	codec, ok := codecs.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (supported: %s)", name, strings.Join(codecs.Names(), ", "))
	}

	algo := opts.Digest
	if algo == "" {
		algo = DefaultDigest
	}
	digest, ok := LookupDigest(algo)
	if !ok {
		return nil, fmt.Errorf("unknown hash algorithm %q (supported: %s)", algo, strings.Join(DigestNames(), ", "))
	}

	bufferSize := opts.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Engine{
		fs:         fs,
		codecs:     codecs,
		codec:      codec,
		digest:     digest,
		bufferSize: bufferSize,
		logger:     logger,
	}, nil
}

// Codec returns the codec used for compression.
func (e *Engine) Codec() Codec {
	return e.codec
}

// Hash streams the file at path into the configured digest.
func (e *Engine) Hash(ctx context.Context, path string) (string, error) {
	res, err := e.Run(ctx, Job{Source: path, Kind: KindNone})
	if err != nil {
		return "", err
	}
	return res.Digest, nil
}

// Compress writes src compressed to dst plus the codec extension.
func (e *Engine) Compress(ctx context.Context, src, dst string) (Result, error) {
	return e.Run(ctx, Job{Source: src, Destination: dst, Kind: KindCompress})
}

// Decompress writes src decompressed to dst without its codec extension.
func (e *Engine) Decompress(ctx context.Context, src, dst string) (Result, error) {
	return e.Run(ctx, Job{Source: src, Destination: dst, Kind: KindDecompress})
}

// Run executes job and reports its outcome once, after every stream it
// opened has been closed.
func (e *Engine) Run(ctx context.Context, job Job) (Result, error) {
	start := time.Now()
	res, err := e.run(ctx, job)

	fields := []zap.Field{
		zap.Stringer("kind", job.Kind),
		zap.String("source", job.Source),
		zap.String("destination", res.Destination),
		zap.Int64("bytes", res.Bytes),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		e.logger.Warn("transfer failed", append(fields, zap.Error(err))...)
		return Result{}, err
	}
	e.logger.Debug("transfer complete", fields...)
	return res, nil
}

func (e *Engine) run(ctx context.Context, job Job) (Result, error) {
	switch job.Kind {
	case KindNone:
		return e.hash(ctx, job)
	case KindCompress:
		dst := job.Destination
		if dst == "" {
			dst = job.Source
		}
		return e.transform(ctx, job.Source, dst+e.codec.Extension, EncodeStage(e.codec, e.bufferSize))
	case KindDecompress:
		codec := e.decoderFor(job.Source)
		dst := job.Destination
		if dst == "" {
			dst = job.Source
		}
		return e.transform(ctx, job.Source, trimExtension(dst, codec.Extension), DecodeStage(codec, e.bufferSize))
	default:
		return Result{}, fmt.Errorf("unsupported transfer kind %s", job.Kind)
	}
}

// decoderFor picks the codec matching the source suffix, falling back to
// the configured one.
func (e *Engine) decoderFor(src string) Codec {
	if c, ok := e.codecs.ForPath(src); ok {
		return c
	}
	return e.codec
}

func (e *Engine) hash(ctx context.Context, job Job) (Result, error) {
	src, err := e.fs.Open(job.Source)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	h := e.digest.New()
	n, err := NewPipeline(e.bufferSize, CopyStage(e.bufferSize)).Run(ctx, h, src)
	if err != nil {
		return Result{Bytes: n}, err
	}
	return Result{Digest: hex.EncodeToString(h.Sum(nil)), Bytes: n}, nil
}

func (e *Engine) transform(ctx context.Context, srcPath, dstPath string, stage Stage) (Result, error) {
	if filepath.Clean(srcPath) == filepath.Clean(dstPath) {
		return Result{}, fmt.Errorf("%s: %w", dstPath, system.ErrSameFile)
	}

	src, err := e.fs.Open(srcPath)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	dst, err := e.fs.Create(dstPath)
	if err != nil {
		return Result{}, err
	}

	res := Result{Destination: dstPath}
	res.Bytes, err = NewPipeline(e.bufferSize, stage).Run(ctx, dst, src)
	if err != nil {
		dst.Close()
		return res, err
	}
	// Data may still be buffered by the OS until close succeeds
	if err := dst.Close(); err != nil {
		return res, err
	}
	return res, nil
}

// trimExtension strips ext from the end of path. Paths without the
// extension are returned unchanged.
func trimExtension(path, ext string) string {
	if ext == "" || len(path) <= len(ext) {
		return path
	}
	if strings.EqualFold(path[len(path)-len(ext):], ext) {
		return path[:len(path)-len(ext)]
	}
	return path
}
