package transfer

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Stage is one step of a pipeline. It reads src until EOF, writes its output
// to dst and returns. It must not close dst.
type Stage interface {
	Run(ctx context.Context, dst io.Writer, src io.Reader) error
}

// StageFunc adapts a function to a Stage.
type StageFunc func(ctx context.Context, dst io.Writer, src io.Reader) error

// Run calls f.
func (f StageFunc) Run(ctx context.Context, dst io.Writer, src io.Reader) error {
	return f(ctx, dst, src)
}

// Pipeline chains stages with synchronous pipes. A pipe has no internal
// buffer, so a stage's write blocks until the next stage reads it: the source
// is never read ahead of the sink by more than one buffer per stage.
type Pipeline struct {
	stages     []Stage
	bufferSize int
}

// NewPipeline creates a pipeline. With no stages the source is copied to
// the sink unchanged.
func NewPipeline(bufferSize int, stages ...Stage) *Pipeline {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if len(stages) == 0 {
		stages = []Stage{CopyStage(bufferSize)}
	}
	return &Pipeline{stages: stages, bufferSize: bufferSize}
}

// Run streams src through every stage into dst and returns the number of
// bytes read from src. The first failure from any stage, the source or the
// sink is returned and stops the others. dst is not closed.
func (p *Pipeline) Run(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	g, gctx := errgroup.WithContext(ctx)

	counter := &countingReader{ctx: gctx, r: src}
	var in io.Reader = counter

	for i, stage := range p.stages {
		stage := stage // per-iteration copy; go 1.21 loop variables are shared
		r := in

		var w io.Writer = dst
		var pw *io.PipeWriter
		if i < len(p.stages)-1 {
			var pr *io.PipeReader
			pr, pw = io.Pipe()
			w = pw
			in = pr
		}

		g.Go(func() error {
			err := stage.Run(gctx, w, r)
			// nil closes the writer with EOF for the next stage
			if pw != nil {
				pw.CloseWithError(err)
			}
			// Unblock an upstream writer once this stage stops reading
			if pr, ok := r.(*io.PipeReader); ok {
				if err != nil {
					pr.CloseWithError(err)
				} else {
					pr.Close()
				}
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return counter.n, err
	}
	// A cancelled context with every stage done still counts as a failure
	if err := ctx.Err(); err != nil {
		return counter.n, err
	}
	return counter.n, nil
}

// countingReader counts bytes and stops reading once ctx is done.
type countingReader struct {
	ctx context.Context
	r   io.Reader
	n   int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// CopyStage copies src to dst unchanged.
func CopyStage(bufferSize int) Stage {
	return StageFunc(func(ctx context.Context, dst io.Writer, src io.Reader) error {
		_, err := io.CopyBuffer(dst, src, make([]byte, bufferSize))
		return err
	})
}

// EncodeStage compresses src into dst with c. The encoder is closed so its
// trailer reaches dst before the stage returns.
func EncodeStage(c Codec, bufferSize int) Stage {
	return StageFunc(func(ctx context.Context, dst io.Writer, src io.Reader) error {
		enc, err := c.NewWriter(dst)
		if err != nil {
			return err
		}
		if _, err := io.CopyBuffer(enc, src, make([]byte, bufferSize)); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

// DecodeStage decompresses src into dst with c.
func DecodeStage(c Codec, bufferSize int) Stage {
	return StageFunc(func(ctx context.Context, dst io.Writer, src io.Reader) error {
		dec, err := c.NewReader(src)
		if err != nil {
			return err
		}
		defer dec.Close()
		_, err = io.CopyBuffer(dst, dec, make([]byte, bufferSize))
		return err
	})
}
