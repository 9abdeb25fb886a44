package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/zoro11031/file-manager/internal/common"
)

// ErrExit is returned by the exit command to end the loop
var ErrExit = errors.New("exit")

// Shell reads commands line by line and runs them one at a time
type Shell struct {
	ctx      *SessionContext
	commands []Command
	byName   map[string]*Command
}

// NewShell creates a new Shell instance
func NewShell(ctx *SessionContext) *Shell {
	s := &Shell{ctx: ctx, commands: commandTable()}
	s.byName = make(map[string]*Command, len(s.commands))
	for i := range s.commands {
		s.byName[s.commands[i].Name] = &s.commands[i]
	}
	return s
}

// Run greets the user and processes input until exit or end of input. The
// next prompt is written only after the previous command has finished.
// in is closed when Run returns if it is an io.Closer.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if c, ok := in.(io.Closer); ok {
		defer c.Close()
	}

	s.ctx.UI.Printf("Welcome to the File Manager, %s!", s.ctx.Session.Username())
	s.printLocation()

	r := bufio.NewReader(in)
	for {
		s.ctx.UI.Prompt(s.prompt())

		line, err := readLine(r, maxLineLength)
		switch {
		case errors.Is(err, errLineTooLong):
			s.ctx.Logger.Warn("input line too long", zap.Int("limit", maxLineLength))
			s.ctx.UI.Invalid("line too long")
			continue
		case errors.Is(err, io.EOF):
			s.ctx.UI.Print("")
			s.farewell()
			return nil
		case err != nil:
			// Input cannot be read any further; end the session as on EOF.
			s.ctx.Logger.Warn("failed to read input", zap.Error(err))
			s.ctx.UI.Print("")
			s.ctx.UI.Failed("Operation failed", err)
			s.farewell()
			return nil
		}

		if err := s.Execute(ctx, line); errors.Is(err, ErrExit) {
			s.farewell()
			return nil
		}
	}
}

// maxLineLength caps a single command line in bytes.
const maxLineLength = 64 * 1024

var errLineTooLong = errors.New("line too long")

// readLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF. A line longer than max is
// consumed in full and reported as errLineTooLong.
func readLine(r *bufio.Reader, max int) (string, error) {
	var (
		buf     []byte
		tooLong bool
		read    bool
	)
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true
		if !tooLong {
			if len(buf)+len(chunk) > max {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

func (s *Shell) prompt() string {
	return s.ctx.Session.Username() + "@file-manager> "
}

func (s *Shell) farewell() {
	s.ctx.UI.Printf("Thank you for using File Manager, %s, goodbye!", s.ctx.Session.Username())
}

func (s *Shell) printLocation() {
	s.ctx.UI.Printf("You are currently in %s", s.ctx.Session.CurrentDirectory())
}

// Execute runs a single input line and prints its result. Only ErrExit is
// returned; every other failure is reported to the user.
func (s *Shell) Execute(ctx context.Context, line string) error {
	name, args, err := tokenize(line)
	if err != nil {
		s.report(nil, err)
		return nil
	}
	if name == "" {
		return nil
	}

	cmd, ok := s.byName[name]
	if !ok {
		s.report(nil, common.Usagef("unknown command '%s'", name))
		return nil
	}

	s.ctx.Logger.Debug("command", zap.String("name", name), zap.Int("args", len(args)))

	if err := common.RequireArgs(args, cmd.MinArgs, cmd.ArgDesc); err != nil {
		s.report(cmd, err)
		return nil
	}

	err = cmd.Run(ctx, s, args)
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		s.report(cmd, err)
	}
	return nil
}

// report prints err as exactly one line
func (s *Shell) report(cmd *Command, err error) {
	name := ""
	if cmd != nil {
		name = cmd.Name
	}
	s.ctx.Logger.Warn("command failed", zap.String("name", name), zap.Error(err))

	if common.IsInvalidInput(err) {
		s.ctx.UI.Invalid(err.Error())
		return
	}
	prefix := "Operation failed"
	if cmd != nil && cmd.FailPrefix != "" {
		prefix = cmd.FailPrefix
	}
	s.ctx.UI.Failed(prefix, err)
}
