package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/zoro11031/file-manager/internal/common"
)

// Command is one entry of the shell's command table
type Command struct {
	Name        string
	Usage       string
	Description string
	// MinArgs arguments are checked before Run is called
	MinArgs int
	// ArgDesc names the missing argument; empty means "missing arguments"
	ArgDesc string
	// FailPrefix replaces "Operation failed" for I/O errors
	FailPrefix string
	Options    []Option
	Run        func(ctx context.Context, s *Shell, args []string) error
}

// Option is a flag accepted by a command
type Option struct {
	Flag        string
	Description string
	Run         func(s *Shell) error
}

// commandTable returns the commands in help order
func commandTable() []Command {
	return []Command{
		{Name: "help", Usage: "help", Description: "Show available commands", Run: runHelp},
		{Name: "ls", Usage: "ls", Description: "List files and directories", Run: runList},
		{Name: "cd", Usage: "cd <directory>", Description: "Change directory", MinArgs: 1, ArgDesc: "directory", Run: runChangeDirectory},
		{Name: "cat", Usage: "cat <filename>", Description: "Display file content", MinArgs: 1, ArgDesc: "filename", Run: runCat},
		{Name: "up", Usage: "up", Description: "Go to parent directory", Run: runUp},
		{Name: "add", Usage: "add <filename>", Description: "Create empty file", MinArgs: 1, ArgDesc: "filename", Run: runAdd},
		{Name: "rn", Usage: "rn <path_to_file> <new_filename>", Description: "Rename file", MinArgs: 2, Run: runRename},
		{Name: "cp", Usage: "cp <path_to_file> <path_to_new_directory_or_file>", Description: "Copy file", MinArgs: 2, Run: runCopy},
		{Name: "mv", Usage: "mv <path_to_file> <path_to_new_directory_or_file>", Description: "Move file", MinArgs: 2, Run: runMove},
		{Name: "rm", Usage: "rm <path_to_file>", Description: "Delete file", MinArgs: 1, ArgDesc: "filename", Run: runRemove},
		{Name: "os", Usage: "os", MinArgs: 1, ArgDesc: "option", Options: osOptions(), Run: runOS},
		{Name: "hash", Usage: "hash <path_to_file>", Description: "Calculate hash for file", MinArgs: 1, ArgDesc: "filename", Run: runHash},
		{Name: "compress", Usage: "compress <path_to_file> <path_to_destination>", Description: "Compress file", MinArgs: 2, FailPrefix: "Compression failed", Run: runCompress},
		{Name: "decompress", Usage: "decompress <path_to_file> <path_to_destination>", Description: "Decompress file", MinArgs: 2, FailPrefix: "Decompression failed", Run: runDecompress},
		{Name: "exit", Usage: "exit", Description: "Exit the File Manager", Run: runExit},
	}
}

func osOptions() []Option {
	return []Option{
		{Flag: "--eol", Description: "Get default system End-Of-Line", Run: printEOL},
		{Flag: "--cpus", Description: "Get host machine CPUs info", Run: printCPUs},
		{Flag: "--homedir", Description: "Get home directory", Run: printHomeDir},
		{Flag: "--username", Description: "Get current system user name", Run: printUsername},
		{Flag: "--architecture", Description: "Get CPU architecture", Run: printArchitecture},
	}
}

func runHelp(ctx context.Context, s *Shell, args []string) error {
	s.ctx.UI.Bold("Available commands:")
	for _, cmd := range s.commands {
		if len(cmd.Options) == 0 {
			s.ctx.UI.Printf("  %s - %s", cmd.Usage, cmd.Description)
			continue
		}
		for _, opt := range cmd.Options {
			s.ctx.UI.Printf("  %s %s - %s", cmd.Usage, opt.Flag, opt.Description)
		}
	}
	return nil
}

func runList(ctx context.Context, s *Shell, args []string) error {
	names, err := s.ctx.FS.ListDirectory(s.ctx.Session.CurrentDirectory())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.ctx.UI.Print("Directory is empty.")
		return nil
	}
	for _, name := range names {
		s.ctx.UI.Print(name)
	}
	return nil
}

func runChangeDirectory(ctx context.Context, s *Shell, args []string) error {
	if err := s.ctx.Session.ChangeDirectory(args[0]); err != nil {
		return err
	}
	s.printLocation()
	return nil
}

func runUp(ctx context.Context, s *Shell, args []string) error {
	if err := s.ctx.Session.GoUp(); err != nil {
		return err
	}
	s.printLocation()
	return nil
}

// requireFile resolves arg and checks that it names a regular file
func (s *Shell) requireFile(arg string) (string, error) {
	path := s.ctx.Session.Resolve(arg)
	ok, err := s.ctx.FS.RegularFileExists(path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &common.NotFoundError{Kind: "file", Path: path}
	}
	return path, nil
}

// destinationFor resolves arg and places src inside it when it is a directory
func (s *Shell) destinationFor(src, arg string) (string, error) {
	dst := s.ctx.Session.Resolve(arg)
	isDir, err := s.ctx.FS.DirectoryExists(dst)
	if err != nil {
		return "", err
	}
	if isDir {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	return dst, nil
}

func runCat(ctx context.Context, s *Shell, args []string) error {
	path, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	data, err := s.ctx.FS.ReadFile(path)
	if err != nil {
		return err
	}
	s.ctx.UI.Write(data)
	return nil
}

// runAdd truncates an existing file unless overwrite confirmation is enabled
// and the user declines
func runAdd(ctx context.Context, s *Shell, args []string) error {
	path := s.ctx.Session.Resolve(args[0])

	if s.ctx.Settings.ConfirmOverwrite && !s.ctx.UI.IsNonInteractive() {
		exists, err := s.ctx.FS.FileExists(path)
		if err != nil {
			return err
		}
		if exists {
			ok, err := s.ctx.Confirm.PromptYesNo(fmt.Sprintf("%s already exists. Overwrite?", args[0]), false)
			if err != nil {
				return err
			}
			if !ok {
				s.ctx.UI.Print("Operation cancelled.")
				return nil
			}
		}
	}

	if err := s.ctx.FS.CreateEmptyFile(path); err != nil {
		return err
	}
	s.ctx.UI.Success("File created successfully.")
	return nil
}

// runRename changes a file's name in place. Unlike mv, a directory target
// is refused rather than joined with the source name.
func runRename(ctx context.Context, s *Shell, args []string) error {
	src, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	dst := s.ctx.Session.Resolve(args[1])
	isDir, err := s.ctx.FS.DirectoryExists(dst)
	if err != nil {
		return err
	}
	if isDir {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EISDIR}
	}
	if err := s.ctx.FS.Rename(src, dst); err != nil {
		return err
	}
	s.ctx.UI.Success("File renamed successfully.")
	return nil
}

func runCopy(ctx context.Context, s *Shell, args []string) error {
	src, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	dst, err := s.destinationFor(src, args[1])
	if err != nil {
		return err
	}
	if err := s.ctx.FS.CopyFile(src, dst); err != nil {
		return err
	}
	s.ctx.UI.Success("File copied successfully.")
	return nil
}

// runMove renames, so it fails across filesystems
func runMove(ctx context.Context, s *Shell, args []string) error {
	src, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	dst, err := s.destinationFor(src, args[1])
	if err != nil {
		return err
	}
	if err := s.ctx.FS.Rename(src, dst); err != nil {
		return err
	}
	s.ctx.UI.Success("File moved successfully.")
	return nil
}

func runRemove(ctx context.Context, s *Shell, args []string) error {
	if err := s.ctx.FS.RemoveFile(s.ctx.Session.Resolve(args[0])); err != nil {
		return err
	}
	s.ctx.UI.Success("File deleted successfully.")
	return nil
}

func runOS(ctx context.Context, s *Shell, args []string) error {
	cmd := s.byName["os"]
	flag := strings.ToLower(args[0])
	for _, opt := range cmd.Options {
		if opt.Flag == flag {
			return opt.Run(s)
		}
	}
	return common.Usagef("unknown option '%s'", args[0])
}

func printEOL(s *Shell) error {
	s.ctx.UI.Printf("End-Of-Line (EOL): %q", s.ctx.Platform.EOL())
	return nil
}

func printCPUs(s *Shell) error {
	cpus, err := s.ctx.Platform.CPUs()
	if err != nil {
		return err
	}
	s.ctx.UI.Print("Host machine CPUs info:")
	for i, cpu := range cpus {
		s.ctx.UI.Printf("CPU %d: Model: %s, Speed: %.0f MHz", i+1, cpu.Model, cpu.SpeedMHz)
	}
	return nil
}

func printHomeDir(s *Shell) error {
	home, err := s.ctx.Platform.HomeDir()
	if err != nil {
		return err
	}
	s.ctx.UI.Printf("Home directory: %s", home)
	return nil
}

func printUsername(s *Shell) error {
	name, err := s.ctx.Platform.Username()
	if err != nil {
		return err
	}
	s.ctx.UI.Printf("Current system user name: %s", name)
	return nil
}

func printArchitecture(s *Shell) error {
	s.ctx.UI.Printf("CPU architecture: %s", s.ctx.Platform.Architecture())
	return nil
}

func runHash(ctx context.Context, s *Shell, args []string) error {
	path, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	digest, err := s.ctx.Engine.Hash(ctx, path)
	if err != nil {
		return err
	}
	s.ctx.UI.Printf("Hash '%s': %s", args[0], digest)
	return nil
}

func runCompress(ctx context.Context, s *Shell, args []string) error {
	src, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	if _, err := s.ctx.Engine.Compress(ctx, src, s.ctx.Session.Resolve(args[1])); err != nil {
		return err
	}
	s.ctx.UI.Success("File compressed successfully.")
	return nil
}

func runDecompress(ctx context.Context, s *Shell, args []string) error {
	src, err := s.requireFile(args[0])
	if err != nil {
		return err
	}
	if _, err := s.ctx.Engine.Decompress(ctx, src, s.ctx.Session.Resolve(args[1])); err != nil {
		return err
	}
	s.ctx.UI.Success("File decompressed successfully.")
	return nil
}

func runExit(ctx context.Context, s *Shell, args []string) error {
	return ErrExit
}
