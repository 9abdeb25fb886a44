// file-manager is an interactive shell for navigating the filesystem and
// working with files: listing, reading, copying, hashing and compressing.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoro11031/file-manager/internal/cli"
	"github.com/zoro11031/file-manager/internal/ui"
	"github.com/zoro11031/file-manager/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the file-manager CLI with the given args and streams.
// Returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	username   string
	configPath string
}

// newRootCmd creates the root cobra command. Running it without a
// subcommand starts the shell.
func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "file-manager",
		Short: "Interactive file manager shell",
		Long: `An interactive shell for working with files.

Type 'help' at the prompt to list the available commands. Settings are read
from ~/.file-manager.conf and can be overridden with FM_* environment
variables (FM_CODEC, FM_HASH_ALGORITHM, FM_BUFFER_SIZE, FM_CONFIRM_OVERWRITE,
FM_LOG_LEVEL, FM_LOG_DEV, FM_LOG_FILE).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts, stdin, stdout)
		},
	}
	root.PersistentFlags().StringVar(&opts.username, "username", "",
		"name shown in the prompt and greetings")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to the config file (default ~/.file-manager.conf)")
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(newVersionCmd(stdout), newConfigCmd(opts, stdout))
	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, version.Info())
		},
	}
}

func runShell(ctx context.Context, opts *rootOptions, stdin io.Reader, stdout io.Writer) error {
	sc, err := cli.NewSessionContext(cli.Options{
		Username:    opts.username,
		ConfigPath:  opts.configPath,
		Output:      stdout,
		Interactive: ui.IsTerminal(stdin),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	defer sc.Close()

	return cli.NewShell(sc).Run(ctx, stdin)
}
