package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoro11031/file-manager/internal/config"
	"github.com/zoro11031/file-manager/internal/transfer"
	"github.com/zoro11031/file-manager/internal/ui"
)

func newConfigCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved settings",
		Long: `Show or change the settings stored in the config file.

Values written here can still be overridden with FM_* environment variables.`,
	}
	cmd.AddCommand(
		newConfigListCmd(opts, stdout),
		newConfigGetCmd(opts, stdout),
		newConfigSetCmd(opts, stdout),
		newConfigUnsetCmd(opts, stdout),
	)
	return cmd
}

func newConfigListCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every setting with its saved or default value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New(opts.configPath)
			entries, err := cfg.Effective()
			if err != nil {
				return err
			}
			out := ui.NewWithWriter(stdout)
			out.Printf("# %s", cfg.FilePath())
			for _, e := range entries {
				line := fmt.Sprintf("%s=%s", e.Key, e.Value)
				if !e.FromFile {
					line += " (default)"
				}
				out.Print(line)
			}
			for _, key := range cfg.UnknownKeys() {
				out.Printf("%s (unknown key, ignored)", key)
			}
			return nil
		},
	}
}

func newConfigGetCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the saved or default value of a setting",
		Long: `Print the value saved in the config file. A setting that is not saved
prints its default followed by "(default)".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(args[0])
			if !config.IsKnownKey(key) {
				return fmt.Errorf("unknown config key %q", key)
			}
			value, err := config.New(opts.configPath).Get(key)
			switch {
			case errors.Is(err, config.ErrKeyNotFound):
				fmt.Fprintf(stdout, "%s (default)\n", config.Defaults[key])
			case err != nil:
				return err
			default:
				fmt.Fprintln(stdout, value)
			}
			return nil
		},
	}
}

func newConfigSetCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Save a setting to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := strings.ToUpper(args[0]), args[1]
			if err := validateSetting(key, value); err != nil {
				return err
			}
			cfg := config.New(opts.configPath)
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			ui.NewWithWriter(stdout).Successf("Saved %s=%s to %s", key, value, cfg.FilePath())
			return nil
		},
	}
}

func newConfigUnsetCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a setting from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(args[0])
			cfg := config.New(opts.configPath)
			if err := cfg.Delete(key); err != nil {
				return err
			}
			ui.NewWithWriter(stdout).Successf("Removed %s from %s", key, cfg.FilePath())
			return nil
		},
	}
}

// validateSetting rejects values that would stop the shell from starting.
func validateSetting(key, value string) error {
	if err := config.ValidateValue(key, value); err != nil {
		return err
	}
	switch key {
	case config.KeyCodec:
		if _, ok := transfer.NewRegistry().Lookup(value); !ok {
			return fmt.Errorf("unknown codec %q (supported: %s)", value,
				strings.Join(transfer.NewRegistry().Names(), ", "))
		}
	case config.KeyHashAlgorithm:
		if _, ok := transfer.LookupDigest(value); !ok {
			return fmt.Errorf("unknown hash algorithm %q (supported: %s)", value,
				strings.Join(transfer.DigestNames(), ", "))
		}
	}
	return nil
}
