// Package cli provides the interactive file manager shell: the read loop,
// the command table, and the wiring that builds a session from config.
package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/zoro11031/file-manager/internal/config"
	"github.com/zoro11031/file-manager/internal/logging"
	"github.com/zoro11031/file-manager/internal/session"
	"github.com/zoro11031/file-manager/internal/system"
	"github.com/zoro11031/file-manager/internal/transfer"
	"github.com/zoro11031/file-manager/internal/ui"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	PromptYesNo(prompt string, defaultYes bool) (bool, error)
}

// SessionContext holds all dependencies needed by the command handlers
type SessionContext struct {
	Config   *config.Config
	Settings *config.Settings
	UI       *ui.UI
	Session  *session.Session
	FS       system.FileSystemManager
	Engine   *transfer.Engine
	Platform system.PlatformInfo
	Logger   *logging.Logger
	Confirm  Confirmer
}

// Options selects how a SessionContext is built.
type Options struct {
	Username    string
	ConfigPath  string // empty selects ~/.file-manager.conf
	StartDir    string // empty selects the home directory
	Output      io.Writer
	Interactive bool
}

// NewSessionContext creates a SessionContext with all dependencies initialized
func NewSessionContext(opts Options) (*SessionContext, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	settings, err := config.LoadSettings(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.ConfigFor(settings.LogLevel, settings.LogDev, settings.LogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, key := range cfg.UnknownKeys() {
		logger.Warn("ignoring unknown config key", zap.String("key", key), zap.String("file", cfg.FilePath()))
	}

	fs := system.NewFileSystemWithBuffer(settings.BufferSize)

	engine, err := transfer.New(fs, transfer.Options{
		Codec:      settings.Codec,
		Digest:     settings.HashAlgorithm,
		BufferSize: settings.BufferSize,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	start := opts.StartDir
	if start == "" {
		if start, err = system.StartDirectory(); err != nil {
			return nil, err
		}
	}
	sess, err := session.New(opts.Username, start, fs)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == nil {
		output = io.Discard
	}
	uiInstance := ui.NewWithWriter(output)
	uiInstance.SetNonInteractive(!opts.Interactive)

	return &SessionContext{
		Config:   cfg,
		Settings: settings,
		UI:       uiInstance,
		Session:  sess,
		FS:       fs,
		Engine:   engine,
		Platform: system.NewHostPlatform(),
		Logger:   logger,
		Confirm:  uiInstance,
	}, nil
}

// Close flushes buffered log entries.
func (c *SessionContext) Close() {
	_ = c.Logger.Sync()
}
