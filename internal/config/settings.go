package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/zoro11031/file-manager/internal/common"
)

// Settings is the typed view of the configuration used at startup. Field
// names map to FM_* variables through split_words (LogDev is FM_LOG_DEV).
// An explicit envconfig name would also be read without the prefix.
type Settings struct {
	Codec            string `split_words:"true"`
	HashAlgorithm    string `split_words:"true"`
	BufferSize       int    `split_words:"true"`
	ConfirmOverwrite bool   `split_words:"true"`
	LogLevel         string `split_words:"true"`
	LogDev           bool   `split_words:"true"`
	LogFile          string `split_words:"true"`
}

// LoadSettings builds Settings from the config file and the Defaults table,
// then applies FM_* environment overrides. Environment wins over the file.
func LoadSettings(cfg *Config) (*Settings, error) {
	s := &Settings{
		Codec:         strings.ToLower(cfg.GetOrDefault(KeyCodec, "brotli")),
		HashAlgorithm: strings.ToLower(cfg.GetOrDefault(KeyHashAlgorithm, "sha256")),
		LogLevel:      cfg.GetOrDefault(KeyLogLevel, "error"),
		LogFile:       cfg.GetOrDefault(KeyLogFile, ""),
	}

	var err error
	if s.BufferSize, err = strconv.Atoi(cfg.GetOrDefault(KeyBufferSize, "65536")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyBufferSize, err)
	}
	if s.ConfirmOverwrite, err = strconv.ParseBool(cfg.GetOrDefault(KeyConfirmOverwrite, "false")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyConfirmOverwrite, err)
	}
	if s.LogDev, err = strconv.ParseBool(cfg.GetOrDefault(KeyLogDev, "false")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogDev, err)
	}

	// Fields without a matching variable keep the file value.
	if err := envconfig.Process(EnvPrefix, s); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}
	s.Codec = strings.ToLower(s.Codec)
	s.HashAlgorithm = strings.ToLower(s.HashAlgorithm)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks values that do not depend on other packages.
func (s *Settings) Validate() error {
	if err := common.ValidatePositive(KeyBufferSize, s.BufferSize); err != nil {
		return err
	}
	if err := common.ValidateNotEmpty(s.Codec); err != nil {
		return fmt.Errorf("%s: %w", KeyCodec, err)
	}
	if err := common.ValidateNotEmpty(s.HashAlgorithm); err != nil {
		return fmt.Errorf("%s: %w", KeyHashAlgorithm, err)
	}
	if err := common.ValidateOneOf(s.LogLevel, logLevels); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return nil
}

// ValidateValue checks a single value before it is written to the config
// file. Codec and hash names are checked by the transfer engine instead.
func ValidateValue(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(KnownKeys(), ", "))
	}
	switch key {
	case KeyBufferSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		return common.ValidatePositive(key, n)
	case KeyConfirmOverwrite, KeyLogDev:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	case KeyLogLevel:
		if err := common.ValidateOneOf(value, logLevels); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	case KeyCodec, KeyHashAlgorithm:
		if err := common.ValidateNotEmpty(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
