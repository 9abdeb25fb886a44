package config

import (
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "fm.conf"))

	s, err := LoadSettings(cfg)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if s.Codec != "brotli" {
		t.Errorf("Codec = %q, want brotli", s.Codec)
	}
	if s.HashAlgorithm != "sha256" {
		t.Errorf("HashAlgorithm = %q, want sha256", s.HashAlgorithm)
	}
	if s.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want 65536", s.BufferSize)
	}
	if s.ConfirmOverwrite {
		t.Error("ConfirmOverwrite = true, want false")
	}
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", s.LogLevel)
	}
}

func TestLoadSettingsFileThenEnv(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "fm.conf"))
	if err := cfg.Set(KeyCodec, "GZIP"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set(KeyBufferSize, "1024"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FM_BUFFER_SIZE", "2048")
	t.Setenv("FM_CONFIRM_OVERWRITE", "true")

	s, err := LoadSettings(cfg)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if s.Codec != "gzip" {
		t.Errorf("Codec = %q, want gzip (file value, lower-cased)", s.Codec)
	}
	if s.BufferSize != 2048 {
		t.Errorf("BufferSize = %d, want 2048 (env override)", s.BufferSize)
	}
	if !s.ConfirmOverwrite {
		t.Error("ConfirmOverwrite = false, want true (env override)")
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric buffer", KeyBufferSize, "lots"},
		{"zero buffer", KeyBufferSize, "0"},
		{"bad bool", KeyConfirmOverwrite, "maybe"},
		{"empty codec", KeyCodec, " "},
		{"unknown log level", KeyLogLevel, "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(filepath.Join(t.TempDir(), "fm.conf"))
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(cfg); err == nil {
				t.Errorf("LoadSettings() error = nil, want error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadSettingsBadEnv(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "fm.conf"))
	t.Setenv("FM_BUFFER_SIZE", "abc")

	if _, err := LoadSettings(cfg); err == nil {
		t.Error("LoadSettings() error = nil, want envconfig parse error")
	}
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	if len(keys) != len(Defaults) {
		t.Fatalf("KnownKeys() = %v, want %d keys", keys, len(Defaults))
	}
	for _, k := range keys {
		if !IsKnownKey(k) {
			t.Errorf("IsKnownKey(%q) = false", k)
		}
	}
	if IsKnownKey("THEME") {
		t.Error(`IsKnownKey("THEME") = true, want false`)
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{KeyBufferSize, "4096", false},
		{KeyBufferSize, "0", true},
		{KeyBufferSize, "big", true},
		{KeyConfirmOverwrite, "true", false},
		{KeyLogDev, "maybe", true},
		{KeyLogLevel, "warn", false},
		{KeyLogLevel, "chatty", true},
		{KeyCodec, "zstd", false},
		{KeyCodec, "", true},
		{KeyLogFile, "", false},
		{"THEME", "dark", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := ValidateValue(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettingsIgnoresUnprefixedEnv(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "fm.conf"))
	if err := cfg.Set(KeyCodec, "gzip"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CODEC", "zstd")
	t.Setenv("BUFFER_SIZE", "7")
	t.Setenv("HASH_ALGORITHM", "md5")
	t.Setenv("LOG_LEVEL", "trace")
	t.Setenv("LOG_FILE", "")
	t.Setenv("CONFIRM_OVERWRITE", "yes please")

	s, err := LoadSettings(cfg)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v, want unprefixed variables ignored", err)
	}
	if s.Codec != "gzip" {
		t.Errorf("Codec = %q, want gzip from the file", s.Codec)
	}
	if s.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want default 65536", s.BufferSize)
	}
	if s.HashAlgorithm != "sha256" || s.LogLevel != "error" {
		t.Errorf("HashAlgorithm, LogLevel = %q, %q, want defaults", s.HashAlgorithm, s.LogLevel)
	}
}

func TestLoadSettingsPrefixedNames(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "fm.conf"))
	t.Setenv("FM_HASH_ALGORITHM", "SHA512")
	t.Setenv("FM_LOG_LEVEL", "debug")
	t.Setenv("FM_LOG_DEV", "true")
	t.Setenv("FM_LOG_FILE", "/tmp/fm.log")

	s, err := LoadSettings(cfg)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.HashAlgorithm != "sha512" {
		t.Errorf("HashAlgorithm = %q, want sha512", s.HashAlgorithm)
	}
	if s.LogLevel != "debug" || !s.LogDev || s.LogFile != "/tmp/fm.log" {
		t.Errorf("logging settings = %q, %v, %q, want debug, true, /tmp/fm.log", s.LogLevel, s.LogDev, s.LogFile)
	}
}
