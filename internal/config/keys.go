package config

import "sort"

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Transfer engine
	KeyCodec         = "CODEC"          // compression codec: brotli, zstd, gzip
	KeyHashAlgorithm = "HASH_ALGORITHM" // digest used by hash
	KeyBufferSize    = "BUFFER_SIZE"    // copy buffer per pipeline stage, in bytes

	// Shell behavior
	KeyConfirmOverwrite = "CONFIRM_OVERWRITE" // ask before add truncates an existing file

	// Logging
	KeyLogLevel = "LOG_LEVEL"
	KeyLogDev   = "LOG_DEV"
	KeyLogFile  = "LOG_FILE" // empty means stderr
)

// Default values for configuration keys
var Defaults = map[string]string{
	KeyCodec:            "brotli",
	KeyHashAlgorithm:    "sha256",
	KeyBufferSize:       "65536",
	KeyConfirmOverwrite: "false",
	KeyLogLevel:         "error",
	KeyLogDev:           "false",
	KeyLogFile:          "",
}

// EnvPrefix is prepended to every key when reading environment overrides,
// e.g. FM_CODEC.
const EnvPrefix = "FM"

// KnownKeys returns the configuration keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(Defaults))
	for key := range Defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a configuration key.
func IsKnownKey(key string) bool {
	_, ok := Defaults[key]
	return ok
}
