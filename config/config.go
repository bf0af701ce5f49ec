// Package config reads optional assembler-wide defaults from a TOML file,
// the same way the module's history has always configured itself: a
// struct with toml tags, a programmatic Default(), and a Load/LoadFrom
// pair that tolerates a missing file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds assembler-wide defaults the CLI and library callers can
// tune without recompiling: where to look for INCLUDE targets, how wide
// to make Intel HEX records and listing lines, and what address to
// assume when source never issues an ORG.
type Config struct {
	Assembler struct {
		IncludePaths  []string `toml:"include_paths"`
		DefaultOrigin string   `toml:"default_origin"` // hex text, e.g. "0x0100"
	} `toml:"assembler"`

	Output struct {
		HexRecordSize int  `toml:"hex_record_size"`
		CRLF          bool `toml:"crlf"`
	} `toml:"output"`

	Listing struct {
		BytesPerLine int    `toml:"bytes_per_line"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"listing"`
}

// Default returns a configuration with the assembler's built-in defaults,
// matching spec §3/§4.6/§6: CP/M origin 0x0100, 16-byte HEX records, a
// 16-wide listing, hex symbol-table values.
func Default() *Config {
	cfg := &Config{}
	cfg.Assembler.IncludePaths = nil
	cfg.Assembler.DefaultOrigin = "0x0100"
	cfg.Output.HexRecordSize = 16
	cfg.Output.CRLF = true
	cfg.Listing.BytesPerLine = 16
	cfg.Listing.NumberFormat = "hex"
	return cfg
}

// DefaultOriginValue parses Assembler.DefaultOrigin; a malformed value falls
// back to the CP/M TPA origin 0x0100.
func (c *Config) DefaultOriginValue() uint16 {
	text := c.Assembler.DefaultOrigin
	text = trimHexPrefix(text)
	var v uint16
	if _, err := fmt.Sscanf(text, "%x", &v); err != nil {
		return 0x0100
	}
	return v
}

func trimHexPrefix(s string) string {
	if len(s) > 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		return s[2:]
	}
	return s
}

// Path returns the platform-specific config file path: ~/.config/z80asm
// on Linux/macOS, %APPDATA%\z80asm on Windows, falling back to the
// current directory when the home directory cannot be determined.
func Path() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "z80asm")

	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "z80asm.toml"
		}
		dir = filepath.Join(home, ".config", "z80asm")

	default:
		return "z80asm.toml"
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "z80asm.toml"
	}
	return filepath.Join(dir, "z80asm.toml")
}

// Load reads configuration from the default config path, falling back to
// Default() when no file exists there.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads configuration from path, falling back to Default() when
// path does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to path in TOML form.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
