// Package config loads host defaults from an optional JSON rc file.
// A missing file is not an error; the defaults stand in.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type Config struct {
	Prompt  string // command prompt text
	Shell   string // shell for the ! command
	Verbose bool   // report full error messages instead of "?"
	Silent  bool   // suppress byte counts and diagnostics
	Scroll  int    // default window for the z command
}

func Default() Config {
	return Config{
		Prompt: "*",
		Shell:  "/bin/sh",
		Scroll: 22,
	}
}

// Load reads the rc file at path and overlays any keys present onto the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("config: %s is not valid JSON", path)
	}
	if v := gjson.GetBytes(data, "prompt"); v.Exists() {
		cfg.Prompt = v.String()
	}
	if v := gjson.GetBytes(data, "shell"); v.Exists() {
		cfg.Shell = v.String()
	}
	if v := gjson.GetBytes(data, "verbose"); v.Exists() {
		cfg.Verbose = v.Bool()
	}
	if v := gjson.GetBytes(data, "silent"); v.Exists() {
		cfg.Silent = v.Bool()
	}
	if v := gjson.GetBytes(data, "scroll"); v.Exists() && v.Int() > 0 {
		cfg.Scroll = int(v.Int())
	}
	return cfg, nil
}

// WriteDefault writes a fresh rc file with the default settings spelled
// out. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	cfg := Default()
	out := []byte("{}")
	var err error
	for _, kv := range []struct {
		key string
		val any
	}{
		{"prompt", cfg.Prompt},
		{"shell", cfg.Shell},
		{"verbose", cfg.Verbose},
		{"silent", cfg.Silent},
		{"scroll", cfg.Scroll},
	} {
		out, err = sjson.SetBytes(out, kv.key, kv.val)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}
