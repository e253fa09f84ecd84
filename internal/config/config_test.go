package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Addr != "localhost:4221" || cfg.ReadBufferSize != 1024 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoad_DirectoryFlag(t *testing.T) {
	cfg, err := Load([]string{"--directory", "/tmp/data"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Directory != "/tmp/data" {
		t.Fatalf("Directory=%q", cfg.Directory)
	}
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, `{
		"addr": "0.0.0.0:8080",
		"directory": "/srv/files",
		"log_level": "debug",
		"log_format": "console",
		"read_buffer_size": 4096,
		"idle_timeout": "30s",
		"unknown": [1, 2, 3]
	}`)
	cfg, err := Load([]string{"--config", p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Addr:           "0.0.0.0:8080",
		Directory:      "/srv/files",
		LogLevel:       "debug",
		LogFormat:      "console",
		ReadBufferSize: 4096,
		IdleTimeout:    30 * time.Second,
	}
	if cfg != want {
		t.Fatalf("cfg=%+v, want %+v", cfg, want)
	}
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	p := writeFile(t, `{"addr": "0.0.0.0:8080", "directory": "/from/file"}`)
	cfg, err := Load([]string{"--config", p, "--directory", "/from/flag"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Directory != "/from/flag" || cfg.Addr != "0.0.0.0:8080" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	cases := map[string]string{
		"wrong type":   `{"addr": 42}`,
		"bad duration": `{"idle_timeout": "soon"}`,
		"bad int":      `{"read_buffer_size": "big"}`,
		"not object":   `[1, 2]`,
	}
	for name, content := range cases {
		if _, err := Load([]string{"--config", writeFile(t, content)}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "absent.json")}); err == nil {
		t.Fatal("missing file: expected error")
	}
}

func TestLoad_Validate(t *testing.T) {
	_, err := Load([]string{"--read-buffer-size", "0", "--log-format", "xml"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"read buffer size", `"xml"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestLoad_UnknownFlag(t *testing.T) {
	if _, err := Load([]string{"--port", "1"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
