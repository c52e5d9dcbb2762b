package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/five82/todo/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_OverridesWin(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://env.example/api")
	path := writeConfig(t, "api_url = \"http://file.example/api\"\nlog_level = \"warn\"\n")

	cfg, err := loadConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example/api" || cfg.LogLevel != "warn" {
		t.Fatalf("cfg = %+v, want env url and file level", cfg)
	}

	cfg, err = loadConfig(Options{ConfigPath: path, APIURL: " http://flag.example/api ", LogLevel: "DEBUG"})
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.APIURL != "http://flag.example/api" || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v, want flag url and level", cfg)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "api_url = [")
	err := Run(context.Background(), Options{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config failure", err)
	}
}

func TestRun_RelativeAPIURL(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	dir := t.TempDir()
	path := writeConfig(t, "log_file = \""+filepath.ToSlash(filepath.Join(dir, "todo.log"))+"\"\n")

	err := Run(context.Background(), Options{ConfigPath: path, APIURL: "/api"})
	if err == nil || !strings.Contains(err.Error(), "init todo client") {
		t.Fatalf("Run error = %v, want client init failure", err)
	}
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.log")
	logger, closeLog, err := newLogger(config.Config{LogFile: path, LogLevel: "warn", LogFormat: "logfmt"})
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "op", "list todos")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("log contains info line below configured level: %q", out)
	}
	for _, want := range []string{"level=warn", "prefix=todo", "msg=shown", `op="list todos"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log = %q, want %q", out, want)
		}
	}
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := newLogger(config.Config{})
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	logger.Error("nowhere")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		" WARN ":  log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"info":    log.InfoLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseLogFormatter(t *testing.T) {
	if got := parseLogFormatter("json"); got != log.JSONFormatter {
		t.Fatalf("parseLogFormatter(json) = %v, want JSONFormatter", got)
	}
	if got := parseLogFormatter("logfmt"); got != log.LogfmtFormatter {
		t.Fatalf("parseLogFormatter(logfmt) = %v, want LogfmtFormatter", got)
	}
	if got := parseLogFormatter(""); got != log.TextFormatter {
		t.Fatalf("parseLogFormatter(\"\") = %v, want TextFormatter", got)
	}
}

func TestSetupTracing_Disabled(t *testing.T) {
	tp, shutdown, err := setupTracing("  ")
	if err != nil {
		t.Fatalf("setupTracing returned error: %v", err)
	}
	if tp != nil {
		t.Fatalf("provider = %v, want nil when disabled", tp)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}

func TestSetupTracing_WritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "todo.json")
	tp, shutdown, err := setupTracing(path)
	if err != nil {
		t.Fatalf("setupTracing returned error: %v", err)
	}

	_, span := tp.Tracer("test").Start(context.Background(), "todoapi.list_todos")
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read traces: %v", err)
	}
	for _, want := range []string{"todoapi.list_todos", "service.name"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("trace file missing %q: %s", want, data)
		}
	}
}

func TestNewClient_UsesConfig(t *testing.T) {
	logger, closeLog, err := newLogger(config.Config{})
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	defer func() { _ = closeLog() }()

	client, err := newClient(config.Config{APIURL: "todo.example:5000/api/"}, logger, nil)
	if err != nil {
		t.Fatalf("newClient returned error: %v", err)
	}
	if got := client.BaseURL(); got != "http://todo.example:5000/api" {
		t.Fatalf("BaseURL = %q, want http://todo.example:5000/api", got)
	}
}
