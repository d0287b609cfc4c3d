package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rxvar/internal/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvModeVar, "dev")
	t.Setenv(config.EnvMinifyStates, "")
}

func TestRenderCommandJSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "")
	man := writeFile(t, dir, "exprs.toml", `
[[expr]]
name = "status"
kind = "cond"
cond = { var = "state.ok", type = "bool" }
then = "yes"
else = "no"

[[expr]]
name = "count"
kind = "literal"
value = 3
`)
	out := filepath.Join(dir, "out.json")
	_, stderr, err := execute(t, "render", "--color", "off", "--config", cfg, "--format", "json", "-o", out, man)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var payload struct {
		Artifacts []struct {
			Name string `json:"name"`
			Expr string `json:"expr"`
		} `json:"artifacts"`
		Diagnostics []json.RawMessage `json:"diagnostics"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(payload.Artifacts) != 2 || len(payload.Diagnostics) != 0 {
		t.Fatalf("unexpected payload %s", data)
	}
	if payload.Artifacts[0].Name != "status" || payload.Artifacts[0].Expr != `((state.ok ? (() => "yes") : (() => "no"))())` {
		t.Fatalf("status artifact = %+v", payload.Artifacts[0])
	}
	if payload.Artifacts[1].Expr != "3" {
		t.Fatalf("count artifact = %+v", payload.Artifacts[1])
	}
}

func TestRenderCommandReportsFailures(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "")
	man := writeFile(t, dir, "exprs.toml", `
[[expr]]
name = "no_else"
kind = "cond"
cond = true
then = "a"

[[expr]]
name = "ok"
kind = "literal"
value = "fine"
`)
	out := filepath.Join(dir, "out.js")
	_, stderr, err := execute(t, "render", "--color", "off", "--config", cfg, "--format", "module", "-o", out, man)
	if err == nil || err.Error() != "1 of 2 entries failed" {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(stderr, "ERROR [VAR1001] no_else:") {
		t.Fatalf("stderr missing diagnostic:\n%s", stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `export const ok = "fine";`) || strings.Contains(string(data), "no_else") {
		t.Fatalf("module output:\n%s", data)
	}
}

func TestNamesCommandJSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "[compile]\nenv_mode = \"prod\"\n")

	stdout, _, err := execute(t, "names", "--color", "off", "--config", cfg, "--format", "json")
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	var payload namesPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	// The environment wins over the file.
	if payload.EnvMode != config.EnvDev || payload.Vars.MinifyStates {
		t.Fatalf("unexpected payload %+v", payload)
	}

	stdout, _, err = execute(t, "names", "--color", "off", "--config", cfg, "--format", "json", "--minify=true")
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	payload = namesPayload{}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if payload.Vars.OnLoadInternalState != "l" || len(payload.Imports) != 3 {
		t.Fatalf("minified payload %+v", payload)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--color", "off", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "rxvar" || payload.Version == "" {
		t.Fatalf("payload %+v", payload)
	}
}

func TestUnsupportedColorMode(t *testing.T) {
	_, _, err := execute(t, "version", "--color", "sometimes", "--format", "pretty")
	if err == nil {
		t.Fatalf("expected error for bad color mode")
	}
}

func TestRenderCommandWrapsHooks(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "")
	man := writeFile(t, dir, "exprs.toml", `
[[expr]]
name = "bg"
kind = "color_mode"
light = "#fff"
dark = "#000"
`)
	out := filepath.Join(dir, "out.js")
	if _, stderr, err := execute(t, "render", "--color", "off", "--config", cfg, "--format", "module", "-o", out, man); err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "export function useBg() {\n  const { resolvedColorMode } = useContext(ColorModeContext)\n  return (") {
		t.Fatalf("hook function missing:\n%s", text)
	}
	if strings.Contains(text, "export const bg") {
		t.Fatalf("hook-dependent expression exported at module scope:\n%s", text)
	}
}
