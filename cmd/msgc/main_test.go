package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/msgc"
	"github.com/wippyai/msgc/config"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"c,python", []string{"c", "python"}},
		{" c , wasm ,", []string{"c", "wasm"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func newRunner(t *testing.T, cfg *config.Config, stdout, verify bool) (*runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &runner{
		gen:    msgc.New(cfg.GeneratorOptions()...),
		cfg:    cfg,
		log:    zap.NewNop(),
		out:    &out,
		stdout: stdout,
		write:  !stdout,
		verify: verify,
	}, &out
}

func writeSchema(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesNextToSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "Reading.msg", "int32 id\nfloat32 value\nuint8 flag = 1\n")

	r, _ := newRunner(t, config.Default(), false, false)
	if err := r.run(context.Background(), config.Message{Schema: path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, suffix := range []string{".h", ".py"} {
		if _, err := os.Stat(filepath.Join(dir, "Reading"+suffix)); err != nil {
			t.Errorf("Reading%s not written: %v", suffix, err)
		}
	}
}

func TestRunStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "Reading.msg", "int32 id\n")

	cfg := config.Default()
	cfg.Targets = []string{"python", "wasm"}
	r, out := newRunner(t, cfg, true, false)
	if err := r.run(context.Background(), config.Message{Schema: path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, `struct.Struct("<i")`) {
		t.Errorf("python module not printed:\n%s", s)
	}
	if !strings.Contains(s, "Reading.wasm: ") || strings.Contains(s, "\x00asm") {
		t.Errorf("wasm should be summarized, not dumped:\n%q", s)
	}
	if _, err := os.Stat(filepath.Join(dir, "Reading.py")); !os.IsNotExist(err) {
		t.Error("-s must not write files")
	}
}

func TestRunStdoutWithOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "Reading.msg", "int32 id\n")
	base := filepath.Join(dir, "out", "reading")

	r, out := newRunner(t, config.Default(), true, false)
	r.write = true
	if err := r.run(context.Background(), config.Message{Schema: path, Out: base}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "#define MSGC_PACKED_SIZE_Reading 4") {
		t.Errorf("header not printed:\n%s", out.String())
	}
	for _, suffix := range []string{".h", ".py"} {
		if _, err := os.Stat(base + suffix); err != nil {
			t.Errorf("-s -o should also write %s: %v", suffix, err)
		}
	}
}

func TestRunVerify(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "Mixed.msg", "uint8 a\nint64 b\nfloat64 c\nint16 d\n")

	r, out := newRunner(t, config.Default(), true, true)
	if err := r.run(context.Background(), config.Message{Schema: path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Mixed: 19 bytes verified") {
		t.Errorf("verify report missing:\n%s", out.String())
	}
}

func TestRunConfigOutput(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "status.msg", "uint16 code\n")

	cfg := config.Default()
	cfg.BaseDir = dir
	cfg.OutputDir = "gen"
	cfg.Targets = []string{"manifest"}
	m := config.Message{Schema: "status.msg", Name: "Status"}

	r, _ := newRunner(t, cfg, false, false)
	if err := r.run(context.Background(), m); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gen", "status.json")); err != nil {
		t.Errorf("manifest not written under output_dir: %v", err)
	}
}

func TestRunError(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "Bad.msg", "int33 x\n")

	r, _ := newRunner(t, config.Default(), false, false)
	if err := r.run(context.Background(), config.Message{Schema: path}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, "Bad.h")); !os.IsNotExist(err) {
		t.Error("no artifact may be written on error")
	}
}

func TestExportsView(t *testing.T) {
	msg, _ := schema.Parse("int32 id\nfloat32 value", "Reading")
	v := exportsView(layout.Calculate(msg))
	for _, want := range []string{"size() -> i32 = 8", "get_id(ptr) / set_id(ptr, v)  @0 int32", "@4 float32"} {
		if !strings.Contains(v, want) {
			t.Errorf("exportsView missing %q:\n%s", want, v)
		}
	}
}
