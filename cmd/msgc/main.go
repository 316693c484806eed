package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/msgc"
	"github.com/wippyai/msgc/config"
	"github.com/wippyai/msgc/emit/wasmmod"
	"github.com/wippyai/msgc/schema"
	"github.com/wippyai/msgc/verify"
)

func main() {
	var (
		stdout      = flag.Bool("s", false, "Print artifacts to stdout; files are written only when -o is also given")
		outBase     = flag.String("o", "", "Output base path (suffixes .h, .py, ... are appended)")
		name        = flag.String("name", "", "Message name (default: schema file stem)")
		targets     = flag.String("targets", "", "Comma-separated targets: "+strings.Join(msgc.Targets(), ","))
		configFile  = flag.String("config", "", "Project file (.yaml, .yml, .toml) listing schemas")
		verifyWasm  = flag.Bool("verify", false, "Check the wasm accessor module against a random sample")
		watch       = flag.Bool("watch", false, "Regenerate when a schema changes")
		interactive = flag.Bool("i", false, "Interactive preview with TUI")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: msgc [flags] <file.msg>")
		fmt.Fprintln(os.Stderr, "       msgc -config msgc.yaml [-watch]")
		fmt.Fprintln(os.Stderr, "       msgc -i <file.msg>  (interactive mode)")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(1)
		}
		config.ApplyEnv(cfg)
		cfg.Messages = []config.Message{{Schema: flag.Arg(0), Name: *name, Out: *outBase}}
	}
	if *targets != "" {
		cfg.Targets = splitList(*targets)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	msgc.SetLogger(log)
	schema.SetLogger(log.Named("schema"))
	verify.SetLogger(log.Named("verify"))

	g := msgc.New(append(cfg.GeneratorOptions(), msgc.WithLogger(log))...)

	if *interactive {
		if len(cfg.Messages) != 1 {
			fmt.Fprintln(os.Stderr, "Error: -i takes exactly one schema")
			os.Exit(1)
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		m := cfg.Messages[0]
		if err := runInteractive(g, cfg.SchemaPath(m), m.Name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	r := &runner{
		gen:    g,
		cfg:    cfg,
		log:    log,
		out:    os.Stdout,
		stdout: *stdout,
		write:  !*stdout || *outBase != "",
		verify: *verifyWasm,
	}

	failed := false
	for _, m := range cfg.Messages {
		if err := r.run(context.Background(), m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := r.watch(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if failed {
		os.Exit(1)
	}
}

type runner struct {
	gen    *msgc.Generator
	cfg    *config.Config
	log    *zap.Logger
	out    io.Writer
	stdout bool
	write  bool
	verify bool
}

// run compiles one message, then prints and/or writes its artifacts.
func (r *runner) run(ctx context.Context, m config.Message) error {
	path := r.cfg.SchemaPath(m)
	res, err := r.gen.GenerateFile(path, m.Name)
	if err != nil {
		return err
	}

	if r.stdout {
		for _, a := range res.Artifacts {
			if a.Target == wasmmod.Target {
				fmt.Fprintf(r.out, ";; %s%s: %d bytes, use -o to write\n", res.Message.Name, a.Suffix, len(a.Data))
				continue
			}
			r.out.Write(a.Data)
		}
	}
	if r.write {
		base := r.outputBase(m, path)
		paths, err := res.Write(base)
		if err != nil {
			return err
		}
		for _, p := range paths {
			r.log.Info("wrote artifact", zap.String("message", res.Message.Name), zap.String("path", p))
		}
	}

	if !r.verify {
		return nil
	}
	bin := res.Artifact(wasmmod.Target)
	var data []byte
	if bin != nil {
		data = bin.Data
	} else if data, err = wasmmod.New().Emit(res.Message, res.Layout); err != nil {
		return err
	}
	sample := make([]byte, res.Layout.Size)
	rand.Read(sample)
	report, err := verify.Module(ctx, res.Message, res.Layout, data, sample)
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, report)
	return nil
}

// outputBase keeps single-file runs next to the schema unless -o was given.
func (r *runner) outputBase(m config.Message, schemaPath string) string {
	if m.Out == "" && r.cfg.OutputDir == "" {
		return strings.TrimSuffix(schemaPath, filepath.Ext(schemaPath))
	}
	return r.cfg.OutputBase(m)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
