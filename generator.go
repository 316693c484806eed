package msgc

import (
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/msgc/emit"
	"github.com/wippyai/msgc/emit/cheader"
	"github.com/wippyai/msgc/emit/manifest"
	"github.com/wippyai/msgc/emit/pymodule"
	"github.com/wippyai/msgc/emit/wasmmod"
	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

var registry = map[string]func() emit.Emitter{
	cheader.Target:  func() emit.Emitter { return cheader.New() },
	pymodule.Target: func() emit.Emitter { return pymodule.New() },
	wasmmod.Target:  func() emit.Emitter { return wasmmod.New() },
	manifest.Target: func() emit.Emitter { return manifest.New() },
}

// DefaultTargets are emitted when no targets are configured.
var DefaultTargets = []string{cheader.Target, pymodule.Target}

// Targets lists every known target name, sorted.
func Targets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownTarget reports whether an emitter exists for target.
func KnownTarget(target string) bool {
	_, ok := registry[target]
	return ok
}

// Option configures a Generator.
type Option func(*Generator)

// WithTargets selects the artifacts to emit, in order. Duplicates are
// dropped. Generate fails with UnknownTarget for a name with no emitter.
func WithTargets(targets ...string) Option {
	return func(g *Generator) {
		g.targets = g.targets[:0]
		for _, t := range targets {
			if !slices.Contains(g.targets, t) {
				g.targets = append(g.targets, t)
			}
		}
	}
}

// WithParserOptions passes options through to the schema parser.
func WithParserOptions(opts ...schema.Option) Option {
	return func(g *Generator) {
		g.parserOpts = append(g.parserOpts, opts...)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// Generator runs the parse, layout and emit pipeline.
type Generator struct {
	log        *zap.Logger
	targets    []string
	parserOpts []schema.Option
}

func New(opts ...Option) *Generator {
	g := &Generator{
		log:     Logger(),
		targets: slices.Clone(DefaultTargets),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result holds everything derived from one schema.
type Result struct {
	Message   *schema.Message
	Artifacts []emit.Artifact
	Layout    layout.Info
	Natural   layout.Natural
}

// Artifact returns the artifact for target, or nil.
func (r *Result) Artifact(target string) *emit.Artifact {
	for i := range r.Artifacts {
		if r.Artifacts[i].Target == target {
			return &r.Artifacts[i]
		}
	}
	return nil
}

// Write stores every artifact at base plus its suffix, creating the parent
// directory, and returns the paths written.
func (r *Result) Write(base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.IO("create output directory", err)
		}
	}
	paths := make([]string, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		path := base + a.Suffix
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return paths, errors.New(errors.PhaseIO, errors.KindIO).
				Path(path).
				Cause(err).
				Detail("write artifact").
				Build()
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Generate parses src as message name and emits every selected target.
// Any error aborts the whole run and no partial result is returned.
func (g *Generator) Generate(src, name string) (*Result, error) {
	emitters := make([]emit.Emitter, 0, len(g.targets))
	for _, t := range g.targets {
		newEmitter, ok := registry[t]
		if !ok {
			return nil, errors.UnknownTarget(errors.PhaseEmit, t)
		}
		emitters = append(emitters, newEmitter())
	}

	msg, err := schema.Parse(src, name, g.parserOpts...)
	if err != nil {
		return nil, err
	}

	log := g.log.With(zap.String("message", msg.Name))
	res := &Result{
		Message: msg,
		Layout:  layout.Calculate(msg),
		Natural: layout.NaturalLayout(msg),
	}
	log.Debug("layout calculated",
		zap.Uint32("size", res.Layout.Size),
		zap.String("format", res.Layout.Format()),
		zap.Int("constants", len(msg.Constants())))

	if res.Natural.Padded() && slices.Contains(g.targets, cheader.Target) {
		log.Warn("C aggregate is padded; use the generated decode/encode, not memcpy of the struct",
			zap.Uint32("sizeof", res.Natural.Size),
			zap.Uint32("packed", res.Layout.Size))
	}

	for _, e := range emitters {
		data, err := e.Emit(msg, res.Layout)
		if err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, emit.Artifact{Target: e.Target(), Suffix: e.Suffix(), Data: data})
		log.Debug("artifact emitted", zap.String("target", e.Target()), zap.Int("bytes", len(data)))
	}
	return res, nil
}

// GenerateFile reads a schema file. The message name is the file stem
// unless name is non-empty.
func (g *Generator) GenerateFile(path, name string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseIO, errors.KindIO).
			Path(path).
			Cause(err).
			Detail("read schema").
			Build()
	}
	if name == "" {
		name = schema.NameFromPath(path)
	}
	return g.Generate(string(src), name)
}
