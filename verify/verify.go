// Package verify runs a generated accessor module under wazero and checks
// it against the Go reference codec.
package verify

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/record"
	"github.com/wippyai/msgc/schema"
)

const pageSize = 65536

// FieldResult is one getter that agreed with the reference codec.
type FieldResult struct {
	Value  record.Value
	Name   string
	Offset uint32
}

// Report summarizes a successful check.
type Report struct {
	Message string
	Fields  []FieldResult
	Size    uint32
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d bytes verified\n", r.Message, r.Size)
	for _, f := range r.Fields {
		fmt.Fprintf(&b, "  %-16s @%-4d %s\n", f.Name, f.Offset, f.Value)
	}
	return b.String()
}

// Module instantiates wasmBin and checks it against msg's layout using
// sample, which must hold at least info.Size bytes. Getters must return the
// values record.Decode reads from sample, setters followed by encode must
// reproduce sample exactly, and decode and encode must refuse short
// lengths.
func Module(ctx context.Context, msg *schema.Message, info layout.Info, wasmBin, sample []byte) (*Report, error) {
	if len(sample) < int(info.Size) {
		return nil, errors.ShortBuffer(errors.PhaseVerify, int(info.Size), len(sample))
	}
	sample = sample[:info.Size]
	want, err := record.Decode(info, sample)
	if err != nil {
		return nil, err
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCoreFeatures(api.CoreFeaturesV2))
	defer rt.Close(ctx)

	mod, err := rt.InstantiateWithConfig(ctx, wasmBin, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.New(errors.PhaseVerify, errors.KindLayoutMismatch).
			Path(msg.Name).
			Cause(err).
			Detail("instantiate accessor module").
			Build()
	}

	c := &checker{ctx: ctx, mod: mod, name: msg.Name}
	return c.run(info, sample, want)
}

type checker struct {
	ctx  context.Context
	mod  api.Module
	name string
}

func (c *checker) call(fn string, params ...uint64) (uint64, error) {
	f := c.mod.ExportedFunction(fn)
	if f == nil {
		return 0, errors.LayoutMismatch([]string{c.name, fn}, "export missing")
	}
	res, err := f.Call(c.ctx, params...)
	if err != nil {
		return 0, errors.New(errors.PhaseVerify, errors.KindLayoutMismatch).
			Path(c.name, fn).
			Cause(err).
			Detail("call failed").
			Build()
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

func (c *checker) run(info layout.Info, sample []byte, want record.Record) (*Report, error) {
	log := Logger().With(zap.String("message", c.name))

	size, err := c.call("size")
	if err != nil {
		return nil, err
	}
	if uint32(size) != info.Size {
		return nil, errors.LayoutMismatch([]string{c.name, "size"}, "module reports %d bytes, layout has %d", uint32(size), info.Size)
	}

	mem := c.mod.Memory()
	if mem == nil {
		return nil, errors.LayoutMismatch([]string{c.name, "memory"}, "export missing")
	}
	stride := (info.Size + 7) &^ 7
	if stride == 0 {
		stride = 8
	}
	src, dst, scratch, out := uint32(0), stride, 2*stride, 3*stride
	if need := 4 * stride; need > mem.Size() {
		if _, ok := mem.Grow((need - mem.Size() + pageSize - 1) / pageSize); !ok {
			return nil, errors.LayoutMismatch([]string{c.name, "memory"}, "cannot grow memory to %d bytes", need)
		}
	}
	mem.Write(src, sample)

	report := &Report{Message: c.name, Size: info.Size}
	for i, s := range info.Slots {
		got, err := c.call("get_"+s.Field.Name, uint64(src))
		if err != nil {
			return nil, err
		}
		got = record.FromBits(s.Field.Type, got).Bits
		if got != want[i].Bits {
			return nil, errors.LayoutMismatch([]string{c.name, s.Field.Name},
				"getter at offset %d returned %#x, reference decode %#x", s.Offset, got, want[i].Bits)
		}
		log.Debug("field agrees", zap.String("field", s.Field.Name), zap.Uint32("offset", s.Offset))
		report.Fields = append(report.Fields, FieldResult{Name: s.Field.Name, Offset: s.Offset, Value: want[i]})
	}

	if info.Size > 0 {
		if n, err := c.call("decode", uint64(dst), uint64(src), uint64(info.Size-1)); err != nil {
			return nil, err
		} else if uint32(n) != 0 {
			return nil, errors.LayoutMismatch([]string{c.name, "decode"}, "accepted %d bytes, need %d", info.Size-1, info.Size)
		}
		if n, err := c.call("encode", uint64(src), uint64(dst), uint64(info.Size-1)); err != nil {
			return nil, err
		} else if uint32(n) != 0 {
			return nil, errors.LayoutMismatch([]string{c.name, "encode"}, "accepted %d bytes, need %d", info.Size-1, info.Size)
		}
	}

	if n, err := c.call("decode", uint64(dst), uint64(src), uint64(info.Size)); err != nil {
		return nil, err
	} else if uint32(n) != info.Size {
		return nil, errors.LayoutMismatch([]string{c.name, "decode"}, "returned %d, want %d", uint32(n), info.Size)
	}
	if err := c.compare("decode", dst, sample); err != nil {
		return nil, err
	}

	for i, s := range info.Slots {
		if _, err := c.call("set_"+s.Field.Name, uint64(scratch), want[i].Bits); err != nil {
			return nil, err
		}
	}
	if n, err := c.call("encode", uint64(scratch), uint64(out), uint64(info.Size)); err != nil {
		return nil, err
	} else if uint32(n) != info.Size {
		return nil, errors.LayoutMismatch([]string{c.name, "encode"}, "returned %d, want %d", uint32(n), info.Size)
	}
	if err := c.compare("encode", out, sample); err != nil {
		return nil, err
	}

	log.Debug("module verified", zap.Uint32("size", info.Size), zap.Int("fields", len(info.Slots)))
	return report, nil
}

func (c *checker) compare(fn string, at uint32, want []byte) error {
	got, ok := c.mod.Memory().Read(at, uint32(len(want)))
	if !ok {
		return errors.LayoutMismatch([]string{c.name, fn}, "read %d bytes at %d out of range", len(want), at)
	}
	if !bytes.Equal(got, want) {
		return errors.LayoutMismatch([]string{c.name, fn}, "wrote %x, want %x", got, want)
	}
	return nil
}
