// Package manifest renders a JSON description of a message layout.
//
// The manifest lists every storage field with its type, offset, width and
// struct code, every constant with its literal, the packed size, the
// struct format descriptor and the aligned size of the C aggregate. It is
// meant for tooling that needs the layout without parsing generated code.
package manifest

import (
	"github.com/goccy/go-json"

	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

const (
	Target = "manifest"
	Suffix = ".json"

	ByteOrder = "little"
)

// Manifest is the JSON document.
type Manifest struct {
	Name        string     `json:"name"`
	ByteOrder   string     `json:"byte_order"`
	Format      string     `json:"format"`
	Fields      []Field    `json:"fields"`
	Constants   []Constant `json:"constants"`
	Size        uint32     `json:"size"`
	NaturalSize uint32     `json:"natural_size"`
}

type Field struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Code   string `json:"code"`
	Offset uint32 `json:"offset"`
	Width  uint32 `json:"width"`
	Line   int    `json:"line"`
}

type Constant struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}

// Emitter renders JSON layout manifests.
type Emitter struct{}

// New returns a manifest emitter.
func New() *Emitter {
	return &Emitter{}
}

func (*Emitter) Target() string { return Target }
func (*Emitter) Suffix() string { return Suffix }

// Build assembles the manifest without encoding it.
func Build(msg *schema.Message, info layout.Info) *Manifest {
	m := &Manifest{
		Name:        msg.Name,
		ByteOrder:   ByteOrder,
		Format:      info.Format(),
		Size:        info.Size,
		NaturalSize: layout.NaturalLayout(msg).Size,
		Fields:      make([]Field, 0, len(info.Slots)),
		Constants:   []Constant{},
	}
	for _, s := range info.Slots {
		m.Fields = append(m.Fields, Field{
			Name:   s.Field.Name,
			Type:   s.Field.Type.Name,
			Code:   string(s.Field.Type.WireCode),
			Offset: s.Offset,
			Width:  s.Width,
			Line:   s.Field.Line,
		})
	}
	for _, f := range msg.Constants() {
		m.Constants = append(m.Constants, Constant{
			Name:  f.Name,
			Type:  f.Type.Name,
			Value: f.Value,
			Line:  f.Line,
		})
	}
	return m
}

func (*Emitter) Emit(msg *schema.Message, info layout.Info) ([]byte, error) {
	out, err := json.MarshalIndent(Build(msg, info), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindIO, err, "encode manifest")
	}
	return append(out, '\n'), nil
}

// Decode parses a manifest produced by Emit.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindIO, err, "decode manifest")
	}
	return &m, nil
}
