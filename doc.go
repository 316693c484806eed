// Package msgc compiles fixed-size binary message schemas into matching
// C and Python definitions.
//
// A schema is plain text, one declaration per line:
//
//	int32   id
//	float32 value
//	uint8   flag = 1
//
// Two tokens declare a storage field. Four tokens with "=" in third place
// declare a constant, which takes no space on the wire. Blank lines are
// ignored; anything else is rejected.
//
// # Architecture Overview
//
//	msgc/              Generator facade: parse, lay out, emit
//	├── types/         Closed table of primitive types
//	├── schema/        Schema parser and message model
//	├── layout/        Packed wire layout and aligned C layout
//	├── emit/          Emitter interface and text writer
//	│   ├── cheader/   C header with decode/encode
//	│   ├── pymodule/  Python dataclass with struct descriptor
//	│   ├── wasmmod/   WebAssembly accessor module
//	│   └── manifest/  JSON layout manifest
//	├── record/        Go reference codec
//	├── verify/        Runs the wasm artifact under wazero
//	├── config/        YAML/TOML project files
//	├── errors/        Structured errors
//	└── cmd/msgc/      Command line tool
//
// # Quick Start
//
//	g := msgc.New(msgc.WithTargets("c", "python"))
//	res, err := g.Generate(src, "Reading")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(res.Artifact("c").Data)
//
// # Wire Format
//
// Storage fields are packed back to back in declaration order with no
// padding, little-endian. The packed size is the sum of the field widths.
// Every artifact for a schema agrees on every offset.
//
// # Error Handling
//
// Generation stops at the first error and produces no artifacts. Errors
// are *errors.Error values carrying a phase, a kind and the source line:
//
//	if errors.Is(err, errors.ErrUnknownType) { ... }
package msgc
