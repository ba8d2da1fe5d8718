package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"umlts/internal/ir"
)

// IR output formats.
const (
	IRFormatJSON    = "json"
	IRFormatYAML    = "yaml"
	IRFormatMsgpack = "msgpack"
)

// EmitIR writes the diagram in the requested format. msgpack is binary;
// callers should not send it to a terminal.
func EmitIR(w io.Writer, d *ir.Diagram, format string) error {
	if d == nil {
		d = ir.NewDiagram()
	}
	switch format {
	case IRFormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case IRFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case IRFormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown IR format %q (expected: json|yaml|msgpack)", format)
	}
}

// DecodeIR reads a diagram previously written by EmitIR.
func DecodeIR(r io.Reader, format string) (*ir.Diagram, error) {
	d := ir.NewDiagram()
	var err error
	switch format {
	case IRFormatJSON, "":
		err = json.NewDecoder(r).Decode(d)
	case IRFormatYAML:
		err = yaml.NewDecoder(r).Decode(d)
	case IRFormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(d)
	default:
		return nil, fmt.Errorf("unknown IR format %q (expected: json|yaml|msgpack)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s diagram: %w", format, err)
	}
	return d, nil
}

// IsBinaryIR reports formats that must not be written to a TTY.
func IsBinaryIR(format string) bool { return format == IRFormatMsgpack }
