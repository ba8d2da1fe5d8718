package ir

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Many is the unbounded upper bound, serialised as "*".
const Many = -1

// Multiplicity is {lower: int, upper: int | "*"}.
type Multiplicity struct {
	Lower int
	Upper int
}

func (m Multiplicity) String() string {
	if m.Lower == m.Upper {
		return strconv.Itoa(m.Lower)
	}
	return strconv.Itoa(m.Lower) + ".." + m.upperText()
}

func (m Multiplicity) upperText() string {
	if m.Upper == Many {
		return "*"
	}
	return strconv.Itoa(m.Upper)
}

func (m Multiplicity) upperValue() any {
	if m.Upper == Many {
		return "*"
	}
	return m.Upper
}

type multiplicityWire struct {
	Lower int `json:"lower" yaml:"lower" msgpack:"lower"`
	Upper any `json:"upper" yaml:"upper" msgpack:"upper"`
}

func (m Multiplicity) wire() multiplicityWire {
	return multiplicityWire{Lower: m.Lower, Upper: m.upperValue()}
}

func parseUpper(v any) (int, error) {
	switch u := v.(type) {
	case string:
		if u == "*" {
			return Many, nil
		}
		n, err := strconv.Atoi(u)
		if err != nil {
			return 0, fmt.Errorf("invalid multiplicity upper bound %q: %w", u, err)
		}
		return n, nil
	case float64:
		return int(u), nil
	case int:
		return u, nil
	case int8:
		return int(u), nil
	case int16:
		return int(u), nil
	case int32:
		return int(u), nil
	case int64:
		return int(u), nil
	case uint8:
		return int(u), nil
	case uint16:
		return int(u), nil
	case uint32:
		return int(u), nil
	case uint64:
		return int(u), nil // #nosec G115 -- multiplicities are small
	}
	return 0, fmt.Errorf("invalid multiplicity upper bound %v", v)
}

func (m Multiplicity) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

func (m *Multiplicity) UnmarshalJSON(data []byte) error {
	var w multiplicityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	up, err := parseUpper(w.Upper)
	if err != nil {
		return err
	}
	m.Lower, m.Upper = w.Lower, up
	return nil
}

func (m Multiplicity) MarshalYAML() (any, error) {
	return m.wire(), nil
}

func (m *Multiplicity) UnmarshalYAML(node *yaml.Node) error {
	var w multiplicityWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	up, err := parseUpper(w.Upper)
	if err != nil {
		return err
	}
	m.Lower, m.Upper = w.Lower, up
	return nil
}

var (
	_ msgpack.CustomEncoder = (*Multiplicity)(nil)
	_ msgpack.CustomDecoder = (*Multiplicity)(nil)
)

func (m *Multiplicity) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(m.wire())
}

func (m *Multiplicity) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w multiplicityWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	up, err := parseUpper(w.Upper)
	if err != nil {
		return err
	}
	m.Lower, m.Upper = w.Lower, up
	return nil
}
