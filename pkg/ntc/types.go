package ntc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type identifies a thermistor part.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeNTCG163JFT103FT1S
	TypeNTCG164JF103FT1S
	TypeNTCG163JF103FT1S
	TypeCustom
)

var typeNames = map[Type]string{
	TypeUnknown:           "Unknown",
	TypeNTCG163JFT103FT1S: "NTCG163JFT103FT1S",
	TypeNTCG164JF103FT1S:  "NTCG164JF103FT1S",
	TypeNTCG163JF103FT1S:  "NTCG163JF103FT1S",
	TypeCustom:            "Custom",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// ParseType resolves a part name, case-insensitively.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown thermistor type %q", s)
}

func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Method selects how resistance is converted to temperature.
type Method uint8

const (
	// MethodLookupTable interpolates the part's table and falls back to the Beta equation.
	MethodLookupTable Method = iota
	// MethodMathematical uses the Beta equation.
	MethodMathematical
	// MethodAuto currently behaves like MethodMathematical.
	MethodAuto
)

var methodNames = map[Method]string{
	MethodLookupTable:  "lookup_table",
	MethodMathematical: "mathematical",
	MethodAuto:         "auto",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// ParseMethod resolves a method name such as "auto" or "lookup_table".
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return MethodAuto, fmt.Errorf("unknown conversion method %q", s)
}

func (m Method) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
