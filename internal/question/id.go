package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID is a question id that decodes from either a JSON number or a numeric string.
type ID int

// UnmarshalJSON accepts 7, 7.0 and "7".
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("question id is null")
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		parsed, err := ParseID(text)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	parsed, err := ParseID(number.String())
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// UnmarshalYAML accepts integer and string scalars.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: question id must be a scalar", node.Line)
	}
	parsed, err := ParseID(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*id = parsed
	return nil
}

// ParseID parses a decimal question id. Integral floats such as "7.0" are
// accepted.
func ParseID(text string) (ID, error) {
	trimmed := strings.TrimSpace(text)
	if value, err := strconv.Atoi(trimmed); err == nil {
		return ID(value), nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid question id %q", text)
	}
	return ID(int(value)), nil
}
