package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes the sections object, keeping key order.
func (s *Sections) UnmarshalJSON(data []byte) error {
	var out Sections
	err := decodeOrderedObject(data, func(name string, decoder *json.Decoder) error {
		var body sectionBody
		if err := decoder.Decode(&body); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		out = append(out, Section{Name: strings.TrimSpace(name), Range: body.Range, Topics: body.Topics})
		return nil
	})
	if err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	*s = out
	return nil
}

// MarshalJSON encodes sections as an object in slice order.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, section.Name); err != nil {
			return nil, err
		}
		body, err := json.Marshal(sectionBody{Range: section.Range, Topics: section.Topics})
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the sections mapping, keeping key order.
func (s *Sections) UnmarshalYAML(node *yaml.Node) error {
	var out Sections
	err := decodeOrderedMapping(node, func(name string, value *yaml.Node) error {
		var body sectionBody
		if err := value.Decode(&body); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		out = append(out, Section{Name: strings.TrimSpace(name), Range: body.Range, Topics: body.Topics})
		return nil
	})
	if err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	*s = out
	return nil
}

// UnmarshalJSON decodes the topics object, keeping key order.
func (t *Topics) UnmarshalJSON(data []byte) error {
	var out Topics
	err := decodeOrderedObject(data, func(spec string, decoder *json.Decoder) error {
		var name string
		if err := decoder.Decode(&name); err != nil {
			return fmt.Errorf("topic %q: %w", spec, err)
		}
		out = append(out, Topic{Spec: strings.TrimSpace(spec), Name: strings.TrimSpace(name)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("topics: %w", err)
	}
	*t = out
	return nil
}

// MarshalJSON encodes topics as an object in slice order.
func (t Topics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, topic := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, topic.Spec); err != nil {
			return nil, err
		}
		name, err := json.Marshal(topic.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the topics mapping, keeping key order.
func (t *Topics) UnmarshalYAML(node *yaml.Node) error {
	var out Topics
	err := decodeOrderedMapping(node, func(spec string, value *yaml.Node) error {
		var name string
		if err := value.Decode(&name); err != nil {
			return fmt.Errorf("topic %q: %w", spec, err)
		}
		out = append(out, Topic{Spec: strings.TrimSpace(spec), Name: strings.TrimSpace(name)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("topics: %w", err)
	}
	*t = out
	return nil
}

// decodeOrderedObject walks a JSON object and hands each value to fn in key order.
func decodeOrderedObject(data []byte, fn func(key string, decoder *json.Decoder) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", token)
	}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", token)
		}
		if err := fn(key, decoder); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	return nil
}

// decodeOrderedMapping walks a YAML mapping and hands each value to fn in key order.
func decodeOrderedMapping(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: expected scalar key", key.Line)
		}
		if err := fn(key.Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	buf.WriteByte(':')
	return nil
}
