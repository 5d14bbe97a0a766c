package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, and validates a taxonomy file.
func Load(path string) (Taxonomy, error) {
	taxonomy, err := LoadUnchecked(path)
	if err != nil {
		return Taxonomy{}, err
	}
	if err := Validate(taxonomy); err != nil {
		return Taxonomy{}, err
	}
	return taxonomy, nil
}

// LoadUnchecked reads and parses a taxonomy file without validating ranges.
func LoadUnchecked(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a taxonomy document. The extension selects the format;
// anything other than .json is read as YAML.
func Parse(data []byte, ext string) (Taxonomy, error) {
	if strings.EqualFold(ext, ".json") {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (Taxonomy, error) {
	var taxonomy Taxonomy
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&taxonomy); err != nil {
		return Taxonomy{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Taxonomy{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Taxonomy{}, fmt.Errorf("parse json: %w", err)
	}
	return taxonomy, nil
}

func parseYAML(data []byte) (Taxonomy, error) {
	var taxonomy Taxonomy
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&taxonomy); err != nil {
		return Taxonomy{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Taxonomy{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Taxonomy{}, fmt.Errorf("parse yaml: %w", err)
	}
	return taxonomy, nil
}
