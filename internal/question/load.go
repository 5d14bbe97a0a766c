package question

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

// LoadBank reads, parses, and validates a question bank file.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read question bank: %w", err)
	}
	bank, err := ParseBank(data, filepath.Ext(path))
	if err != nil {
		return Bank{}, err
	}
	return NormalizeBank(bank)
}

// ParseBank decodes a bank without validating it. The extension selects the
// format; anything other than .json is read as YAML.
func ParseBank(data []byte, ext string) (Bank, error) {
	var (
		questions []Question
		err       error
	)
	if strings.EqualFold(ext, ".json") {
		questions, err = parseJSONBank(data)
	} else {
		questions, err = parseYAMLBank(data)
	}
	if err != nil {
		return Bank{}, err
	}
	return Bank{Questions: questions}, nil
}

func parseJSONBank(data []byte) ([]Question, error) {
	var questions []Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return questions, nil
}

func parseYAMLBank(data []byte) ([]Question, error) {
	var questions []Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}
