package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"scorecard/internal/assessment"
	"scorecard/internal/taxonomy"
)

// CanonicalJSON returns deterministic JSON bytes for hashing and storage.
// Values are round-tripped through generic JSON so object keys come out sorted.
func CanonicalJSON(value interface{}) ([]byte, error) {
	normalized, err := normalizeJSON(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// FingerprintJSON returns a SHA-256 hex digest for the canonical JSON.
func FingerprintJSON(value interface{}) (string, error) {
	data, err := CanonicalJSON(value)
	if err != nil {
		return "", err
	}
	return fingerprintBytes(data), nil
}

// ExamSpec is the identity of an exam: its answer key and taxonomy.
type ExamSpec struct {
	AnswerKey assessment.AnswerKey `json:"answer_key"`
	Taxonomy  taxonomy.Taxonomy    `json:"taxonomy"`
}

// ExamKey fingerprints an exam so that scores for different papers never mix.
func ExamKey(spec ExamSpec) (string, error) {
	return FingerprintJSON(spec)
}

func fingerprintBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func normalizeJSON(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil, bool, float64, string:
		return v, nil
	case json.RawMessage:
		return decodeGeneric(v)
	case []byte:
		return decodeGeneric(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			norm, err := normalizeJSON(inner)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			norm, err := normalizeJSON(v[i])
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize json: %w", err)
		}
		return decodeGeneric(data)
	}
}

func decodeGeneric(data []byte) (interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("normalize json: %w", err)
	}
	return decoded, nil
}
