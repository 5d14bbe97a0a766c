package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRange marks a topic range spec that cannot be parsed.
var ErrInvalidRange = errors.New("invalid range")

// Range is an inclusive span of question ids.
type Range struct {
	Start int
	End   int
}

// Contains reports whether id lies in the range.
func (r Range) Contains(id int) bool {
	return r.Start <= id && id <= r.End
}

// Within reports whether r lies entirely inside outer.
func (r Range) Within(outer Range) bool {
	return outer.Start <= r.Start && r.End <= outer.End
}

// Overlaps reports whether the two ranges share at least one id.
func (r Range) Overlaps(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Len returns the number of ids covered by the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// String renders the range in topic spec form.
func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseRange parses a topic range spec: a single id ("3") or an inclusive
// hyphenated pair ("1-2").
func ParseRange(spec string) (Range, error) {
	text := strings.TrimSpace(spec)
	if text == "" {
		return Range{}, fmt.Errorf("%w: empty spec", ErrInvalidRange)
	}
	low, high, found := strings.Cut(text, "-")
	if !found {
		value, err := strconv.Atoi(text)
		if err != nil {
			return Range{}, fmt.Errorf("%w %q: not a number", ErrInvalidRange, spec)
		}
		return Range{Start: value, End: value}, nil
	}
	start, err := strconv.Atoi(strings.TrimSpace(low))
	if err != nil {
		return Range{}, fmt.Errorf("%w %q: bad start", ErrInvalidRange, spec)
	}
	end, err := strconv.Atoi(strings.TrimSpace(high))
	if err != nil {
		return Range{}, fmt.Errorf("%w %q: bad end", ErrInvalidRange, spec)
	}
	if start > end {
		return Range{}, fmt.Errorf("%w %q: start exceeds end", ErrInvalidRange, spec)
	}
	return Range{Start: start, End: end}, nil
}

// MarshalJSON encodes the range as [start, end].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Start, r.End})
}

// UnmarshalJSON decodes a [start, end] pair.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	return r.fromPair(pair)
}

// UnmarshalYAML decodes a [start, end] sequence.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	return r.fromPair(pair)
}

func (r *Range) fromPair(pair []int) error {
	if len(pair) != 2 {
		return fmt.Errorf("range: expected [start, end], got %d values", len(pair))
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}
