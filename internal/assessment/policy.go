package assessment

// Thresholds configure weak and strength classification of topics.
type Thresholds struct {
	WeakSkipped      int     `json:"weak_skipped" yaml:"weak_skipped"`
	WeakAccuracy     float64 `json:"weak_accuracy" yaml:"weak_accuracy"`
	StrengthAccuracy float64 `json:"strength_accuracy" yaml:"strength_accuracy"`
}

// DefaultThresholds returns the stock classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{WeakSkipped: 2, WeakAccuracy: 50, StrengthAccuracy: 80}
}

// Weak reports whether stats mark a weak area.
func (t Thresholds) Weak(stats Stats) bool {
	return stats.Skipped >= t.WeakSkipped ||
		stats.Incorrect > stats.Correct ||
		stats.Accuracy < t.WeakAccuracy
}

// Strength reports whether stats mark a strength area.
func (t Thresholds) Strength(stats Stats) bool {
	return stats.Attempted > 0 && stats.Accuracy > t.StrengthAccuracy
}

// Area identifies one topic within its section.
type Area struct {
	Section string `json:"section"`
	Topic   string `json:"topic"`
	Stats   Stats  `json:"stats"`
}

// WeakAreas lists weak topics in taxonomy order.
func (b Breakdown) WeakAreas(t Thresholds) []Area {
	return b.areas(t.Weak)
}

// StrengthAreas lists strength topics in taxonomy order.
func (b Breakdown) StrengthAreas(t Thresholds) []Area {
	return b.areas(t.Strength)
}

func (b Breakdown) areas(match func(Stats) bool) []Area {
	var out []Area
	for _, section := range b.Sections {
		for _, topic := range section.Topics {
			if match(topic.Stats) {
				out = append(out, Area{Section: section.Name, Topic: topic.Name, Stats: topic.Stats})
			}
		}
	}
	return out
}
