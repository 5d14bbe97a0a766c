package report

import (
	"fmt"

	"scorecard/internal/assessment"
)

// DefaultSectionColor is used for sections without a fixed colour.
const DefaultSectionColor = "#FF9800"

var sectionColors = map[string]string{
	"Physics":     "#4CAF50",
	"Mathematics": "#2196F3",
	"Chemistry":   "#F44336",
	"English":     "#9C27B0",
}

// SectionColor returns the chart colour for a section.
func SectionColor(name string) string {
	if color, ok := sectionColors[name]; ok {
		return color
	}
	return DefaultSectionColor
}

// Charts is the client-side chart payload.
type Charts struct {
	Overall   Donut        `json:"overall"`
	Sections  Bar          `json:"sections"`
	Topics    []TopicChart `json:"topics"`
	Strengths Donut        `json:"strengths"`
	Weak      Donut        `json:"weak"`
	Radar     Radar        `json:"radar"`
}

// Donut is a labelled series for a donut chart.
type Donut struct {
	Labels []string `json:"labels"`
	Series []int    `json:"series"`
}

// Bar is a labelled accuracy series for a bar chart.
type Bar struct {
	Labels []string  `json:"labels"`
	Series []float64 `json:"series"`
	Colors []string  `json:"colors"`
}

// TopicChart is the per-section topic accuracy chart.
type TopicChart struct {
	ID      string    `json:"id"`
	Section string    `json:"section"`
	Color   string    `json:"color"`
	Labels  []string  `json:"labels"`
	Series  []float64 `json:"series"`
}

// Radar compares section accuracy where strengths and weaknesses occur.
type Radar struct {
	Labels     []string  `json:"labels"`
	Strengths  []float64 `json:"strengths"`
	Weaknesses []float64 `json:"weaknesses"`
}

func buildCharts(model Model) Charts {
	charts := Charts{
		Overall: Donut{
			Labels: []string{"Correct", "Incorrect", "Skipped"},
			Series: []int{model.Summary.Correct, model.Summary.Incorrect, model.Summary.Skipped},
		},
		Sections: Bar{Labels: []string{}, Series: []float64{}, Colors: []string{}},
		Topics:   []TopicChart{},
		Radar:    Radar{Labels: []string{}, Strengths: []float64{}, Weaknesses: []float64{}},
	}
	for i, section := range model.Sections {
		charts.Sections.Labels = append(charts.Sections.Labels, section.Name)
		charts.Sections.Series = append(charts.Sections.Series, section.Stats.Accuracy)
		charts.Sections.Colors = append(charts.Sections.Colors, section.Color)

		topic := TopicChart{
			ID:      fmt.Sprintf("topicChart%d", i),
			Section: section.Name,
			Color:   section.Color,
			Labels:  []string{},
			Series:  []float64{},
		}
		hasStrength, hasWeak := false, false
		for _, t := range section.Topics {
			topic.Labels = append(topic.Labels, t.Name)
			topic.Series = append(topic.Series, t.Stats.Accuracy)
			hasStrength = hasStrength || t.Strength
			hasWeak = hasWeak || t.Weak
		}
		charts.Topics = append(charts.Topics, topic)

		charts.Radar.Labels = append(charts.Radar.Labels, section.Name)
		charts.Radar.Strengths = append(charts.Radar.Strengths, valueIf(hasStrength, section.Stats.Accuracy))
		charts.Radar.Weaknesses = append(charts.Radar.Weaknesses, valueIf(hasWeak, section.Stats.Accuracy))
	}
	charts.Strengths = countBySection(model.Strengths)
	charts.Weak = countBySection(model.Weak)
	return charts
}

func valueIf(ok bool, value float64) float64 {
	if ok {
		return value
	}
	return 0
}

// countBySection counts areas per section in first-seen order.
func countBySection(areas []assessment.Area) Donut {
	donut := Donut{Labels: []string{}, Series: []int{}}
	index := map[string]int{}
	var order []string
	for _, area := range areas {
		name := area.Section
		if _, ok := index[name]; !ok {
			index[name] = len(order)
			order = append(order, name)
			donut.Series = append(donut.Series, 0)
		}
		donut.Series[index[name]]++
	}
	for i, name := range order {
		donut.Labels = append(donut.Labels, fmt.Sprintf("%s (%d)", name, donut.Series[i]))
	}
	return donut
}
