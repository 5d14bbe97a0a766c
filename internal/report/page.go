package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"scorecard/internal/assessment"
	"scorecard/internal/insights"
)

// ApexChartsURL is the charting script loaded by the report page.
const ApexChartsURL = "https://cdn.jsdelivr.net/npm/apexcharts"

// htmlWriter keeps the first write error so components read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) rawf(format string, args ...any) {
	hw.raw(fmt.Sprintf(format, args...))
}

func (hw *htmlWriter) render(ctx context.Context, components ...templ.Component) {
	for _, component := range components {
		if hw.err != nil {
			return
		}
		hw.err = component.Render(ctx, hw.w)
	}
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		fn(hw)
		return hw.err
	})
}

// Page renders a complete student report.
func Page(m Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n<title>")
		hw.text(m.Title)
		hw.raw(" - ")
		hw.text(m.StudentName)
		hw.raw("</title>\n<style>")
		hw.raw(pageCSS)
		hw.raw("</style>\n</head>\n<body>\n<main class=\"report\">\n")
		hw.render(ctx,
			header(m),
			summaryCards(m),
			warnings(m.Warnings),
			overallSection(m),
			sectionTable(m.Sections),
			topicSections(m),
			strengthsSection(m),
			tipsSection(m.Tips),
			quotesSection(m.Quotes),
			chartScript(m.Charts),
		)
		hw.raw("</main>\n</body>\n</html>\n")
		return hw.err
	})
}

func header(m Model) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<header class=\"report-header\">\n<h1>")
		hw.text(m.Title)
		hw.raw("</h1>\n<p class=\"test-meta\">")
		hw.text(m.TestName)
		if m.TestDate != "" {
			hw.raw(" &middot; ")
			hw.text(m.TestDate)
		}
		hw.raw("</p>\n<div class=\"student\"><span class=\"student-name\">")
		hw.text(m.StudentName)
		hw.raw("</span>")
		if m.StudentID != "" {
			hw.raw(" <span class=\"student-id\">#")
			hw.text(m.StudentID)
			hw.raw("</span>")
		}
		if m.Rank != nil {
			hw.raw(" <span class=\"rank-badge\"")
			if m.Rank.BadgeColor != "" {
				hw.raw(" style=\"background-color: ")
				hw.text(m.Rank.BadgeColor)
				hw.raw("\"")
			}
			if m.Rank.BadgeDescription != "" {
				hw.raw(" title=\"")
				hw.text(m.Rank.BadgeDescription)
				hw.raw("\"")
			}
			hw.raw(">Rank: ")
			if m.Rank.BadgeText != "" {
				hw.text(m.Rank.BadgeText)
			} else {
				hw.rawf("%d", m.Rank.Rank)
			}
			hw.rawf(" (out of %d)</span>", m.Rank.Total)
		}
		hw.raw("</div>\n")
		if m.GeneratedAt != "" {
			hw.raw("<p class=\"generated\">Generated ")
			hw.text(m.GeneratedAt)
			hw.raw("</p>\n")
		}
		hw.raw("</header>\n")
	})
}

func summaryCards(m Model) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<section class=\"section\" id=\"section-summary\">\n<h2>Summary</h2>\n<p class=\"summary-text\">")
		hw.text(m.Message)
		hw.raw("</p>\n")
		if m.Note != "" {
			hw.raw("<p class=\"summary-text instructor-note\">")
			hw.text(m.Note)
			hw.raw("</p>\n")
		}
		hw.raw("<div class=\"cards\">\n")
		card(hw, "Overall score", formatPercent(m.Summary.Percentage)+"%")
		card(hw, "Correct", fmt.Sprintf("%d / %d", m.Summary.Correct, m.Summary.Total))
		card(hw, "Attempted", fmt.Sprintf("%d", m.Summary.Attempted))
		card(hw, "Skipped", fmt.Sprintf("%d", m.Summary.Skipped))
		if m.Highest != nil {
			card(hw, "Highest section", fmt.Sprintf("%s (%s%%)", m.Highest.Section, formatPercent(m.Highest.Accuracy)))
		}
		if m.Critical != nil {
			card(hw, "Most critical topic", fmt.Sprintf("%s: %s (%s%%)", m.Critical.Section, m.Critical.Topic, formatPercent(m.Critical.Stats.Accuracy)))
		}
		hw.raw("</div>\n</section>\n")
	})
}

func card(hw *htmlWriter, label, value string) {
	hw.raw("<div class=\"card\"><span class=\"card-label\">")
	hw.text(label)
	hw.raw("</span><span class=\"card-value\">")
	hw.text(value)
	hw.raw("</span></div>\n")
}

func warnings(items []string) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(items) == 0 {
			return
		}
		hw.raw("<section class=\"section warnings\">\n<ul>\n")
		for _, item := range items {
			hw.raw("<li>")
			hw.text(item)
			hw.raw("</li>\n")
		}
		hw.raw("</ul>\n</section>\n")
	})
}

func overallSection(m Model) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<section class=\"section\" id=\"section-overall\">\n<h2>Overall Performance</h2>\n")
		hw.raw("<div class=\"chart-row\">\n<div class=\"chart-container\" id=\"overallChart\"></div>\n")
		hw.raw("<div class=\"chart-container\" id=\"sectionChart\"></div>\n</div>\n</section>\n")
	})
}

func sectionTable(sections []SectionView) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<section class=\"section\" id=\"section-breakdown\">\n<h2>Section Breakdown</h2>\n")
		hw.raw("<table>\n<thead><tr><th>Section</th><th>Questions</th><th>Attempted</th><th>Correct</th><th>Incorrect</th><th>Skipped</th><th>Accuracy</th></tr></thead>\n<tbody>\n")
		for _, section := range sections {
			hw.raw("<tr><td><span class=\"swatch\" style=\"background-color: ")
			hw.text(section.Color)
			hw.raw("\"></span>")
			hw.text(section.Name)
			hw.raw("</td><td>")
			hw.text(section.Range)
			hw.raw("</td>")
			statsCells(hw, section.Stats)
			hw.raw("</tr>\n")
		}
		hw.raw("</tbody>\n</table>\n</section>\n")
	})
}

func statsCells(hw *htmlWriter, stats assessment.Stats) {
	hw.rawf("<td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s%%</td>",
		stats.Attempted, stats.Correct, stats.Incorrect, stats.Skipped, formatPercent(stats.Accuracy))
}

func topicSections(m Model) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<section class=\"section\" id=\"section-topics\">\n<h2>Topic Analysis</h2>\n")
		for i, section := range m.Sections {
			hw.raw("<div class=\"topic-block\">\n<h3>")
			hw.text(section.Name)
			hw.raw("</h3>\n")
			hw.rawf("<div class=\"chart-container\" id=\"topicChart%d\"></div>\n", i)
			if len(section.Topics) == 0 {
				hw.raw("<p class=\"muted\">No topics defined.</p>\n</div>\n")
				continue
			}
			hw.raw("<table>\n<thead><tr><th>Topic</th><th>Questions</th><th>Attempted</th><th>Correct</th><th>Incorrect</th><th>Skipped</th><th>Accuracy</th></tr></thead>\n<tbody>\n")
			for _, topic := range section.Topics {
				class := ""
				switch {
				case topic.Weak:
					class = " class=\"weak\""
				case topic.Strength:
					class = " class=\"strength\""
				}
				hw.rawf("<tr%s><td>", class)
				hw.text(topic.Name)
				hw.raw("</td><td>")
				hw.text(topic.Spec)
				hw.raw("</td>")
				statsCells(hw, topic.Stats)
				hw.raw("</tr>\n")
			}
			hw.raw("</tbody>\n</table>\n</div>\n")
		}
		hw.raw("</section>\n")
	})
}

func strengthsSection(m Model) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<section class=\"section\" id=\"section-strengths\">\n<h2>Strengths and Weaknesses</h2>\n<div class=\"chart-row\">\n")
		if len(m.Strengths) > 0 {
			hw.raw("<div class=\"chart-container strength-weakness-container\" id=\"strengthDonutChart\"></div>\n")
		} else {
			hw.raw("<div class=\"chart-container strength-weakness-container\"><p class=\"muted\">No strengths identified yet. Keep practising!</p></div>\n")
		}
		if len(m.Weak) > 0 {
			hw.raw("<div class=\"chart-container strength-weakness-container\" id=\"weakDonutChart\"></div>\n")
		} else {
			hw.raw("<div class=\"chart-container strength-weakness-container no-weakness-message\"><p class=\"no-weakness-text\">Congratulations! No weaknesses identified. Keep up the excellent work!</p></div>\n")
		}
		hw.raw("</div>\n<div class=\"chart-container\" id=\"radarChart\"></div>\n")
		areaList(hw, "Strength areas", "strength", m.Strengths)
		areaList(hw, "Weak areas", "weak", m.Weak)
		hw.raw("</section>\n")
	})
}

func areaList(hw *htmlWriter, title, class string, areas []assessment.Area) {
	if len(areas) == 0 {
		return
	}
	hw.raw("<h3>")
	hw.text(title)
	hw.rawf("</h3>\n<ul class=\"areas %s\">\n", class)
	for _, area := range areas {
		hw.raw("<li>")
		hw.text(area.Section + ": " + area.Topic)
		hw.rawf(" <span class=\"muted\">(%s%%)</span></li>\n", formatPercent(area.Stats.Accuracy))
	}
	hw.raw("</ul>\n")
}

func tipsSection(tips []insights.Tip) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(tips) == 0 {
			return
		}
		hw.raw("<section class=\"section\" id=\"section-tips\">\n<h2>Personalised Tips</h2>\n<ul class=\"tips\">\n")
		for _, tip := range tips {
			hw.raw("<li class=\"tip-")
			hw.text(tip.Category)
			hw.raw("\">")
			hw.text(tip.Text)
			hw.raw("</li>\n")
		}
		hw.raw("</ul>\n</section>\n")
	})
}

func quotesSection(quotes []string) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(quotes) == 0 {
			return
		}
		hw.raw("<section class=\"section\" id=\"section-quotes\">\n")
		for i, quote := range quotes {
			if i == 0 {
				hw.raw("<p class=\"quote featured-quote\">")
			} else {
				hw.raw("<p class=\"quote\">")
			}
			hw.text(quote)
			hw.raw("</p>\n")
		}
		hw.raw("</section>\n")
	})
}

func chartScript(charts Charts) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// json.Marshal escapes <, > and & so the payload cannot close the script tag.
		payload, err := json.Marshal(charts)
		if err != nil {
			return fmt.Errorf("encode chart data: %w", err)
		}
		hw := &htmlWriter{w: w}
		hw.rawf("<script src=\"%s\"></script>\n<script>\nconst reportCharts = ", ApexChartsURL)
		hw.raw(string(payload))
		hw.raw(";\n")
		hw.raw(chartJS)
		hw.raw("</script>\n")
		return hw.err
	})
}
