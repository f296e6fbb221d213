package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/decisio/decisio/pkg/types"
)

// linesPerPage is the fixed page height of the plain-text report.
const linesPerPage = 58

// pager accumulates report lines and inserts page breaks at a fixed
// height, carrying a running page number in the footer.
type pager struct {
	lines []string
	page  int
	count int
}

func newPager() *pager {
	return &pager{page: 1}
}

func (p *pager) add(line string) {
	if p.count == linesPerPage {
		p.lines = append(p.lines, "", fmt.Sprintf("--- page %d ---", p.page), "")
		p.page++
		p.count = 0
	}
	p.lines = append(p.lines, line)
	p.count++
}

func (p *pager) addAll(lines ...string) {
	for _, line := range lines {
		p.add(line)
	}
}

func (p *pager) section(title string) {
	p.addAll("", strings.ToUpper(title), strings.Repeat("-", len(title)))
}

func (p *pager) render(w io.Writer) error {
	out := strings.Join(p.lines, "\n") + "\n" + fmt.Sprintf("--- page %d ---", p.page) + "\n"
	_, err := io.WriteString(w, out)
	return err
}

// WriteReport renders one decision record as a paginated plain-text
// document: header and metadata, context, assumptions and unknowns with
// notes, the scenario table, per-dimension scores, explainability lists,
// and follow-up status.
func WriteReport(w io.Writer, rec types.Record, generatedAt string) error {
	p := newPager()

	p.addAll(
		"Decisio - Decision Report",
		"Generated: "+generatedAt,
		"",
		"Title: "+rec.Title,
		"Template: "+rec.TemplateName,
		"Timestamp (UTC): "+rec.TimestampUTC,
		fmt.Sprintf("Schema Version: %d", rec.SchemaVersion),
		"Engine Version: "+rec.EngineVersion,
		"Ruleset Version: "+rec.RulesetVersion,
		fmt.Sprintf("Final Score: %g / 10", rec.FinalScore),
		"Outcome: "+rec.Outcome,
		"Confidence: "+string(rec.Confidence),
		fmt.Sprintf("Readiness: %d%% (%s)", rec.ReadinessScore, rec.ReadinessStatus),
	)

	p.section("Context")
	addWrapped(p, orNA(rec.Context))

	p.section("Assumptions")
	addList(p, rec.Assumptions)
	if rec.AssumptionsNotes != "" {
		p.add("Notes:")
		addWrapped(p, rec.AssumptionsNotes)
	}

	p.section("Unknowns / Risks")
	addList(p, rec.Unknowns)
	if rec.UnknownsNotes != "" {
		p.add("Notes:")
		addWrapped(p, rec.UnknownsNotes)
	}

	p.section("Scenario Stress Test")
	if sst := rec.ScenarioStressTest; sst != nil && len(sst.Results) > 0 {
		p.add(fmt.Sprintf("%-10s %-8s %-24s %s", "Scenario", "Score", "Outcome", "Confidence"))
		for _, name := range []string{"best", "expected", "worst"} {
			res, ok := sst.Results[name]
			if !ok {
				continue
			}
			p.add(fmt.Sprintf("%-10s %-8g %-24s %s", name, res.Score, res.Outcome, res.Confidence))
		}
		p.add(fmt.Sprintf("Spread (best - worst): %g", sst.Spread))
	} else {
		p.add("No scenario data captured.")
	}

	p.section("Dimension Scores")
	if len(rec.Scores) == 0 {
		p.add("None captured.")
	}
	for _, dim := range sortedKeys(rec.Scores) {
		p.add(fmt.Sprintf("- %s: %g", dim, rec.Scores[dim]))
	}

	p.section("Explainability")
	if exp := rec.Explanation; exp != nil {
		p.add("Lowest dimensions:")
		for _, ds := range exp.LowestDimensions {
			p.add(fmt.Sprintf("- %s (%g)", ds.Dimension, ds.Score))
		}
		p.add("Highest dimensions:")
		for _, ds := range exp.HighestDimensions {
			p.add(fmt.Sprintf("- %s (%g)", ds.Dimension, ds.Score))
		}
		p.add("Top positive contributors:")
		for _, c := range exp.TopPositiveContributors {
			p.add(fmt.Sprintf("- %s (weighted %g)", c.Dimension, c.Weighted))
		}
		p.add("Top negative contributors:")
		for _, c := range exp.TopNegativeContributors {
			p.add(fmt.Sprintf("- %s (weighted %g)", c.Dimension, c.Weighted))
		}
	} else {
		p.add("None captured.")
	}

	p.section("Follow-Up")
	if fu := rec.FollowUp; fu != nil {
		p.add("Outcome: " + fu.Outcome)
		p.add("Updated: " + fu.UpdatedAtUTC)
		if fu.Notes != "" {
			p.add("Notes:")
			addWrapped(p, fu.Notes)
		}
	} else {
		p.add("Not recorded yet.")
	}

	return p.render(w)
}

const wrapWidth = 95

func addWrapped(p *pager, text string) {
	for _, line := range wrap(text, wrapWidth) {
		p.add(line)
	}
}

func addList(p *pager, items []string) {
	if len(items) == 0 {
		p.add("None captured.")
		return
	}
	for _, it := range items {
		for _, line := range wrap("- "+it, wrapWidth) {
			p.add(line)
		}
	}
}

func wrap(text string, width int) []string {
	words := strings.Fields(strings.ReplaceAll(text, "\n", " "))
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
