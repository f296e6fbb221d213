// Command decisio is the presentation shell around the decision engine:
// it evaluates decisions against a rubric, maintains the audit history,
// and renders analytics and exports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decisio/decisio/internal/analytics"
	"github.com/decisio/decisio/internal/config"
	"github.com/decisio/decisio/internal/decision"
	"github.com/decisio/decisio/internal/export"
	"github.com/decisio/decisio/internal/history"
	"github.com/decisio/decisio/internal/history/sqlstore"
	"github.com/decisio/decisio/internal/scenario"
	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

func main() {
	exitFn(run(os.Args, os.Stdout, os.Stderr))
}

var exitFn = os.Exit

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	switch args[1] {
	case "evaluate":
		return handleEvaluate(args[2:], stdout, stderr)
	case "revise":
		return handleRevise(args[2:], stdout, stderr)
	case "history":
		return handleHistory(args[2:], stdout, stderr)
	case "follow-up":
		return handleFollowUp(args[2:], stdout, stderr)
	case "delete":
		return handleDelete(args[2:], stdout, stderr)
	case "migrate":
		return handleMigrate(args[2:], stdout, stderr)
	case "analytics":
		return handleAnalytics(args[2:], stdout, stderr)
	case "export":
		return handleExport(args[2:], stdout, stderr)
	case "report":
		return handleReport(args[2:], stdout, stderr)
	case "templates":
		return handleTemplates(args[2:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage: decisio <command> [flags]

commands:
  evaluate   score a decision request and append it to history
  revise     copy a past decision into a new lineage version
  history    list recorded decisions
  follow-up  attach an actual outcome to a decision
  delete     remove records by title substring or missing id
  migrate    backfill record defaults and set the schema version
  analytics  aggregate history (metrics, accuracy, patterns, improvements)
  export     write history as CSV
  report     render one decision as a paginated text report
  templates  list available rubrics`)
}

// evaluateInput is the YAML shape of one evaluation request.
type evaluateInput struct {
	Title                   string             `yaml:"title"`
	Context                 string             `yaml:"context"`
	DecisionType            string             `yaml:"decision_type"`
	DecisionClass           string             `yaml:"decision_class"`
	Owner                   string             `yaml:"owner"`
	ResponsibilityConfirmed bool               `yaml:"responsibility_confirmed"`
	Stakeholders            []string           `yaml:"stakeholders"`
	ReviewDate              string             `yaml:"review_date"`
	Assumptions             []string           `yaml:"assumptions"`
	Unknowns                []string           `yaml:"unknowns"`
	AssumptionsNotes        string             `yaml:"assumptions_notes"`
	UnknownsNotes           string             `yaml:"unknowns_notes"`
	Scores                  map[string]float64 `yaml:"scores"`
	BestDelta               float64            `yaml:"best_delta"`
	ExpectedDelta           float64            `yaml:"expected_delta"`
	WorstDelta              float64            `yaml:"worst_delta"`
}

func handleEvaluate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	templateKey := fs.String("template", "go_no_go", "template key")
	inputPath := fs.String("input", "", "YAML evaluation request")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *inputPath == "" {
		fmt.Fprintln(stderr, "evaluate requires -input <file>")
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	rule, ok, err := lookupTemplate(cfg, *templateKey)
	if err != nil {
		fmt.Fprintf(stderr, "templates: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Fprintf(stderr, "unknown template %q\n", *templateKey)
		return 1
	}

	raw, err := os.ReadFile(*inputPath) // #nosec G304 -- operator-provided input path.
	if err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return 1
	}
	var in evaluateInput
	if err := yaml.Unmarshal(raw, &in); err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return 1
	}

	rec, err := decision.Evaluate(rule, decision.Request{
		Title:                   in.Title,
		Context:                 in.Context,
		DecisionType:            in.DecisionType,
		DecisionClass:           in.DecisionClass,
		Owner:                   in.Owner,
		ResponsibilityConfirmed: in.ResponsibilityConfirmed,
		Stakeholders:            in.Stakeholders,
		ReviewDate:              in.ReviewDate,
		Assumptions:             in.Assumptions,
		Unknowns:                in.Unknowns,
		AssumptionsNotes:        in.AssumptionsNotes,
		UnknownsNotes:           in.UnknownsNotes,
		Scores:                  in.Scores,
		Deltas: scenario.Deltas{
			Best:     in.BestDelta,
			Expected: in.ExpectedDelta,
			Worst:    in.WorstDelta,
		},
	})
	if err != nil {
		fmt.Fprintf(stderr, "evaluate: %v\n", err)
		return 1
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	if err := store.Append(rec); err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "%s  %s\n", rec.DecisionID, rec.Title)
	fmt.Fprintf(stdout, "Final score: %g / 10  Outcome: %s  Confidence: %s\n", rec.FinalScore, rec.Outcome, rec.Confidence)
	fmt.Fprintf(stdout, "Readiness: %d%% (%s, min %d)\n", rec.ReadinessScore, rec.ReadinessStatus, rec.ReadinessMinRequired)
	for _, b := range rec.ReadinessBlockers {
		fmt.Fprintf(stdout, "  blocker: %s\n", b)
	}
	for _, issue := range rec.ReadinessIssues {
		fmt.Fprintf(stdout, "  issue: %s\n", issue)
	}
	return 0
}

func handleRevise(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("revise", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "revise requires <decision_id>")
		return 2
	}
	id := fs.Arg(0)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	records, err := store.Read(history.ReadAll)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	for _, rec := range records {
		if rec.DecisionID != id {
			continue
		}
		next := decision.Revise(rec)
		if err := store.Append(next); err != nil {
			fmt.Fprintf(stderr, "history: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s  version %d (parent %s)\n", next.DecisionID, next.Version, next.ParentID)
		return 0
	}
	fmt.Fprintf(stderr, "no record with id %s\n", id)
	return 1
}

func handleHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	limit := fs.Int("limit", 0, "max records (default from config)")
	jsonOut := fs.Bool("json", false, "print records as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	readLimit := *limit
	if readLimit == 0 {
		readLimit = cfg.History.ReadLimit
	}
	records, err := store.Read(readLimit)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return printJSON(enc, records, stderr)
	}
	for _, rec := range records {
		followUp := "-"
		if rec.FollowUp != nil {
			followUp = rec.FollowUp.Outcome
		}
		fmt.Fprintf(stdout, "%s  v%d  %-19s  %-24s  %.2f  %-22s  %s\n",
			rec.DecisionID, rec.Version, rec.TimestampUTC, rec.TemplateName, rec.FinalScore, rec.Outcome, followUp)
	}
	return 0
}

func handleFollowUp(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("follow-up", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	outcomeFlag := fs.String("outcome", "", "Success | Partial Success | Failure")
	notes := fs.String("notes", "", "what happened and why")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || *outcomeFlag == "" {
		fmt.Fprintln(stderr, "follow-up requires <decision_id> and -outcome")
		return 2
	}
	switch *outcomeFlag {
	case types.FollowUpSuccess, types.FollowUpPartial, types.FollowUpFailure:
	default:
		fmt.Fprintf(stderr, "outcome must be %q, %q, or %q\n", types.FollowUpSuccess, types.FollowUpPartial, types.FollowUpFailure)
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	found, err := store.UpdateFollowUp(fs.Arg(0), *outcomeFlag, strings.TrimSpace(*notes))
	if err != nil {
		fmt.Fprintf(stderr, "follow-up: %v\n", err)
		return 1
	}
	if !found {
		fmt.Fprintf(stderr, "no record with id %s\n", fs.Arg(0))
		return 1
	}
	fmt.Fprintln(stdout, "follow-up saved")
	return 0
}

func handleDelete(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	title := fs.String("title", "", "delete records whose title contains this text")
	legacy := fs.Bool("legacy", false, "delete records without a decision id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if (*title != "") == *legacy {
		fmt.Fprintln(stderr, "delete requires exactly one of -title or -legacy")
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	var deleted int
	if *legacy {
		deleted, err = store.DeleteLegacy()
	} else {
		deleted, err = store.DeleteByTitle(*title)
	}
	if err != nil {
		fmt.Fprintf(stderr, "delete: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "deleted %d record(s)\n", deleted)
	return 0
}

func handleMigrate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	target := fs.Int("target", types.SchemaVersion, "target schema version")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	report, err := store.Migrate(*target)
	if err != nil {
		// Migration failures are reported, never propagated as a crash.
		fmt.Fprintf(stderr, "migrate failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "total=%d updated=%d written=%d\n", report.Total, report.Updated, report.Written)
	return 0
}

func handleAnalytics(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analytics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	mode := fs.String("mode", "metrics", "metrics | accuracy | patterns | improvements | lineage")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	records, err := store.Read(history.ReadAll)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	switch *mode {
	case "metrics":
		return printJSON(enc, analytics.ComputeMetrics(records), stderr)
	case "accuracy":
		return printJSON(enc, analytics.ComputeAccuracyMetrics(records), stderr)
	case "patterns":
		return printJSON(enc, analytics.ComputePatternInsights(records), stderr)
	case "improvements":
		return printJSON(enc, analytics.ComputeTemplateImprovements(records), stderr)
	case "lineage":
		return printJSON(enc, analytics.GroupByParent(records), stderr)
	default:
		fmt.Fprintf(stderr, "unknown analytics mode %q\n", *mode)
		return 2
	}
}

func handleExport(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	records, err := store.Read(history.ReadAll)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out) // #nosec G304 -- operator-provided output path.
		if err != nil {
			fmt.Fprintf(stderr, "export: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteCSV(w, records); err != nil {
		fmt.Fprintf(stderr, "export: %v\n", err)
		return 1
	}
	return 0
}

func handleReport(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "report requires <decision_id>")
		return 2
	}
	id := fs.Arg(0)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	records, err := store.Read(history.ReadAll)
	if err != nil {
		fmt.Fprintf(stderr, "history: %v\n", err)
		return 1
	}
	for _, rec := range records {
		if rec.DecisionID != id {
			continue
		}
		w := stdout
		if *out != "" {
			f, err := os.Create(*out) // #nosec G304 -- operator-provided output path.
			if err != nil {
				fmt.Fprintf(stderr, "report: %v\n", err)
				return 1
			}
			defer f.Close()
			w = f
		}
		if err := export.WriteReport(w, rec, decision.NowUTC()); err != nil {
			fmt.Fprintf(stderr, "report: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(stderr, "no record with id %s\n", id)
	return 1
}

func handleTemplates(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", envOrDefault("DECISIO_CONFIG", ""), "config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "templates: %v\n", err)
		return 1
	}

	for _, key := range reg.Keys() {
		rule, _ := reg.Get(key)
		fmt.Fprintf(stdout, "%-16s %-28s dimensions=%d weight_sum=%.2f\n",
			key, rule.TemplateName, len(rule.Dimensions), rule.WeightSum())
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadRegistry(cfg config.Config) (*template.Registry, error) {
	custom, err := template.LoadCustom(cfg.Templates)
	if err != nil {
		return nil, err
	}
	return template.NewRegistry(custom), nil
}

func lookupTemplate(cfg config.Config, key string) (template.Rule, bool, error) {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return template.Rule{}, false, err
	}
	rule, ok := reg.Get(key)
	return rule, ok, nil
}

func openStore(cfg config.Config) (history.Store, error) {
	if cfg.History.Driver == "sqlite" {
		return sqlstore.Open(cfg.History.Path)
	}
	return history.NewFileStore(cfg.History.Path), nil
}

func printJSON(enc *json.Encoder, v any, stderr io.Writer) int {
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	return 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
