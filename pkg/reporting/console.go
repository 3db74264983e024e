package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
	"github.com/ducminhle1904/evosvm/pkg/validation"
)

// maxSupportVectorRows caps the support-vector table on the console
const maxSupportVectorRows = 20

// DefaultConsoleReporter prints tables to a writer, stdout by default
type DefaultConsoleReporter struct {
	out io.Writer
}

// NewDefaultConsoleReporter creates a console reporter writing to stdout
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: os.Stdout}
}

// NewConsoleReporter creates a console reporter writing to w
func NewConsoleReporter(w io.Writer) *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: w}
}

func (r *DefaultConsoleReporter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

// OutputRun prints the run summary, the evaluation and the leading support vectors
func (r *DefaultConsoleReporter) OutputRun(run *storage.RunRecord) {
	r.printSummary(run)
	if run.Evaluation != nil {
		r.printEvaluation(run)
	}
	if run.Model != nil {
		r.printSupportVectors(run)
	}
}

func (r *DefaultConsoleReporter) printSummary(run *storage.RunRecord) {
	t := r.newTable("TRAINING RUN")

	t.AppendRows([]table.Row{
		{"Run ID", run.ID},
		{"Dataset", run.Dataset},
		{"Seed", run.Seed},
		{"C / Gamma", fmt.Sprintf("%g / %g", run.SVM.C, run.SVM.Gamma)},
		{"Population", run.Optimization.PopulationSize},
		{"Generations", run.Optimization.MaxGenerations},
	})

	if run.Model != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Best Fitness", fmt.Sprintf("%.6f", run.Model.Fitness)},
			{"Bias", fmt.Sprintf("%.6f", run.Model.Bias)},
			{"Margin", fmt.Sprintf("%.6f", run.Model.Margin)},
			{"Support Vectors", fmt.Sprintf("%d / %d", len(run.Model.SupportVectors), len(run.Model.Alphas))},
			{"Sum alpha*y", fmt.Sprintf("%.3e", run.Model.SumAlphaY)},
		})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"Duration", run.Duration.Round(time.Millisecond).String()})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, WidthMax: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 40, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

func (r *DefaultConsoleReporter) printEvaluation(run *storage.RunRecord) {
	result := run.Evaluation
	t := r.newTable(fmt.Sprintf("EVALUATION (%s)", strings.ToUpper(string(result.Mode))))

	t.AppendHeader(table.Row{"", "Actual +1", "Actual -1"})
	t.AppendRows([]table.Row{
		{"Predicted +1", result.Confusion.TruePositives, result.Confusion.FalsePositives},
		{"Predicted -1", result.Confusion.FalseNegatives, result.Confusion.TrueNegatives},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Precision", percent(result.Metrics.Precision), ""},
		{"Recall", percent(result.Metrics.Recall), ""},
		{"Specificity", percent(result.Metrics.Specificity), ""},
		{"Accuracy", percent(result.Metrics.Accuracy), ""},
	})
	if result.Skipped > 0 {
		t.AppendFooter(table.Row{"Skipped", result.Skipped, ""})
	}

	t.Render()
	fmt.Fprintln(r.out)
}

func (r *DefaultConsoleReporter) printSupportVectors(run *storage.RunRecord) {
	model := run.Model
	t := r.newTable("SUPPORT VECTORS")
	t.AppendHeader(table.Row{"Index", "Alpha", "Instance Weight"})

	for n, index := range model.SupportVectors {
		if n == maxSupportVectorRows {
			t.AppendFooter(table.Row{"...", fmt.Sprintf("%d more", len(model.SupportVectors)-n), ""})
			break
		}
		t.AppendRow(table.Row{index, fmt.Sprintf("%.6f", model.Alphas[index]), fmt.Sprintf("%.6f", model.InstanceWeights[index])})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// OutputGrid prints grid-search results in the order given
func (r *DefaultConsoleReporter) OutputGrid(results []tuning.CellResult) {
	t := r.newTable("GRID SEARCH")
	t.AppendHeader(table.Row{"Rank", "C", "Gamma", "Accuracy", "Best Fitness", "SVs", "Duration"})

	for i, res := range results {
		if res.Err != nil {
			t.AppendRow(table.Row{i + 1, res.C, res.Gamma, "failed", res.Err.Error(), "", ""})
			continue
		}
		t.AppendRow(table.Row{
			i + 1, res.C, res.Gamma,
			percent(res.Accuracy()),
			fmt.Sprintf("%.6f", res.BestFitness),
			res.SupportVectors,
			res.Duration.Round(time.Millisecond).String(),
		})
	}

	t.Render()
	fmt.Fprintln(r.out)
}

// OutputRuns prints a listing of stored runs
func (r *DefaultConsoleReporter) OutputRuns(summaries []storage.RunSummary) {
	t := r.newTable("RUNS")
	t.AppendHeader(table.Row{"ID", "Created", "Dataset", "C", "Gamma", "Fitness", "SVs", "Accuracy"})

	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Dataset, s.C, s.Gamma,
			fmt.Sprintf("%.6f", s.BestFitness),
			s.SupportVectors,
			percent(s.Accuracy),
		})
	}
	if len(summaries) == 0 {
		t.AppendRow(table.Row{"no runs stored"})
	}

	t.Render()
}

// OutputCrossValidation prints per-fold accuracies and the consistency analysis
func (r *DefaultConsoleReporter) OutputCrossValidation(summary *validation.CrossValidationSummary) {
	t := r.newTable(fmt.Sprintf("CROSS-VALIDATION (%d FOLDS)", len(summary.Results)))
	t.AppendHeader(table.Row{"Fold", "Train Accuracy", "Test Accuracy", "Best Fitness", "SVs"})

	for _, res := range summary.Results {
		t.AppendRow(table.Row{
			res.Fold + 1,
			percent(res.Train.Metrics.Accuracy),
			percent(res.Test.Metrics.Accuracy),
			fmt.Sprintf("%.6f", res.BestFitness),
			res.SupportVectors,
		})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{
		"Mean",
		fmt.Sprintf("%s ± %s", percent(summary.AverageTrainAccuracy), percent(summary.TrainAccuracyStdDev)),
		fmt.Sprintf("%s ± %s", percent(summary.AverageTestAccuracy), percent(summary.TestAccuracyStdDev)),
		"", "",
	})
	t.AppendFooter(table.Row{"Degradation", fmt.Sprintf("%.1f%%", summary.AccuracyDegradation), summary.OverfittingRisk + " RISK", "", ""})

	t.Render()
	fmt.Fprintln(r.out)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// OutputConsole prints a run to stdout
func OutputConsole(run *storage.RunRecord) {
	NewDefaultConsoleReporter().OutputRun(run)
}
