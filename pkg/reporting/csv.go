package reporting

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteHistoryCSV writes one row per generation. An .xlsx path writes the full workbook instead.
func (r *DefaultCSVReporter) WriteHistoryCSV(run *storage.RunRecord, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteRunXLSX(run, path)
	}

	rows := make([][]string, 0, len(run.History))
	for _, g := range run.History {
		rows = append(rows, []string{
			strconv.Itoa(g.Generation),
			formatFloat(g.BestFitness),
			formatFloat(g.AverageFitness),
			formatFloat(g.WorstFitness),
			formatFloat(g.FitnessStdDev),
			strconv.Itoa(g.Repairs),
			strconv.Itoa(g.UnconvergedRepairs),
			formatFloat(g.MeanRepairIterations),
			strconv.FormatInt(g.Duration.Microseconds(), 10),
		})
	}

	return writeCSV(path, []string{
		"Generation", "Best_Fitness", "Average_Fitness", "Worst_Fitness", "Fitness_StdDev",
		"Repairs", "Unconverged_Repairs", "Mean_Repair_Iterations", "Duration_us",
	}, rows)
}

// WriteGridCSV writes grid-search results in the order given
func (r *DefaultCSVReporter) WriteGridCSV(results []tuning.CellResult, path string) error {
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(res.Index),
			formatFloat(res.C),
			formatFloat(res.Gamma),
			strconv.FormatInt(res.Seed, 10),
			formatFloat(res.Accuracy()),
			formatFloat(res.BestFitness),
			strconv.Itoa(res.SupportVectors),
			status,
		})
	}

	return writeCSV(path, []string{
		"Rank", "Cell", "C", "Gamma", "Seed", "Accuracy", "Best_Fitness", "Support_Vectors", "Status",
	}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
