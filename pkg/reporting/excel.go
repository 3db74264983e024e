package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
)

// Sheet names of the run workbook
const (
	SummarySheet        = "Summary"
	SupportVectorsSheet = "Support Vectors"
	GenerationsSheet    = "Generations"
	GridSheet           = "Grid"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteRunXLSX writes the run workbook with summary, support-vector and generation sheets
func (r *DefaultExcelReporter) WriteRunXLSX(run *storage.RunRecord, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), SummarySheet)
	if _, err := fx.NewSheet(SupportVectorsSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(GenerationsSheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, SummarySheet, run, styles); err != nil {
		return err
	}
	if err := r.writeSupportVectorsSheet(fx, SupportVectorsSheet, run, styles); err != nil {
		return err
	}
	if err := r.writeGenerationsSheet(fx, GenerationsSheet, run, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// WriteGridXLSX writes grid-search results, one row per cell in the order given
func (r *DefaultExcelReporter) WriteGridXLSX(results []tuning.CellResult, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()
	fx.SetSheetName(fx.GetSheetName(0), GridSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	fx.SetColWidth(GridSheet, "A", "H", 14)
	writeHeader(fx, GridSheet, []string{"Rank", "Cell", "C", "Gamma", "Seed", "Accuracy", "Best Fitness", "Support Vectors"}, styles)

	for i, res := range results {
		row := i + 2
		values := []interface{}{i + 1, res.Index, res.C, res.Gamma, res.Seed, res.Accuracy(), res.BestFitness, res.SupportVectors}
		if res.Err != nil {
			values = []interface{}{i + 1, res.Index, res.C, res.Gamma, res.Seed, "failed", res.Err.Error(), ""}
		}
		writeRow(fx, GridSheet, row, values, styles.BaseStyle)
		if res.Err == nil {
			cell, _ := excelize.CoordinatesToCellName(6, row)
			fx.SetCellStyle(GridSheet, cell, cell, styles.PercentStyle)
		}
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Dark slate header with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	customNumFmt := "0.000000"
	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &customNumFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Border:       lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    10, // 0.00%
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{Border: lightBorder})
	if err != nil {
		return styles, err
	}

	styles.LabelStyle, err = fx.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   12,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, run *storage.RunRecord, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 40)

	type entry struct {
		label string
		value interface{}
		style int
	}
	section := func(title string) entry { return entry{label: title, style: -1} }

	entries := []entry{
		section("Run"),
		{"Run ID", run.ID, styles.BaseStyle},
		{"Created", run.CreatedAt.Format("2006-01-02 15:04:05 MST"), styles.BaseStyle},
		{"Dataset", run.Dataset, styles.BaseStyle},
		{"Seed", run.Seed, styles.BaseStyle},
		{"Duration", run.Duration.String(), styles.BaseStyle},
		section("Parameters"),
		{"C", run.SVM.C, styles.NumberStyle},
		{"Gamma", run.SVM.Gamma, styles.NumberStyle},
		{"Population Size", run.Optimization.PopulationSize, styles.BaseStyle},
		{"Max Generations", run.Optimization.MaxGenerations, styles.BaseStyle},
		{"Crossover Rate", run.Optimization.CrossoverRate, styles.PercentStyle},
		{"Mutation Rate", run.Optimization.MutationRate, styles.PercentStyle},
	}

	if run.Model != nil {
		entries = append(entries,
			section("Model"),
			entry{"Best Fitness", run.Model.Fitness, styles.NumberStyle},
			entry{"Bias", run.Model.Bias, styles.NumberStyle},
			entry{"Margin", run.Model.Margin, styles.NumberStyle},
			entry{"Support Vectors", len(run.Model.SupportVectors), styles.BaseStyle},
			entry{"Sum alpha*y", run.Model.SumAlphaY, styles.NumberStyle},
		)
	}

	if run.Evaluation != nil {
		ev := run.Evaluation
		entries = append(entries,
			section(fmt.Sprintf("Evaluation (%s)", ev.Mode)),
			entry{"True Positives", ev.Confusion.TruePositives, styles.BaseStyle},
			entry{"False Positives", ev.Confusion.FalsePositives, styles.BaseStyle},
			entry{"False Negatives", ev.Confusion.FalseNegatives, styles.BaseStyle},
			entry{"True Negatives", ev.Confusion.TrueNegatives, styles.BaseStyle},
			entry{"Precision", ev.Metrics.Precision, styles.PercentStyle},
			entry{"Recall", ev.Metrics.Recall, styles.PercentStyle},
			entry{"Specificity", ev.Metrics.Specificity, styles.PercentStyle},
			entry{"Accuracy", ev.Metrics.Accuracy, styles.PercentStyle},
		)
	}

	for i, e := range entries {
		row := i + 1
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)

		if e.style == -1 {
			fx.SetCellValue(sheet, labelCell, e.label)
			fx.SetCellStyle(sheet, labelCell, valueCell, styles.SummaryStyle)
			continue
		}

		fx.SetCellValue(sheet, labelCell, e.label)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.LabelStyle)
		if err := fx.SetCellValue(sheet, valueCell, e.value); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, valueCell, valueCell, e.style)
	}
	return nil
}

func (r *DefaultExcelReporter) writeSupportVectorsSheet(fx *excelize.File, sheet string, run *storage.RunRecord, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "D", 18)
	writeHeader(fx, sheet, []string{"Index", "Alpha", "Instance Weight", "Alpha Share"}, styles)

	if run.Model == nil {
		return nil
	}

	total := 0.0
	for _, index := range run.Model.SupportVectors {
		total += run.Model.Alphas[index]
	}

	for i, index := range run.Model.SupportVectors {
		row := i + 2
		alpha := run.Model.Alphas[index]
		share := 0.0
		if total > 0 {
			share = alpha / total
		}

		writeRow(fx, sheet, row, []interface{}{index, alpha, run.Model.InstanceWeights[index], share}, styles.NumberStyle)
		indexCell, _ := excelize.CoordinatesToCellName(1, row)
		shareCell, _ := excelize.CoordinatesToCellName(4, row)
		fx.SetCellStyle(sheet, indexCell, indexCell, styles.BaseStyle)
		fx.SetCellStyle(sheet, shareCell, shareCell, styles.PercentStyle)
	}
	return nil
}

func (r *DefaultExcelReporter) writeGenerationsSheet(fx *excelize.File, sheet string, run *storage.RunRecord, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "H", 16)
	writeHeader(fx, sheet, []string{
		"Generation", "Best", "Average", "Worst", "Std Dev", "Repairs", "Unconverged", "Duration (ms)",
	}, styles)

	for i, g := range run.History {
		row := i + 2
		writeRow(fx, sheet, row, []interface{}{
			g.Generation, g.BestFitness, g.AverageFitness, g.WorstFitness, g.FitnessStdDev,
			g.Repairs, g.UnconvergedRepairs, float64(g.Duration.Microseconds()) / 1000,
		}, styles.NumberStyle)

		first, _ := excelize.CoordinatesToCellName(1, row)
		fx.SetCellStyle(sheet, first, first, styles.BaseStyle)
		repairs, _ := excelize.CoordinatesToCellName(6, row)
		unconverged, _ := excelize.CoordinatesToCellName(7, row)
		fx.SetCellStyle(sheet, repairs, unconverged, styles.BaseStyle)
	}

	if len(run.History) > 0 {
		fx.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
	return nil
}

func writeHeader(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}
}

func writeRow(fx *excelize.File, sheet string, row int, values []interface{}, style int) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		fx.SetCellValue(sheet, cell, v)
		fx.SetCellStyle(sheet, cell, cell, style)
	}
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteRunXLSX writes the run workbook with the default reporter
func WriteRunXLSX(run *storage.RunRecord, path string) error {
	return NewDefaultExcelReporter().WriteRunXLSX(run, path)
}
