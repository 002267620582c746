// Package main provides the CLI entry point for xlsxwriter-go.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/dataset"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/inspect"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/layout"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
	"go.alis.build/alog"
)

var (
	verbose bool

	outputPath    string
	pretty        bool
	mode          string
	sheetsDir     string
	printAreasDir string

	driver     string
	dsn        string
	sheetName  string
	chartKind  string
	chartTitle string
	categories int
	valueCols  []int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsxwriter",
		Short: "Write and inspect Excel workbooks",
		Long: `xlsxwriter-go writes XLSX workbooks with charts from YAML layouts or
SQL queries, and inspects existing packages as JSON.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				alog.SetLevel(alog.LevelDebug)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	buildCmd := &cobra.Command{
		Use:   "build [layout.yaml] [output.xlsx]",
		Short: "Build a workbook from a YAML layout",
		Args:  cobra.ExactArgs(2),
		RunE:  runBuild,
	}

	exportCmd := &cobra.Command{
		Use:   "export [query] [output.xlsx]",
		Short: "Export a SQL query result to a workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&driver, "driver", "sqlite3", "Database driver: "+strings.Join(dataset.Drivers, ", "))
	exportCmd.Flags().StringVar(&dsn, "dsn", "", "Data source name")
	exportCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: Sheet1)")
	exportCmd.Flags().StringVar(&chartKind, "chart", "", "Chart type to add below the data, e.g. column, line, pie")
	exportCmd.Flags().StringVar(&chartTitle, "chart-title", "", "Chart title")
	exportCmd.Flags().IntVar(&categories, "categories", 0, "Zero-based column used for chart categories (-1 for none)")
	exportCmd.Flags().IntSliceVar(&valueCols, "values", []int{1}, "Zero-based columns plotted as chart series")
	_ = exportCmd.MarkFlagRequired("dsn")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Extract structured data from a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	inspectCmd.Flags().StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	inspectCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	inspectCmd.Flags().StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")

	rootCmd.AddCommand(buildCmd, exportCmd, inspectCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	doc, err := layout.Load(args[0])
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	if err := layout.Build(cmd.Context(), doc, args[1]); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query, out := args[0], args[1]

	db, err := dataset.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	table, err := dataset.Query(ctx, db, query)
	if err != nil {
		return err
	}

	wb := xlsxwriter.New(out)
	ws, err := wb.AddWorksheet(sheetName)
	if err != nil {
		return err
	}
	if err := table.WriteSheet(ws, 0, 0); err != nil {
		return err
	}
	if chartKind != "" {
		if err := addExportChart(wb, ws, table); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	if err := wb.Close(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	alog.Infof(ctx, "exported %d rows to %s", len(table.Rows), out)
	return nil
}

func addExportChart(wb *xlsxwriter.Workbook, ws xlsxwriter.Worksheet, table *dataset.Table) error {
	kind, err := xlsxwriter.ParseChartKind(chartKind)
	if err != nil {
		return err
	}
	chart, err := wb.AddChart(kind)
	if err != nil {
		return err
	}
	if err := table.AddSeries(chart, ws.Name(), 0, 0, categories, valueCols...); err != nil {
		return err
	}
	if chartTitle != "" {
		if err := chart.SetTitle(chartTitle); err != nil {
			return err
		}
	}
	return ws.InsertChart(len(table.Rows)+2, 0, chart)
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	extractMode, err := inspect.ParseMode(mode)
	if err != nil {
		return err
	}

	wb, err := inspect.Extract(cmd.Context(), inputPath, inspect.Options{Mode: extractMode})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	jsonData, err := inspect.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" && printAreasDir == "" {
		fmt.Println(string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if printAreasDir != "" {
		if err := writePrintAreaFiles(wb, printAreasDir); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}

	alog.Debugf(cmd.Context(), "inspected %s in %s mode", inputPath, extractMode)
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, name := range wb.SheetNames {
		sheet := wb.Sheets[name]
		jsonData, err := inspect.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func writePrintAreaFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, view := range inspect.PrintAreaViews(wb) {
		counts[view.SheetName]++
		jsonData, err := inspect.PrintAreaViewToJSON(&view, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", view.SheetName, counts[view.SheetName]))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
