package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/scope"
)

var exportHeader = []any{
	"Woche", "Slug", "Titel", "Schwerpunkt", "Fokus",
	"Darf korrigieren", "Darf nicht korrigieren",
	"Max. Fehler", "Toleranz", "Grammatik", "Wortschatz",
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the correction rules of every week to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			f, err := buildWorkbook(reg)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("saving %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "wochenkontext.xlsx", "output file")
	return cmd
}

// buildWorkbook writes one sheet per course with one row per registered week.
func buildWorkbook(reg *curriculum.Registry) (*excelize.File, error) {
	f := excelize.NewFile()
	const defaultSheet = "Sheet1"

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for _, level := range reg.ListCourses() {
		sheet := string(level)
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			f.Close()
			return nil, err
		}

		for i, week := range reg.ListWeeks(sheet) {
			c, _ := reg.Resolve(sheet, week)
			row := exportRow(c)
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				f.Close()
				return nil, err
			}
		}
		if err := f.SetColWidth(sheet, "C", "K", 28); err != nil {
			f.Close()
			return nil, err
		}
	}

	if idx, err := f.GetSheetIndex(defaultSheet); err == nil && idx >= 0 && f.SheetCount > 1 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, err
		}
		f.SetActiveSheet(0)
	}
	return f, nil
}

func exportRow(c scope.WeekContext) []any {
	return []any{
		c.Week,
		curriculum.FormatWeekSlug(c.Week),
		c.Title,
		c.FocalPoint(),
		strings.Join(c.Correction.Focus, "; "),
		joinTopics(c.Correction.MayCorrect),
		joinTopics(c.Correction.MustNotCorrect),
		c.Correction.MaxIssues,
		string(c.Correction.Tolerance),
		joinTopics(c.Taught.Grammar.Topics()),
		joinTopics(c.Taught.Vocabulary.Topics()),
	}
}

func joinTopics[T ~string](ts []T) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
