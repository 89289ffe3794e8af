/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Convert commands. Converts single tables between CSV and Excel, or every table
of one format in a directory.
*/

package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kleascm/ila-classifier/pkg/loader"
	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert data files between CSV and Excel",
	}

	convertCmd.AddCommand(&cobra.Command{
		Use:   "csv-to-excel <input.csv> [output.xlsx]",
		Short: "Convert a CSV file to Excel",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  convertOne([]string{".csv"}, ".xlsx"),
	})
	convertCmd.AddCommand(&cobra.Command{
		Use:   "excel-to-csv <input.xlsx> [output.csv]",
		Short: "Convert an Excel file to CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  convertOne([]string{".xlsx", ".xlsm"}, ".csv"),
	})
	convertCmd.AddCommand(&cobra.Command{
		Use:   "batch-csv-to-excel [directory]",
		Short: "Convert every CSV file in a directory to Excel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convertBatch("CSV", []string{".csv"}, ".xlsx"),
	})
	convertCmd.AddCommand(&cobra.Command{
		Use:   "batch-excel-to-csv [directory]",
		Short: "Convert every Excel file in a directory to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convertBatch("Excel", []string{".xlsx", ".xlsm"}, ".csv"),
	})

	return convertCmd
}

// convertOne converts a single file whose extension is one of from
func convertOne(from []string, to string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		src := args[0]
		ext := strings.ToLower(filepath.Ext(src))
		if !slices.Contains(from, ext) {
			return fmt.Errorf("%s: expected a %s file", src, strings.Join(from, " or "))
		}

		dst := strings.TrimSuffix(src, filepath.Ext(src)) + to
		if len(args) > 1 {
			dst = args[1]
		}

		stats, err := loader.Convert(cmd.Context(), src, dst)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", src, err)
		}
		printConverted(cmd.OutOrStdout(), stats)
		return nil
	}
}

// convertBatch converts every file in a directory with one of the from extensions
func convertBatch(name string, from []string, to string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		out := cmd.OutOrStdout()

		var converted []loader.ConvertStats
		var failures []string
		for _, ext := range from {
			stats, err := loader.BatchConvert(cmd.Context(), dir, ext, to)
			converted = append(converted, stats...)
			if err != nil {
				failures = append(failures, err.Error())
			}
		}

		if len(converted) == 0 && len(failures) == 0 {
			fmt.Fprintf(out, "No %s files found in %s\n", name, dir)
			return nil
		}

		for i := range converted {
			printConverted(out, &converted[i])
		}
		if len(failures) > 0 {
			return fmt.Errorf("some files failed to convert:\n%s", strings.Join(failures, "\n"))
		}
		fmt.Fprintf(out, "Converted %d %s files\n", len(converted), name)
		return nil
	}
}

func printConverted(out io.Writer, stats *loader.ConvertStats) {
	fmt.Fprintf(out, "✓ Converted: %s → %s\n", stats.Source, stats.Target)
	fmt.Fprintf(out, "  Rows: %d, Columns: %d\n", stats.Rows, stats.Columns)
}
