package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/grid"
	shiftcodeService "github.com/cmlabs-hris/roster-backend-go/internal/service/shiftcode"
	"github.com/spf13/cobra"
)

var (
	classifyYear  int
	classifyMonth int
)

// classifyCmd prints the monthly attendance facts of an xlsx shift grid.
var classifyCmd = &cobra.Command{
	Use:   "classify <grid.xlsx>",
	Short: "Classify a monthly shift grid",
	Long: `Read the first sheet of an xlsx shift grid and print leave, overtime and
R-shift facts as JSON. The period is taken from the sheet title unless
--year and --month are given.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().IntVar(&classifyYear, "year", 0, "Grid year (default: read from sheet)")
	classifyCmd.Flags().IntVar(&classifyMonth, "month", 0, "Grid month 1-12 (default: read from sheet)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := tablesFile
	if path == "" {
		path = os.Getenv("TABLES_FILE")
	}
	tables, err := config.LoadTables(path)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open grid: %w", err)
	}
	defer file.Close()

	aggregator := shiftcodeService.NewAggregator(
		shiftcodeService.NewLeaveClassifier(),
		shiftcodeService.NewOvertimeClassifier(tables.Assessments),
		shiftcodeService.NewRShiftClassifier(),
	)
	facts := shiftcodeService.NewFactsService(aggregator, grid.NewParser())

	summary, err := facts.ImportGrid(cmd.Context(), file, classifyYear, classifyMonth)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), summary)
}
