package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/condlab/runcond/tracing"
)

var verdictsCmd = &cobra.Command{
	Use:   "verdicts",
	Short: "List recorded condition evaluations in tick order.",
	Run: func(cmd *cobra.Command, _ []string) {
		dbPath := dbPathFromFlags(cmd)

		unit, _ := cmd.Flags().GetString("unit")
		condition, _ := cmd.Flags().GetString("condition")
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		reader := tracing.NewDataRecorderTraceReader(dbPath)
		defer closeReader(reader)

		evals := reader.ListEvals(tracing.EvalQuery{
			Unit:      unit,
			Condition: condition,
			Kind:      kind,
			Limit:     limit,
			Offset:    offset,
		})

		fmt.Printf("%-8s %-12s %-16s %-24s %-12s %-8s %-5s %s\n",
			"TICK", "NOW", "UNIT", "CONDITION", "KIND", "VERDICT",
			"MEMO", "ERR")

		for _, e := range evals {
			fmt.Printf("%-8d %-12.6f %-16s %-24s %-12s %-8s %-5t %s\n",
				e.TickSeq, e.Now, e.Unit, e.Condition, e.Kind, e.Verdict,
				e.Memoized, e.Err)
		}
	},
}

func closeReader(reader tracing.TraceReader) {
	if err := reader.Close(); err != nil {
		log.Fatalf("Error closing database: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(verdictsCmd)

	verdictsCmd.Flags().String("unit", "", "Only list verdicts of this unit")
	verdictsCmd.Flags().String("condition", "",
		"Only list verdicts of this condition")
	verdictsCmd.Flags().String("kind", "",
		"Only list verdicts of conditions of this kind")
	verdictsCmd.Flags().Int("limit", 0, "Maximum number of rows to list")
	verdictsCmd.Flags().Int("offset", 0, "Number of rows to skip")
}
