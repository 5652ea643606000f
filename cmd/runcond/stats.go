package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condlab/runcond/tracing"
)

type conditionStats struct {
	kind     string
	permits  uint64
	blocks   uint64
	errors   uint64
	memoized uint64
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize permits, blocks, and errors per condition.",
	Run: func(cmd *cobra.Command, _ []string) {
		dbPath := dbPathFromFlags(cmd)

		unit, _ := cmd.Flags().GetString("unit")

		reader := tracing.NewDataRecorderTraceReader(dbPath)
		defer closeReader(reader)

		evals := reader.ListEvals(tracing.EvalQuery{Unit: unit})
		statsByCondition := tallyEvals(evals)

		fmt.Printf("%-24s %-12s %-8s %-8s %-8s %-6s %s\n",
			"CONDITION", "KIND", "PERMITS", "BLOCKS", "ERRORS",
			"MEMO", "RATE")

		for _, name := range reader.ListConditions() {
			s, ok := statsByCondition[name]
			if !ok {
				continue
			}

			rate := 0.0
			total := s.permits + s.blocks + s.errors
			if total > 0 {
				rate = float64(s.permits) / float64(total)
			}

			fmt.Printf("%-24s %-12s %-8d %-8d %-8d %-6d %.3f\n",
				name, s.kind, s.permits, s.blocks, s.errors,
				s.memoized, rate)
		}

		decisions := reader.ListDecisions(tracing.DecisionQuery{Unit: unit})
		allowed := 0
		for _, d := range decisions {
			if d.Allowed {
				allowed++
			}
		}

		fmt.Printf("decisions: %d total, %d allowed\n",
			len(decisions), allowed)
	},
}

// tallyEvals counts verdicts per condition. Memoized replays go to a
// separate counter so a condition shared by many units counts once per
// tick, matching the live permit rate tracer.
func tallyEvals(evals []tracing.EvalEntry) map[string]*conditionStats {
	statsByCondition := make(map[string]*conditionStats)

	for _, e := range evals {
		s, ok := statsByCondition[e.Condition]
		if !ok {
			s = &conditionStats{kind: e.Kind}
			statsByCondition[e.Condition] = s
		}

		if e.Memoized {
			s.memoized++
			continue
		}

		switch {
		case e.Err != "":
			s.errors++
		case e.Verdict == "permit":
			s.permits++
		default:
			s.blocks++
		}
	}

	return statsByCondition
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("unit", "", "Only count verdicts of this unit")
}
