package schedule

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/models"
)

func printResult(result models.SolveResult) {
	fmt.Printf("Status: %s\n", result.Status)
	if result.Message != "" {
		fmt.Printf("  %s\n", result.Message)
	}

	if result.Status != constants.StatusOptimal && result.Status != constants.StatusSuboptimal && result.Status != constants.StatusTimeLimitReached {
		return
	}

	if len(result.Schedule) == 0 {
		fmt.Println("\nNo tasks were placed on the grid.")
	} else {
		fmt.Println("\nSchedule:")
		for _, entry := range result.Schedule {
			fmt.Printf("  %s -> %s  %-30s  p%d/d%d  [%s]\n",
				entry.StartTime.Format("Mon 15:04"),
				entry.EndTime.Format("15:04"),
				entry.Name, entry.Priority, entry.Difficulty, entry.Preference)
		}
	}

	if len(result.FilteredTasks) > 0 {
		fmt.Println("\nFiltered tasks (did not clear eligibility):")
		for _, fr := range result.FilteredTasks {
			fmt.Printf("  %-30s  %s: %s\n", fr.Name, fr.Reason, fr.Message)
		}
	}

	fmt.Printf("\nCompletion rate:      %.0f%%\n", result.CompletionRate*100)
	fmt.Printf("Raw leisure minutes:  %.0f\n", result.RawTotalLeisureMinutes)
	fmt.Printf("Weighted leisure:     %.2f\n", result.WeightedLeisureScore)
	fmt.Printf("Weighted stress:      %.2f\n", result.WeightedStressScore)
	fmt.Printf("Contiguous pairs:     %d\n", result.ContiguousLeisurePairs)
	fmt.Printf("Objective value:      %.2f\n", result.ObjectiveValue)
	fmt.Printf("Solve time:           %.3fs\n", result.SolveSeconds)
}
