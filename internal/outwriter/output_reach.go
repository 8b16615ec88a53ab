package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// PrintReachEstimate writes a reachability estimate in the configured output mode.
func PrintReachEstimate(estimate *schema.ReachEstimate, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, estimate)
		}, "Saved reach estimate")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"level", "dimensions", "min_weeks", "max_weeks", "confidence"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					schema.GetLevelLabel(estimate.Level),
					joinDimensions(estimate.Dimensions),
					fmt.Sprintf("%.1f", estimate.Window.MinWeeks),
					fmt.Sprintf("%.1f", estimate.Window.MaxWeeks),
					fmt.Sprintf("%.2f", estimate.Confidence),
				})
			})
		}, "Saved reach estimate")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReachText(w, estimate, cfg, duration)
		}, "Saved reach estimate")
	}
}

func writeReachText(w io.Writer, estimate *schema.ReachEstimate, cfg *contract.Config, duration time.Duration) error {
	header := "Reachability estimate"
	if cfg.UseEmojis {
		header = "🗓️ " + header
	}
	if _, err := fmt.Fprintf(w, "%s (config %s)\n\n", header, cfg.ConfigVersion); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Level: %s\n", schema.GetLevelLabel(estimate.Level)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Dimensions: %s\n", joinDimensions(estimate.Dimensions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Window: %.1f-%.1f weeks\n", estimate.Window.MinWeeks, estimate.Window.MaxWeeks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Confidence: %.2f\n", estimate.Confidence); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nAssumptions:"); err != nil {
		return err
	}
	for _, a := range estimate.Assumptions {
		if _, err := fmt.Fprintf(w, "  - %s\n", a); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nEstimated in %v\n", duration.Round(time.Millisecond))
	return err
}

// PrintChangeBudget writes the change budget for an enhancement level.
// When dims is non-empty, only the requested dimensions are listed.
func PrintChangeBudget(budget *schema.ChangeBudget, dims []schema.ChangeDimension, cfg *contract.Config) error {
	rows := budgetRows(budget, dims)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, budget)
		}, "Saved change budget")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"level", "dimension", "allowed"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				level := schema.GetLevelLabel(budget.Level)
				for _, row := range rows {
					if err := cw.Write([]string{level, row[0], row[1]}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Saved change budget")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBudgetText(w, budget, rows, cfg)
		}, "Saved change budget")
	}
}

func writeBudgetText(w io.Writer, budget *schema.ChangeBudget, rows [][]string, cfg *contract.Config) error {
	header := "Change budget"
	if cfg.UseEmojis {
		header = "🎚️ " + header
	}
	if _, err := fmt.Fprintf(w, "%s, level %s\n\n", header, schema.GetLevelLabel(budget.Level)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dimension", "Allowed"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// budgetRows flattens the budget struct into dimension/allowance pairs,
// filtered to dims when a filter is given.
func budgetRows(budget *schema.ChangeBudget, dims []schema.ChangeDimension) [][]string {
	allowed := map[schema.ChangeDimension]string{
		schema.DimHair:        budget.Hair,
		schema.DimSkin:        budget.Skin,
		schema.DimGrooming:    budget.Grooming,
		schema.DimComposition: budget.Composition,
		schema.DimPosture:     budget.Posture,
	}
	order := []schema.ChangeDimension{
		schema.DimHair,
		schema.DimSkin,
		schema.DimGrooming,
		schema.DimComposition,
		schema.DimPosture,
	}

	var filter map[schema.ChangeDimension]struct{}
	if len(dims) > 0 {
		filter = make(map[schema.ChangeDimension]struct{}, len(dims))
		for _, d := range dims {
			filter[d] = struct{}{}
		}
	}

	var rows [][]string
	for _, dim := range order {
		if filter != nil {
			if _, ok := filter[dim]; !ok {
				continue
			}
		}
		rows = append(rows, []string{string(dim), allowed[dim]})
	}
	return rows
}
