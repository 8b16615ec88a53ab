package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// PrintRunHistory writes recorded scoring runs in the configured output mode.
func PrintRunHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Saved run history")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{
				"run_id", "started_at", "kind", "photo_hash", "config_version",
				"score10", "potential_min", "potential_max", "confidence",
				"photo_quality", "cache_hit",
			}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, run := range runs {
					rec := []string{
						strconv.FormatInt(run.RunID, 10),
						run.StartedAt.UTC().Format(time.RFC3339),
						run.Kind,
						run.PhotoHash,
						run.ConfigVersion,
						fmt.Sprintf("%.2f", run.Score10),
						fmt.Sprintf("%.2f", run.PotentialMin),
						fmt.Sprintf("%.2f", run.PotentialMax),
						fmt.Sprintf("%.2f", run.Confidence),
						fmt.Sprintf("%.2f", run.PhotoQuality),
						strconv.FormatBool(run.CacheHit),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Saved run history")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryText(w, runs, cfg)
		}, "Saved run history")
	}
}

func writeHistoryText(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	header := "Scoring runs"
	if cfg.UseEmojis {
		header = "🗂️ " + header
	}
	if _, err := fmt.Fprintf(w, "%s (%d)\n\n", header, len(runs)); err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Started", "Kind", "Photo", "Score", "Potential", "Conf", "Cached"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		cached := ""
		if run.CacheHit {
			cached = "yes"
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Kind,
			contract.TruncateLabel(run.PhotoHash, 15),
			fmt.Sprintf("%.2f", run.Score10),
			fmt.Sprintf("%.2f-%.2f", run.PotentialMin, run.PotentialMax),
			fmt.Sprintf("%.2f", run.Confidence),
			cached,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
