package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// writeOverallBlock prints the calibrated headline result.
func writeOverallBlock(w io.Writer, overall schema.OverallResult, cfg *contract.Config, fmtFloat, fmtConf func(float64) string) error {
	label := scoreLabel(overall.CurrentScore10, cfg)
	if _, err := fmt.Fprintf(w, "Overall: %s/10 (%s)\n", fmtFloat(overall.CurrentScore10), label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Potential: %s-%s\n", fmtFloat(overall.Potential.Min), fmtFloat(overall.Potential.Max)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Confidence: %s\n", fmtConf(overall.Confidence)); err != nil {
		return err
	}
	if overall.Summary != "" {
		if _, err := fmt.Fprintf(w, "%s\n", overall.Summary); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writePillarTable renders the weighted pillar breakdown.
func writePillarTable(w io.Writer, pillars []schema.PillarScore, fmtConf func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Pillar", "Raw", "Weight", "Contrib", "Conf"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range pillars {
		data = append(data, []string{
			string(p.Key),
			fmt.Sprintf("%.3f", p.RawScore),
			fmt.Sprintf("%.2f", p.Weight),
			fmt.Sprintf("%.3f", p.Contribution),
			fmtConf(p.Confidence),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSignalsTable renders the ranked ratio signals.
func writeSignalsTable(w io.Writer, signals []schema.RatioSignal, cfg *contract.Config, fmtConf func(float64) string) error {
	if len(signals) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Signal", "Value", "Band", "Status", "Score", "Conf"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, e := range schema.EnrichSignals(signals) {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			contract.TruncateLabel(e.RatioSignal.Label, maxLabel),
			fmt.Sprintf("%.3f", e.Value),
			formatBand(e.Band),
			e.Label,
			fmt.Sprintf("%.3f", e.Score),
			fmtConf(e.Confidence),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writePostureTable renders bucketed posture signals.
func writePostureTable(w io.Writer, posture []schema.PostureSignal) error {
	if len(posture) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Posture", "Angle", "Severity", "Score"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range posture {
		data = append(data, []string{
			p.Label,
			fmt.Sprintf("%.1f°", p.AngleDeg),
			string(p.Severity),
			fmt.Sprintf("%.2f", p.Score),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// signalCSVHeader is the shared CSV layout for ranked ratio signals.
var signalCSVHeader = []string{
	"rank",
	"key",
	"label",
	"value",
	"band_min",
	"band_max",
	"status",
	"score",
	"confidence",
}

// writeSignalsCSVRows writes one CSV row per ranked signal.
func writeSignalsCSVRows(w *csv.Writer, signals []schema.RatioSignal, fmtConf func(float64) string) error {
	for i, s := range signals {
		rec := []string{
			strconv.Itoa(i + 1),
			string(s.Key),
			s.Label,
			fmt.Sprintf("%.3f", s.Value),
			fmt.Sprintf("%.2f", s.Band[0]),
			fmt.Sprintf("%.2f", s.Band[1]),
			string(s.Status),
			fmt.Sprintf("%.3f", s.Score),
			fmtConf(s.Confidence),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// joinDimensions renders a dimension list for CSV and text output.
func joinDimensions(dims []schema.ChangeDimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}
