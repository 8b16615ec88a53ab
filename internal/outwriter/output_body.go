package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// PrintBodyAnalysis writes a body analysis in the configured output mode.
func PrintBodyAnalysis(analysis *schema.BodyAnalysis, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Saved body analysis")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, fmtConf := createFormatters(cfg.Precision)
			return writeCSVWithHeader(w, signalCSVHeader, func(cw *csv.Writer) error {
				return writeSignalsCSVRows(cw, analysis.Signals, fmtConf)
			})
		}, "Saved body signals")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBodyText(w, analysis, cfg, duration)
		}, "Saved body analysis")
	}
}

func writeBodyText(w io.Writer, analysis *schema.BodyAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtConf := createFormatters(cfg.Precision)

	header := "Body analysis"
	if cfg.UseEmojis {
		header = "🏋️ " + header
	}
	if _, err := fmt.Fprintf(w, "%s (config %s)\n\n", header, cfg.ConfigVersion); err != nil {
		return err
	}

	if err := writeOverallBlock(w, analysis.Overall, cfg, fmtFloat, fmtConf); err != nil {
		return err
	}
	if err := writePillarTable(w, analysis.Pillars, fmtConf); err != nil {
		return err
	}
	if err := writeSignalsTable(w, analysis.Signals, cfg, fmtConf); err != nil {
		return err
	}
	if err := writePostureTable(w, analysis.Posture); err != nil {
		return err
	}

	// Composition is reported as a band, never a point estimate.
	comp := analysis.Composition
	if _, err := fmt.Fprintf(w, "\nComposition band: %s-%s/10 (confidence %s)\n",
		fmtFloat(comp.Min), fmtFloat(comp.Max), fmtConf(comp.Confidence)); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nScored in %v\n", duration.Round(time.Millisecond))
	return err
}
