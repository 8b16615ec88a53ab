package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// PrintFaceAnalysis writes a face analysis in the configured output mode.
func PrintFaceAnalysis(analysis *schema.FaceAnalysis, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Saved face analysis")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, fmtConf := createFormatters(cfg.Precision)
			return writeCSVWithHeader(w, signalCSVHeader, func(cw *csv.Writer) error {
				return writeSignalsCSVRows(cw, analysis.Signals, fmtConf)
			})
		}, "Saved face signals")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFaceText(w, analysis, cfg, duration)
		}, "Saved face analysis")
	}
}

func writeFaceText(w io.Writer, analysis *schema.FaceAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtConf := createFormatters(cfg.Precision)

	header := "Face analysis"
	if cfg.UseEmojis {
		header = "🙂 " + header
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

	_, err := fmt.Fprintf(w, "\nScored in %v\n", duration.Round(time.Millisecond))
	return err
}
