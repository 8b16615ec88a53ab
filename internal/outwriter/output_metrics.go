package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// weightEntry is one pillar weight in a stable render order.
type weightEntry struct {
	Pillar schema.PillarKey `json:"pillar"`
	Weight float64          `json:"weight"`
	Custom bool             `json:"custom,omitempty"`
}

// ratioEntry is one ratio spec in report form.
type ratioEntry struct {
	Key      schema.RatioKey `json:"key"`
	Label    string          `json:"label"`
	IdealMid float64         `json:"idealMid"`
	Sigma    float64         `json:"sigma"`
	BandMin  float64         `json:"bandMin"`
	BandMax  float64         `json:"bandMax"`
	Weight   float64         `json:"weight"`
}

// postureEntry is one posture threshold set in report form.
type postureEntry struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Mild        float64 `json:"mildDeg"`
	Moderate    float64 `json:"moderateDeg"`
	Significant float64 `json:"significantDeg"`
}

// metricsReport is the full definition dump of the active scoring config.
type metricsReport struct {
	ConfigVersion     string                               `json:"configVersion"`
	FaceWeights       []weightEntry                        `json:"faceWeights"`
	BodyWeights       []weightEntry                        `json:"bodyWeights"`
	BodyWeightsNoSide []weightEntry                        `json:"bodyWeightsNoSide"`
	FaceRatios        []ratioEntry                         `json:"faceRatios"`
	BodyRatios        map[schema.Presentation][]ratioEntry `json:"bodyRatios"`
	Curve             []schema.CurvePoint                  `json:"curve"`
	PostureThresholds []postureEntry                       `json:"postureThresholds"`
}

// PrintMetricsDefinitions writes the active scoring definitions, weights,
// bands and curves. Custom pillar weight overrides are echoed back as such.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	report := buildMetricsReport(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Saved metrics definitions")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, report)
		}, "Saved metrics definitions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, report, cfg)
		}, "Saved metrics definitions")
	}
}

func buildMetricsReport(cfg *contract.Config) *metricsReport {
	sc := cfg.Scoring

	report := &metricsReport{
		ConfigVersion:     cfg.ConfigVersion,
		FaceWeights:       weightEntries(sc.FacePillarWeights, cfg.CustomFaceWeights),
		BodyWeights:       weightEntries(sc.BodyPillarWeights, cfg.CustomBodyWeights),
		BodyWeightsNoSide: weightEntries(sc.BodyPillarWeightsNoSide, nil),
		FaceRatios:        ratioEntries(sc.FaceRatios),
		BodyRatios:        make(map[schema.Presentation][]ratioEntry, len(sc.BodyRatios)),
		Curve:             sc.Curve,
	}
	for presentation, specs := range sc.BodyRatios {
		report.BodyRatios[presentation] = ratioEntries(specs)
	}
	for _, th := range sc.PostureThresholds {
		report.PostureThresholds = append(report.PostureThresholds, postureEntry{
			Key:         th.Key,
			Label:       th.Label,
			Mild:        th.Mild,
			Moderate:    th.Moderate,
			Significant: th.Significant,
		})
	}
	return report
}

// weightEntries sorts a pillar weight table by key and marks overridden
// pillars as custom.
func weightEntries(weights map[schema.PillarKey]float64, overrides map[schema.PillarKey]float64) []weightEntry {
	entries := make([]weightEntry, 0, len(weights))
	for pillar, weight := range weights {
		_, custom := overrides[pillar]
		entries = append(entries, weightEntry{Pillar: pillar, Weight: weight, Custom: custom})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Pillar < entries[j].Pillar })
	return entries
}

func ratioEntries(specs []schema.RatioSpec) []ratioEntry {
	entries := make([]ratioEntry, len(specs))
	for i, spec := range specs {
		entries[i] = ratioEntry{
			Key:      spec.Key,
			Label:    spec.Label,
			IdealMid: spec.IdealMid,
			Sigma:    spec.Sigma,
			BandMin:  spec.Band[0],
			BandMax:  spec.Band[1],
			Weight:   spec.Weight,
		}
	}
	return entries
}

func writeMetricsText(w io.Writer, report *metricsReport, cfg *contract.Config) error {
	header := "Scoring definitions"
	if cfg.UseEmojis {
		header = "📐 " + header
	}
	if _, err := fmt.Fprintf(w, "%s (config %s)\n", header, report.ConfigVersion); err != nil {
		return err
	}

	if err := writeWeightSection(w, "Face pillar weights", report.FaceWeights); err != nil {
		return err
	}
	if err := writeWeightSection(w, "Body pillar weights", report.BodyWeights); err != nil {
		return err
	}
	if err := writeWeightSection(w, "Body pillar weights without side view", report.BodyWeightsNoSide); err != nil {
		return err
	}

	if err := writeRatioSection(w, "Face ratios", report.FaceRatios); err != nil {
		return err
	}
	presentations := make([]schema.Presentation, 0, len(report.BodyRatios))
	for presentation := range report.BodyRatios {
		presentations = append(presentations, presentation)
	}
	sort.Slice(presentations, func(i, j int) bool { return presentations[i] < presentations[j] })
	for _, presentation := range presentations {
		title := fmt.Sprintf("Body ratios, %s", presentation)
		if err := writeRatioSection(w, title, report.BodyRatios[presentation]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nCalibration curve"); err != nil {
		return err
	}
	curve := tablewriter.NewWriter(w)
	curve.Header([]string{"Raw", "Display"})
	curve.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var curveRows [][]string
	for _, point := range report.Curve {
		curveRows = append(curveRows, []string{
			fmt.Sprintf("%.2f", point.Raw),
			fmt.Sprintf("%.1f", point.Display),
		})
	}
	if err := curve.Bulk(curveRows); err != nil {
		return err
	}
	if err := curve.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nPosture thresholds (degrees)"); err != nil {
		return err
	}
	posture := tablewriter.NewWriter(w)
	posture.Header([]string{"Posture", "Mild", "Moderate", "Significant"})
	posture.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var postureRows [][]string
	for _, th := range report.PostureThresholds {
		postureRows = append(postureRows, []string{
			th.Label,
			fmt.Sprintf("%.0f", th.Mild),
			fmt.Sprintf("%.0f", th.Moderate),
			fmt.Sprintf("%.0f", th.Significant),
		})
	}
	if err := posture.Bulk(postureRows); err != nil {
		return err
	}
	return posture.Render()
}

func writeWeightSection(w io.Writer, title string, entries []weightEntry) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Pillar", "Weight"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for _, entry := range entries {
		name := string(entry.Pillar)
		if entry.Custom {
			name += " (custom)"
		}
		rows = append(rows, []string{name, fmt.Sprintf("%.2f", entry.Weight)})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeRatioSection(w io.Writer, title string, entries []ratioEntry) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Ratio", "Ideal", "Sigma", "Band", "Weight"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Label,
			fmt.Sprintf("%.2f", entry.IdealMid),
			fmt.Sprintf("%.3f", entry.Sigma),
			fmt.Sprintf("%.2f-%.2f", entry.BandMin, entry.BandMax),
			fmt.Sprintf("%.2f", entry.Weight),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// writeMetricsCSV flattens the ratio tables into one CSV with a context
// column, the shape most useful for spreadsheet review.
func writeMetricsCSV(w io.Writer, report *metricsReport) error {
	header := []string{"context", "key", "label", "ideal_mid", "sigma", "band_min", "band_max", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		writeGroup := func(context string, entries []ratioEntry) error {
			for _, entry := range entries {
				rec := []string{
					context,
					string(entry.Key),
					entry.Label,
					fmt.Sprintf("%.2f", entry.IdealMid),
					fmt.Sprintf("%.3f", entry.Sigma),
					fmt.Sprintf("%.2f", entry.BandMin),
					fmt.Sprintf("%.2f", entry.BandMax),
					fmt.Sprintf("%.2f", entry.Weight),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		}

		if err := writeGroup("face", report.FaceRatios); err != nil {
			return err
		}
		presentations := make([]schema.Presentation, 0, len(report.BodyRatios))
		for presentation := range report.BodyRatios {
			presentations = append(presentations, presentation)
		}
		sort.Slice(presentations, func(i, j int) bool { return presentations[i] < presentations[j] })
		for _, presentation := range presentations {
			if err := writeGroup("body_"+string(presentation), report.BodyRatios[presentation]); err != nil {
				return err
			}
		}
		return nil
	})
}
