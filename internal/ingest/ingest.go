// Package ingest is the strict parse-or-reject boundary between the loosely
// typed upstream measurement payloads and the deterministic core. The core
// only ever sees data that passed schema validation here.
package ingest

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/auralab/aura/schema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidInput marks a contract violation by the upstream producer, as
// opposed to an unmeasurable-but-valid signal which the core degrades
// gracefully. Callers can match it with errors.Is.
var ErrInvalidInput = errors.New("invalid measurement input")

var (
	faceSchemaOnce sync.Once
	faceSchema     *gojsonschema.Schema
	bodySchemaOnce sync.Once
	bodySchema     *gojsonschema.Schema
)

func loadSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("embedded schema %s missing: %v", name, err))
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("embedded schema %s invalid: %v", name, err))
	}
	return compiled
}

func getFaceSchema() *gojsonschema.Schema {
	faceSchemaOnce.Do(func() { faceSchema = loadSchema("face.schema.json") })
	return faceSchema
}

func getBodySchema() *gojsonschema.Schema {
	bodySchemaOnce.Do(func() { bodySchema = loadSchema("body.schema.json") })
	return bodySchema
}

// validate runs a payload through a compiled schema, folding all violations
// into one ErrInvalidInput.
func validate(compiled *gojsonschema.Schema, data []byte) error {
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		messages = append(messages, violation.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

// ParseFaceMeasurements validates and decodes a face measurement payload.
func ParseFaceMeasurements(data []byte) (*schema.FaceMeasurements, error) {
	if err := validate(getFaceSchema(), data); err != nil {
		return nil, err
	}

	var m schema.FaceMeasurements
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(m.PairedLeft) != len(m.PairedRight) {
		return nil, fmt.Errorf("%w: pairedLeft and pairedRight must have equal length (%d vs %d)",
			ErrInvalidInput, len(m.PairedLeft), len(m.PairedRight))
	}
	return &m, nil
}

// ParseBodyMeasurements validates and decodes a body measurement payload.
func ParseBodyMeasurements(data []byte) (*schema.BodyMeasurements, error) {
	if err := validate(getBodySchema(), data); err != nil {
		return nil, err
	}

	var m schema.BodyMeasurements
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(m.PairedLeft) != len(m.PairedRight) {
		return nil, fmt.Errorf("%w: pairedLeft and pairedRight must have equal length (%d vs %d)",
			ErrInvalidInput, len(m.PairedLeft), len(m.PairedRight))
	}
	if m.HasSideView && m.Posture == nil {
		return nil, fmt.Errorf("%w: hasSideView is set but no posture angles were supplied", ErrInvalidInput)
	}
	if m.ClothingFit == "" {
		m.ClothingFit = schema.FitLoose // assume the least reliable fit when unreported
	}
	if m.Presentation == "" {
		m.Presentation = schema.PresentationNeutral
	}
	return &m, nil
}

// LoadFaceMeasurements reads and parses a face measurement file.
func LoadFaceMeasurements(path string) (*schema.FaceMeasurements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading measurements: %w", err)
	}
	return ParseFaceMeasurements(data)
}

// LoadBodyMeasurements reads and parses a body measurement file.
func LoadBodyMeasurements(path string) (*schema.BodyMeasurements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading measurements: %w", err)
	}
	return ParseBodyMeasurements(data)
}
