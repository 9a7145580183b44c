package salesdash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const datasetSchemaName = "salesdash.dataset.json"

// DatasetSchema is the JSON schema dataset files must satisfy.
var DatasetSchema = map[string]any{
	"type":     "object",
	"required": []any{"series", "products", "team"},
	"properties": map[string]any{
		"series": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"period", "revenue", "profit", "units"},
				"properties": map[string]any{
					"period":  map[string]any{"type": "string", "minLength": 1},
					"revenue": map[string]any{"type": "number"},
					"profit":  map[string]any{"type": "number"},
					"units":   map[string]any{"type": "number", "minimum": 0},
				},
			},
		},
		"products": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "sales", "target"},
				"properties": map[string]any{
					"name":   map[string]any{"type": "string", "minLength": 1},
					"sales":  map[string]any{"type": "number", "minimum": 0},
					"target": map[string]any{"type": "number", "exclusiveMinimum": 0},
				},
			},
		},
		"team": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "sales", "leads", "target", "status"},
				"properties": map[string]any{
					"name":   map[string]any{"type": "string", "minLength": 1},
					"sales":  map[string]any{"type": "number", "minimum": 0},
					"leads":  map[string]any{"type": "number", "minimum": 0},
					"target": map[string]any{"type": "number", "exclusiveMinimum": 0},
					"avatar": map[string]any{"type": "string"},
					"status": map[string]any{"enum": []any{string(MemberActive), string(MemberWarning)}},
				},
			},
		},
	},
}

var (
	datasetSchemaOnce sync.Once
	datasetSchema     *jsonschema.Schema
	datasetSchemaErr  error
)

// ReadDataset loads a dataset file from disk.
func ReadDataset(path string) (Dataset, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Dataset{}, fmt.Errorf("salesdash: open dataset %s: %w", path, err)
	}
	defer f.Close()
	ds, err := DecodeDataset(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("salesdash: decode dataset %s: %w", path, err)
	}
	return ds, nil
}

// DecodeDataset parses a YAML (or JSON) dataset and validates it. Cards and
// insights fall back to the sample ones when the document omits them.
func DecodeDataset(r io.Reader) (Dataset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var ds Dataset
	if err := decoder.Decode(&ds); err != nil {
		if err == io.EOF {
			return Dataset{}, fmt.Errorf("salesdash: dataset is empty")
		}
		return Dataset{}, fmt.Errorf("salesdash: parse dataset: %w", err)
	}
	if err := ValidateDataset(ds); err != nil {
		return Dataset{}, err
	}
	sample := SampleDataset()
	if len(ds.Cards) == 0 {
		ds.Cards = sample.Cards
	}
	if len(ds.Insights) == 0 {
		ds.Insights = sample.Insights
	}
	return ds, nil
}

// ValidateDataset checks a dataset against DatasetSchema.
func ValidateDataset(ds Dataset) error {
	schema, err := compiledDatasetSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("salesdash: marshal dataset: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("salesdash: normalize dataset: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("salesdash: dataset failed validation: %w", err)
	}
	return nil
}

// EncodeDataset writes ds as YAML.
func EncodeDataset(w io.Writer, ds Dataset) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ds); err != nil {
		return fmt.Errorf("salesdash: encode dataset: %w", err)
	}
	return encoder.Close()
}

func compiledDatasetSchema() (*jsonschema.Schema, error) {
	datasetSchemaOnce.Do(func() {
		data, err := json.Marshal(DatasetSchema)
		if err != nil {
			datasetSchemaErr = fmt.Errorf("salesdash: marshal dataset schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(datasetSchemaName, bytes.NewReader(data)); err != nil {
			datasetSchemaErr = fmt.Errorf("salesdash: load dataset schema: %w", err)
			return
		}
		datasetSchema, datasetSchemaErr = compiler.Compile(datasetSchemaName)
		if datasetSchemaErr != nil {
			datasetSchemaErr = fmt.Errorf("salesdash: compile dataset schema: %w", datasetSchemaErr)
		}
	})
	return datasetSchema, datasetSchemaErr
}
