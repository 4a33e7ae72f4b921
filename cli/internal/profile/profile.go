// ABOUTME: Loads sizing input profiles from YAML or JSON files
// ABOUTME: Validates documents against an embedded JSON Schema and fills calculator defaults

package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"

	"github.com/markalston/workflow-sizer/backend/models"
)

const schemaURL = "https://workflow-sizer.local/profile.schema.json"

//go:embed profile.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add profile schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Load reads and validates a profile file.
func Load(path string) (models.Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Inputs{}, fmt.Errorf("read profile: %w", err)
	}
	in, err := Parse(data)
	if err != nil {
		return models.Inputs{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return in, nil
}

// Parse validates a YAML or JSON profile document. Fields the document omits
// keep the calculator defaults.
func Parse(data []byte) (models.Inputs, error) {
	sch, err := loadSchema()
	if err != nil {
		return models.Inputs{}, err
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return models.Inputs{}, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return models.Inputs{}, fmt.Errorf("decode profile: %w", err)
	}
	// An empty file decodes to null; treat it as "all defaults"
	if document == nil {
		return models.DefaultInputs(), nil
	}
	if err := sch.Validate(document); err != nil {
		return models.Inputs{}, err
	}

	in := models.DefaultInputs()
	if err := json.Unmarshal(jsonData, &in); err != nil {
		return models.Inputs{}, fmt.Errorf("decode profile: %w", err)
	}
	return in, nil
}

// Marshal renders inputs as a YAML profile document.
func Marshal(in models.Inputs) ([]byte, error) {
	return yaml.Marshal(in)
}
