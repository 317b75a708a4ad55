package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// SchemaJSON returns the JSON schema for Config, pretty-printed.
func SchemaJSON() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/Zeal1001/casement/config.schema.json"
	schema.Title = "Casement Configuration"
	schema.Description = "Configuration schema for casement, a lightweight private web browser"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the JSON schema next to the config file.
// Called automatically when a default config is created.
func GenerateSchemaFile() error {
	schemaFile, err := GetSchemaFile()
	if err != nil {
		return fmt.Errorf("failed to get schema path: %w", err)
	}

	data, err := SchemaJSON()
	if err != nil {
		return err
	}

	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	return nil
}
