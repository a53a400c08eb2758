package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	schema := r.Reflect(&Config{})
	schema.Title = "fc100v configuration"
	schema.Description = "Settings for the fc100v terminal calculator."
	// Every key has a default.
	schema.Required = nil
	return json.MarshalIndent(schema, "", "  ")
}
