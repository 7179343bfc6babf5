package germanic

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/germanicdev/germanic/jsonschema"
)

// ParseSchema parses a textual schema document into the canonical model,
// auto-detecting the dialect: a JSON Schema Draft 7 subset (converted, with
// warnings for ignored keywords) or the native .schema.json dialect
// (deserialized directly). The warnings slice is non-empty only for the
// converted dialect.
func ParseSchema(data []byte) (*SchemaDefinition, []string, error) {
	if jsonschema.Detect(data) {
		return convertJSONSchema(data)
	}

	var def SchemaDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, nil, fmt.Errorf("germanic: invalid schema document: %w", err)
	}
	if def.SchemaID == "" {
		return nil, nil, fmt.Errorf("germanic: schema document is missing schema_id")
	}
	if def.Version == 0 {
		return nil, nil, fmt.Errorf("germanic: schema version must be between 1 and 255")
	}
	return &def, nil, nil
}

// ParseSchemaYAML parses a YAML-authored schema document. The YAML node tree
// keeps mapping order, so the document is lowered to the ordered value model,
// re-encoded as JSON and routed through the regular dialect auto-detection.
func ParseSchemaYAML(data []byte) (*SchemaDefinition, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("germanic: invalid YAML schema document: %w", err)
	}
	v, err := yamlValue(&root)
	if err != nil {
		return nil, nil, err
	}
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return ParseSchema(jsonBytes)
}

// yamlValue lowers a yaml.Node into the ordered value model. Scalars keep
// their textual form for numbers so the Int/Float heuristics behave the same
// as for JSON input.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.MappingNode:
		obj := &Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			return n.Value == "true" || n.Value == "True" || n.Value == "TRUE", nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		default:
			return n.Value, nil
		}
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	default:
		return nil, fmt.Errorf("germanic: unsupported YAML node kind %d", n.Kind)
	}
}
