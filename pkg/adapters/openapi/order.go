package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// documentOrder records declaration order, which the decoded kin-openapi
// maps do not keep.
type documentOrder struct {
	schemas    []string
	properties map[string][]string
}

// declarationOrder walks components.schemas of raw (YAML or JSON) and
// returns schema and property names in the order they appear.
func declarationOrder(raw []byte) (documentOrder, error) {
	order := documentOrder{properties: make(map[string][]string)}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return order, fmt.Errorf("openapi: read declaration order: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return order, nil
	}

	schemas := lookup(lookup(root.Content[0], "components"), "schemas")
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return order, nil
	}
	for i := 0; i+1 < len(schemas.Content); i += 2 {
		name := schemas.Content[i].Value
		order.schemas = append(order.schemas, name)
		order.properties[name] = mappingKeys(lookup(schemas.Content[i+1], "properties"))
	}
	return order, nil
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// decodeExtension maps an extension value onto target through its yaml
// tags.
func decodeExtension(value any, target any) error {
	if value == nil {
		return nil
	}
	raw, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, target)
}
