// Package yamldesc reads class descriptors from YAML (or JSON) documents:
//
//	classes:
//	  - name: shop.Order
//	    model:
//	      value: Shop.Order
//	      idProperty: orderId
//	      readMethod: orderService.read
//	    properties:
//	      - name: orderId
//	        type: int64
//	      - name: customer
//	        association:
//	          kind: belongsTo
//	          class: shop.Customer
//
// Association "class" references are resolved against the other classes of
// the same document.
package yamldesc

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// AdapterName is the registry name of the adapter.
const AdapterName = "yaml"

type document struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name       string                `yaml:"name"`
	Model      classdesc.ModelConfig `yaml:"model"`
	Properties []classdesc.Property  `yaml:"properties"`
}

// Adapter implements classdesc.FormatAdapter.
type Adapter struct{}

var _ classdesc.FormatAdapter = Adapter{}

// New returns the adapter.
func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string {
	return AdapterName
}

// Detect matches .yaml/.yml locations and payloads with a top-level
// "classes" sequence.
func (Adapter) Detect(src classdesc.Source, raw []byte) bool {
	var probe struct {
		Classes yaml.Node `yaml:"classes"`
	}
	if err := yaml.Unmarshal(raw, &probe); err == nil && probe.Classes.Kind == yaml.SequenceNode {
		return true
	}
	if src == nil {
		return false
	}
	switch strings.ToLower(filepath.Ext(src.Location())) {
	case ".yaml", ".yml":
		return !bytes.Contains(raw, []byte("openapi:"))
	}
	return false
}

// Classes decodes the document into a catalog. Unknown keys are rejected so
// typos in property configuration surface as errors.
func (Adapter) Classes(ctx context.Context, doc classdesc.Document) (*classdesc.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(doc.Raw())
}

// Decode parses raw into a catalog with resolved association references.
func Decode(raw []byte) (*classdesc.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var payload document
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("yamldesc: decode: %w", err)
	}

	catalog := classdesc.NewCatalog()
	for i, entry := range payload.Classes {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("yamldesc: class %d: name is required", i)
		}
		class := classdesc.New(entry.Name, entry.Model, entry.Properties...)
		if err := catalog.Add(class); err != nil {
			return nil, fmt.Errorf("yamldesc: %w", err)
		}
	}
	catalog.ResolveReferences()
	return catalog, nil
}

// Encode writes classes in the document layout Decode reads.
func Encode(classes ...*classdesc.Class) ([]byte, error) {
	payload := document{Classes: make([]classEntry, 0, len(classes))}
	for _, class := range classes {
		if class == nil {
			continue
		}
		entry := classEntry{Name: class.Name, Model: class.Model, Properties: make([]classdesc.Property, len(class.Properties))}
		for i, prop := range class.Properties {
			if assoc := prop.Association; assoc != nil && assoc.Class != nil && assoc.Model == "" && assoc.Ref == "" {
				clone := *assoc
				clone.Ref = assoc.Class.Name
				prop.Association = &clone
			}
			entry.Properties[i] = prop
		}
		payload.Classes = append(payload.Classes, entry)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("yamldesc: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamldesc: encode: %w", err)
	}
	return buf.Bytes(), nil
}
