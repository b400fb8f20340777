package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// LoadCatalog loads the descriptor document at src and extracts its classes.
// format names a registered adapter; when empty the adapter is detected from
// the payload.
func (o *Orchestrator) LoadCatalog(ctx context.Context, src classdesc.Source, format string) (*classdesc.Catalog, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("orchestrator: source is required")
	}

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return o.CatalogFromDocument(ctx, doc, format)
}

// CatalogFromDocument extracts classes from an already loaded document.
func (o *Orchestrator) CatalogFromDocument(ctx context.Context, doc classdesc.Document, format string) (*classdesc.Catalog, error) {
	adapter, err := o.resolveAdapter(doc, format)
	if err != nil {
		return nil, err
	}
	catalog, err := adapter.Classes(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %s adapter: %w", adapter.Name(), err)
	}
	o.logger.DebugContext(ctx, "modelgen catalog loaded", "location", doc.Location(), "adapter", adapter.Name(), "classes", catalog.Len())
	return catalog, nil
}

func (o *Orchestrator) resolveAdapter(doc classdesc.Document, format string) (classdesc.FormatAdapter, error) {
	if format = strings.TrimSpace(format); format != "" {
		adapter, err := o.adapters.Get(format)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}

	matches := o.adapters.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("orchestrator: unable to detect the format of %s", doc.Location())
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("orchestrator: multiple adapters matched payload (%s), specify format", adapterNames(matches))
	}
}

func adapterNames(adapters []classdesc.FormatAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
