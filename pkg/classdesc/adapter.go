package classdesc

import (
	"context"
	"fmt"
	"sort"
)

// Loader fetches descriptor documents from files, fs.FS entries, or URLs.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// FormatAdapter normalises one document format into a Catalog of classes.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Classes(ctx context.Context, doc Document) (*Catalog, error)
}

// Catalog holds the classes extracted from one document, keyed by class name
// and kept in document order.
type Catalog struct {
	order   []string
	classes map[string]*Class
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{classes: make(map[string]*Class)}
}

// Add registers a class. Duplicate names return an error.
func (c *Catalog) Add(class *Class) error {
	if class == nil {
		return fmt.Errorf("classdesc: class is required")
	}
	if class.Name == "" {
		return fmt.Errorf("classdesc: class name is required")
	}
	if _, exists := c.classes[class.Name]; exists {
		return fmt.Errorf("classdesc: class %q already defined", class.Name)
	}
	c.classes[class.Name] = class
	c.order = append(c.order, class.Name)
	return nil
}

// Class looks up a class by its source name or its external model name.
func (c *Catalog) Class(name string) (*Class, bool) {
	if c == nil {
		return nil, false
	}
	if class, ok := c.classes[name]; ok {
		return class, true
	}
	for _, key := range c.order {
		if class := c.classes[key]; class.ModelName() == name {
			return class, true
		}
	}
	return nil, false
}

// Classes returns the classes in document order.
func (c *Catalog) Classes() []*Class {
	if c == nil {
		return nil
	}
	out := make([]*Class, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.classes[name])
	}
	return out
}

// Names returns the sorted class names.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

// Len reports the number of classes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// ResolveReferences binds every association Ref to the catalog class of the
// same name. References that match no class are left untouched so the
// metadata builder can report them.
func (c *Catalog) ResolveReferences() {
	if c == nil {
		return
	}
	for _, name := range c.order {
		class := c.classes[name]
		for i := range class.Properties {
			assoc := class.Properties[i].Association
			if assoc == nil || assoc.Class != nil || assoc.Ref == "" {
				continue
			}
			if target, ok := c.Class(assoc.Ref); ok {
				assoc.Class = target
			}
		}
	}
}
