package modelgen

import (
	"github.com/goliatone/go-modelgen/internal/loader"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// NewLoader constructs a descriptor document loader while keeping the
// concrete type hidden from consumers.
func NewLoader(options ...classdesc.LoaderOption) classdesc.Loader {
	return loader.New(classdesc.NewLoaderOptions(options...))
}
