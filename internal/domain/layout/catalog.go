package layout

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed catalog.yaml
var bundledCatalog []byte

// Catalog is a versioned set of templates as shipped with the application.
type Catalog struct {
	Version   string                `koanf:"version"`
	Templates []SportLayoutTemplate `koanf:"templates"`
}

// DefaultCatalog parses the catalog bundled with the binary.
func DefaultCatalog() (Catalog, error) {
	return parseCatalog(rawbytes.Provider(bundledCatalog))
}

// LoadCatalogFile parses a YAML catalog override from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	return parseCatalog(file.Provider(path))
}

// ParseCatalog parses a YAML catalog document.
func ParseCatalog(doc []byte) (Catalog, error) {
	return parseCatalog(rawbytes.Provider(doc))
}

func parseCatalog(p koanf.Provider) (Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	var c Catalog
	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	if len(c.Templates) == 0 {
		return Catalog{}, fmt.Errorf("%w: catalog has no templates", ErrLoadCatalog)
	}
	return c, nil
}

// NewDefaultRegistry indexes the bundled catalog.
func NewDefaultRegistry() (*Registry, error) {
	c, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewRegistry(c.Templates)
}
