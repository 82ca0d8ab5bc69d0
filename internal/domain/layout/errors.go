package layout

import "errors"

// Sentinel kinds for layout errors.
var (
	// ErrNoLayout means neither a sport template nor a wildcard is registered.
	ErrNoLayout          = errors.New("no layout available")
	ErrInvalidTemplate   = errors.New("invalid layout template")
	ErrDuplicateTemplate = errors.New("duplicate template id")
	ErrDuplicateSlot     = errors.New("duplicate slot key")
	ErrInvalidCoordinate = errors.New("slot coordinate out of range")
	ErrLoadCatalog       = errors.New("load layout catalog failed")
)
