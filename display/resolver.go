package display

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A SymbolLookup returns the address of a named entry point or 0 if it cannot
// be found.
type SymbolLookup func(name string) uintptr

// Resolver locates GL entry points. Symbols are looked up in the explicitly
// loaded driver library first; symbols missing from it are requested from the
// context library's generic proc address function.
type Resolver struct {
	driver   SymbolLookup
	fallback SymbolLookup

	// Names that could not be resolved by either lookup.
	missing map[string]struct{}
}

// Create a new resolver. Either lookup may be nil.
func NewResolver(driver, fallback SymbolLookup) *Resolver {
	return &Resolver{
		driver:   driver,
		fallback: fallback,
		missing:  make(map[string]struct{}),
	}
}

// Resolve returns the address for name.
func (r *Resolver) Resolve(name string) (uintptr, error) {
	if name == "" {
		return 0, ErrEmptySymbol
	}

	if r.driver != nil {
		if addr := r.driver(name); addr != 0 {
			return addr, nil
		}
	}

	if r.fallback != nil {
		if addr := r.fallback(name); addr != 0 {
			return addr, nil
		}
	}

	r.missing[name] = struct{}{}
	return 0, errors.Wrap(ErrSymbolNotFound, name)
}

// Missing returns the sorted list of names that failed to resolve.
func (r *Resolver) Missing() []string {
	names := make([]string, 0, len(r.missing))
	for name := range r.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Err returns a single error listing every unresolved symbol or nil if all
// lookups succeeded.
func (r *Resolver) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return errors.Wrapf(ErrSymbolNotFound, "unresolved entry points: %s", strings.Join(r.Missing(), ", "))
}
