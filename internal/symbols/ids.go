package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// ScopeID identifies a namespace scope in the table arena.
type ScopeID uint32

// SymbolID identifies a declared or implicit entity.
type SymbolID uint32

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

func toScopeID(idx int) (ScopeID, error) {
	v, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index overflow: %w", err)
	}
	return ScopeID(v), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	v, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index overflow: %w", err)
	}
	return SymbolID(v), nil
}
