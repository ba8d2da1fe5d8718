package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			if parent.Children[scope.Name] != scopeID {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scopeID != t.root {
			errs = append(errs, fmt.Errorf("scope %d (%q) is detached", scopeID, scope.Path))
		}
		for name, id := range scope.Members {
			sym := t.Symbols.Get(id)
			if sym == nil {
				errs = append(errs, fmt.Errorf("scope %d member %q points to missing symbol %d", scopeID, name, id))
				continue
			}
			if sym.Scope != scopeID {
				errs = append(errs, fmt.Errorf("symbol %d (%s) listed in scope %d but owned by %d", id, sym.FQN, scopeID, sym.Scope))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := t.Symbols.data[idx]
		if sym.Entity == nil {
			errs = append(errs, fmt.Errorf("symbol %d (%s) has no entity", id, sym.FQN))
			continue
		}
		if sym.Entity.ID != sym.FQN {
			errs = append(errs, fmt.Errorf("symbol %d id %q differs from fqn %q", id, sym.Entity.ID, sym.FQN))
		}
		if t.byFQN[sym.FQN] != id {
			errs = append(errs, fmt.Errorf("symbol %d (%s) missing from fqn index", id, sym.FQN))
		}
	}

	return errors.Join(errs...)
}
