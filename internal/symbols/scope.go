package symbols

// Scope is one namespace level. The root scope has an empty Path.
type Scope struct {
	Name     string
	Path     string
	Parent   ScopeID
	Members  map[string]SymbolID // short name -> symbol
	Children map[string]ScopeID  // nested namespace -> scope
	Order    []SymbolID
}

// Qualify joins the scope path and a name into an FQN.
func (s *Scope) Qualify(name string) string {
	if s.Path == "" {
		return name
	}
	return s.Path + "." + name
}
