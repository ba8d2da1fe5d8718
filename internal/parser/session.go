package parser

// MaxPackageDepth bounds package nesting, counting every dotted segment of a
// package name; deeper bodies are skipped.
const MaxPackageDepth = 128

// Session is per-parse state shared by rules.
type Session struct {
	pendingDoc string
	hasDoc     bool
	depth      int
}

// SetDoc remembers a doc comment for the next declaration.
func (s *Session) SetDoc(text string) {
	if s.hasDoc && s.pendingDoc != "" {
		s.pendingDoc += "\n" + text
		return
	}
	s.pendingDoc, s.hasDoc = text, true
}

// TakeDoc returns the pending doc comment and clears it.
func (s *Session) TakeDoc() string {
	doc := s.pendingDoc
	s.Clear()
	return doc
}

// HasDoc reports whether a doc comment is waiting.
func (s *Session) HasDoc() bool {
	return s.hasDoc
}

// Clear drops the pending doc comment. The orchestrator calls it after every
// statement attempt so a doc never leaks onto an unrelated declaration.
func (s *Session) Clear() {
	s.pendingDoc, s.hasDoc = "", false
}

// enterPackage adds the levels a package name opens (one per dotted
// segment) and reports whether nesting is still within MaxPackageDepth.
// Every call is paired with leavePackage(levels).
func (s *Session) enterPackage(levels int) bool {
	s.depth += levels
	return s.depth <= MaxPackageDepth
}

func (s *Session) leavePackage(levels int) {
	s.depth -= levels
}
