package compiler

import (
	"fmt"
	"runtime/debug"
	"strconv"

	"fortio.org/safecast"

	"umlts/internal/ast"
	"umlts/internal/diag"
	"umlts/internal/ir"
	"umlts/internal/lexer"
	"umlts/internal/observ"
	"umlts/internal/parser"
	"umlts/internal/plugin"
	"umlts/internal/sema"
	"umlts/internal/source"
	"umlts/internal/token"
	"umlts/internal/trace"
)

// DefaultName is the file name used by Parse.
const DefaultName = "input" + source.Extension

// Stage is the last pipeline stage to run.
type Stage uint8

const (
	StageAll Stage = iota
	StageTokenize
	StageSyntax
)

// ParseStage maps CLI names (tokenize, syntax, sema, all) to a Stage.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "", "all", "sema":
		return StageAll, nil
	case "tokenize":
		return StageTokenize, nil
	case "syntax":
		return StageSyntax, nil
	default:
		return StageAll, fmt.Errorf("unknown stage %q (expected: tokenize|syntax|sema|all)", s)
	}
}

type Options struct {
	Stage Stage
	// Language is the project default; an in-source setting overrides it.
	Language       string
	MaxDiagnostics int
	// WarningsAsErrors promotes warnings before IsValid is computed.
	WarningsAsErrors bool
	// IgnoreWarnings drops warnings and infos from the result.
	IgnoreWarnings bool
	// Registry defaults to DefaultRegistry().
	Registry *plugin.Registry
	Tracer   trace.Tracer
	// ParentSpan links the compile span under a driver span.
	ParentSpan uint64
	// Timer, when set, receives lex/parse/sema phases.
	Timer *observ.Timer
}

// Diagnostic is the external diagnostic shape: positions are 1-based.
type Diagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Length   int    `json:"length,omitempty"`
}

// Result of one compilation.
type Result struct {
	IsValid     bool
	Diagram     *ir.Diagram
	Diagnostics []Diagnostic
	AST         *ast.Program

	// Language is the activated plugin, empty for defaults.
	Language string
	Tokens   []token.Token
	FileSet  *source.FileSet
	File     *source.File
	Bag      *diag.Bag
}

// Parse compiles source with default options.
func Parse(src string) *Result {
	return ParseWithOptions(DefaultName, src, Options{})
}

// ParseWithOptions compiles an in-memory document.
func ParseWithOptions(name, src string, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return Compile(fs, id, opts)
}

// Compile runs the pipeline over a file already loaded into fs.
func Compile(fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	res := &Result{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	if file == nil {
		res.Diagram = ir.NewDiagram()
		res.AST = &ast.Program{File: id}
		res.IsValid = true
		return res
	}
	rep := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	span := trace.Begin(opts.Tracer, trace.ScopeUnit, "compile:"+file.Path, opts.ParentSpan)
	defer span.End("")

	act := activate(reg, file, opts.Language, rep)
	if act != nil {
		res.Language = act.Language
		span.WithExtra("language", act.Language)
	}

	guard(rep, "lex", func() {
		done := phase(opts, span.ID(), "lex")
		var matchers []lexer.Matcher
		if act != nil {
			matchers = act.Matchers
		}
		res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: rep, Matchers: matchers})
		done(strconv.Itoa(len(res.Tokens)) + " tokens")
	})
	if opts.Stage != StageTokenize {
		guard(rep, "parse", func() {
			done := phase(opts, span.ID(), "parse")
			res.AST = parser.Parse(res.Tokens, parser.Options{Reporter: rep, Registry: act.ParserRegistry()})
			done("")
		})
	}
	if res.AST == nil {
		res.AST = &ast.Program{File: id}
	}
	if opts.Stage == StageAll {
		guard(rep, "sema", func() {
			done := phase(opts, span.ID(), "sema")
			sopts := sema.Options{Reporter: rep, File: file, Tracer: opts.Tracer, ParentSpan: span.ID()}
			if act != nil {
				sopts.Primitives = act.Primitives
				sopts.Strategies = act.Strategies
			}
			res.Diagram = sema.Analyze(res.AST, sopts)
			done("")
		})
	}
	if res.Diagram == nil {
		res.Diagram = ir.NewDiagram()
	}

	if opts.IgnoreWarnings && !opts.WarningsAsErrors {
		res.Bag.DiscardWarnings()
	}
	if opts.WarningsAsErrors {
		res.Bag.PromoteWarnings()
	}
	res.Bag.Sort()
	res.Bag.Dedup()
	res.IsValid = !res.Bag.HasErrors()
	res.Diagnostics = external(fs, res.Bag.Items())
	span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len()))
	return res
}

func activate(reg *plugin.Registry, file *source.File, fallback string, rep diag.Reporter) *plugin.Activation {
	lang, sp := fallback, source.Span{File: file.ID}
	if decl, ok := DetectLanguage(file); ok {
		lang, sp = decl.Name, decl.Span
	}
	if lang == "" {
		return nil
	}
	act, ok := reg.Activate(lang)
	if !ok {
		diag.ReportWarning(rep, diag.PrjUnknownLanguage, sp,
			fmt.Sprintf("unknown language %q, using default primitives", lang)).Emit()
		return nil
	}
	return act
}

// guard turns a panic in a stage (usually a plugin rule) into an internal
// diagnostic so the caller still gets a result.
func guard(rep diag.Reporter, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			diag.ReportError(rep, diag.SemaInternal, source.Span{},
				fmt.Sprintf("internal error during %s: %v", stage, r)).
				WithNote(source.Span{}, string(debug.Stack())).
				Emit()
		}
	}()
	fn()
}

func phase(opts Options, parent uint64, name string) func(note string) {
	span := trace.Begin(opts.Tracer, trace.ScopePass, name, parent)
	idx := -1
	if opts.Timer != nil {
		idx = opts.Timer.Begin(name)
	}
	return func(note string) {
		span.End(note)
		if opts.Timer != nil {
			opts.Timer.End(idx, note)
		}
	}
}

func external(fs *source.FileSet, items []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(items))
	for _, d := range items {
		start, _ := fs.Resolve(d.Primary)
		length, err := safecast.Conv[int](d.Primary.Len())
		if err != nil {
			length = 0
		}
		out = append(out, Diagnostic{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Name:     d.Code.Name(),
			Message:  d.Message,
			Line:     int(start.Line),
			Column:   int(start.Col),
			Length:   length,
		})
	}
	return out
}
