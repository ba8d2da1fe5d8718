package fuzztests

import (
	"testing"
	"time"

	"umlts/internal/compiler"
	"umlts/internal/testkit"
)

// compileTimeout is the maximum time allowed for compiling a single input.
// If compiling takes longer, it indicates a potential infinite loop.
const compileTimeout = 5 * time.Second

var fuzzLanguages = []string{"", "typescript", "java"}

func FuzzCompileNeverNil(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		for _, lang := range fuzzLanguages {
			res := compiler.ParseWithOptions("fuzz.umlts", string(input), compiler.Options{Language: lang, MaxDiagnostics: 128})
			if res.Diagram == nil || res.AST == nil {
				t.Fatalf("lang %q: nil diagram or AST", lang)
			}
			if err := testkit.CheckSpanInvariants(res.AST, res.File); err != nil {
				t.Fatalf("lang %q: %v\ninput: %q", lang, err, truncateForLog(input, 200))
			}
			if res.IsValid == res.Bag.HasErrors() {
				t.Fatalf("lang %q: IsValid=%v disagrees with diagnostics", lang, res.IsValid)
			}
		}
	})
}

// FuzzCompileNoHang tests that the pipeline doesn't hang on any input.
// Error recovery in the parser is the usual suspect.
func FuzzCompileNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("class A {\n  + name: \n  - (\n}"))
	f.Add([]byte("package { package { package {"))
	f.Add([]byte("class A <> (B[1..], C[..*]) {"))
	f.Add([]byte("note for"))
	f.Add([]byte("config { language: }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for _, lang := range fuzzLanguages {
				_ = compiler.ParseWithOptions("fuzz.umlts", string(input), compiler.Options{Language: lang})
			}
		}()

		select {
		case <-done:
		case <-time.After(compileTimeout):
			t.Fatalf("compile hang detected: took longer than %v\ninput (%d bytes): %q",
				compileTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
