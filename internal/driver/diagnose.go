package driver

import (
	"context"
	"fmt"

	"umlts/internal/compiler"
	"umlts/internal/diag"
	"umlts/internal/observ"
	"umlts/internal/source"
	"umlts/internal/trace"
)

// FileResult — результат компиляции одного файла.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Result is nil when the file could not be loaded.
	Result *compiler.Result
	Bag    *diag.Bag
}

// HasErrors reports error diagnostics, including load failures.
func (r *FileResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// DiagnoseResult — результат для одного файла, вместе с FileSet.
type DiagnoseResult struct {
	FileResult
	FileSet *source.FileSet
	Timing  *observ.Report
}

// Diagnose компилирует один файл до указанной стадии.
func Diagnose(ctx context.Context, path string, opts *DiagnoseOptions) (*DiagnoseResult, error) {
	if opts == nil {
		opts = &DiagnoseOptions{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose", trace.ParentFromContext(ctx))
	defer span.End("")

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	loadIdx := -1
	if timer != nil {
		loadIdx = timer.Begin("load_file")
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if timer != nil {
		timer.End(loadIdx, "")
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	copts := opts.compilerOptions()
	copts.Tracer = tracer
	copts.ParentSpan = span.ID()
	copts.Timer = timer
	res := compiler.Compile(fs, id, copts)

	out := &DiagnoseResult{
		FileResult: FileResult{Path: path, FileID: id, Result: res, Bag: res.Bag},
		FileSet:    fs,
	}
	if timer != nil {
		report := timer.Report()
		out.Timing = &report
	}
	return out, nil
}

// loadFailure builds the result for a file that could not be read.
func loadFailure(path string, id source.FileID, maxDiagnostics int, err error) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return FileResult{Path: path, FileID: id, Bag: bag}
}
