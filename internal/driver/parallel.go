package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"umlts/internal/compiler"
	"umlts/internal/observ"
	"umlts/internal/source"
	"umlts/internal/trace"
)

// DirResult — результаты по всем файлам директории в порядке ListSourceFiles.
type DirResult struct {
	Dir     string
	FileSet *source.FileSet
	Files   []FileResult
	Timing  *observ.Report
}

// HasErrors reports whether any file has error diagnostics.
func (r *DirResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].HasErrors() {
			return true
		}
	}
	return false
}

// Counts sums errors and warnings across files.
func (r *DirResult) Counts() (errors, warnings int) {
	for i := range r.Files {
		e, w := countSeverities(&r.Files[i])
		errors += e
		warnings += w
	}
	return errors, warnings
}

// DiagnoseDir компилирует все *.umlts файлы директории параллельно.
// Каждый воркер владеет своим bag, парсером и таблицей символов; FileSet
// заполняется заранее и дальше только читается.
func DiagnoseDir(ctx context.Context, dir string, opts *DiagnoseOptions) (*DirResult, error) {
	if opts == nil {
		opts = &DiagnoseOptions{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_dir", trace.ParentFromContext(ctx))
	defer span.End("")

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	result := &DirResult{Dir: dir, FileSet: fileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	// Предзагрузка: после неё FileSet не меняется.
	loadIdx := -1
	if timer != nil {
		loadIdx = timer.Begin("load_files")
	}
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			fileIDs[i] = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
	}
	if timer != nil {
		timer.End(loadIdx, itoa(len(files))+" files")
	}

	for i, path := range files {
		opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены между файлами
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				result.Files[i] = loadFailure(path, fileIDs[i], opts.MaxDiagnostics, loadErr)
				opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: StatusFailed, Errors: 1})
				return nil
			}

			started := time.Now()
			opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: StatusWorking})

			copts := opts.compilerOptions()
			copts.Tracer = tracer
			copts.ParentSpan = span.ID()
			copts.Timer = timer
			res := compiler.Compile(fileSet, fileIDs[i], copts)

			// индекс i уникален — мьютекс не нужен
			result.Files[i] = FileResult{Path: path, FileID: fileIDs[i], Result: res, Bag: res.Bag}
			errs, warns := countSeverities(&result.Files[i])
			opts.Progress.emit(ProgressEvent{
				Path: path, Index: i, Total: len(files), Status: StatusDone,
				Errors: errs, Warnings: warns, Elapsed: time.Since(started),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if timer != nil {
		report := timer.Aggregate()
		result.Timing = &report
	}
	return result, nil
}
