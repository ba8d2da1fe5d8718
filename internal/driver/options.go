package driver

import (
	"umlts/internal/compiler"
	"umlts/internal/plugin"
	"umlts/internal/project"
	"umlts/internal/trace"
)

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	Stage            compiler.Stage
	Language         string
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Jobs ограничивает число воркеров; <= 0 — GOMAXPROCS.
	Jobs     int
	Registry *plugin.Registry
	Tracer   trace.Tracer
	// Progress получает события по файлам (может быть nil).
	Progress ProgressFunc
}

func (o *DiagnoseOptions) compilerOptions() compiler.Options {
	return compiler.Options{
		Stage:            o.Stage,
		Language:         o.Language,
		MaxDiagnostics:   o.MaxDiagnostics,
		WarningsAsErrors: o.WarningsAsErrors,
		IgnoreWarnings:   o.IgnoreWarnings,
		Registry:         o.Registry,
		Tracer:           o.Tracer,
	}
}

// OptionsFromProject seeds options from the effective project config.
// CLI flags are applied on top by the caller.
func OptionsFromProject(cfg *project.Config) DiagnoseOptions {
	if cfg == nil {
		return DiagnoseOptions{MaxDiagnostics: project.DefaultMaxDiagnostics}
	}
	c := cfg.Manifest.Compile
	return DiagnoseOptions{
		Language:         c.Language,
		MaxDiagnostics:   c.MaxDiagnostics,
		WarningsAsErrors: c.WarningsAsErrors,
	}
}
