package compiler

import (
	"fmt"
	"sync"

	"umlts/internal/plugin"
	"umlts/internal/plugins/java"
	"umlts/internal/plugins/typescript"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *plugin.Registry
)

// DefaultRegistry returns the process-wide registry with the shipped
// language plugins. It is frozen on first use.
func DefaultRegistry() *plugin.Registry {
	defaultOnce.Do(func() {
		reg := plugin.NewRegistry()
		for _, p := range []plugin.Plugin{typescript.New(), java.New()} {
			if err := reg.Register(p); err != nil {
				panic(fmt.Errorf("builtin plugin %s: %w", p.Name(), err))
			}
		}
		reg.Freeze()
		defaultRegistry = reg
	})
	return defaultRegistry
}
