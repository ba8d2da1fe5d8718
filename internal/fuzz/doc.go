// Package fuzztests houses Go fuzz harnesses that exercise the umlts
// compilation pipeline (source -> lexer -> parser -> sema). Its goal is to
// smoke test robustness: no panics escape, no hangs, and every result keeps
// a non-nil diagram and AST with sane spans.
//
// Назначение: прогонять произвольные байты через лексер и через полный
// конвейер с каждым зарегистрированным языком.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/compiler,
// internal/testkit.

package fuzztests
