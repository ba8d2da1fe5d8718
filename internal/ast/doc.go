// Package ast defines the syntax tree produced by the parser.
//
// Nodes are plain structs discriminated by NodeKind. Parents own their
// children; there are no back references. The tree is read-only once Parse
// returns.
package ast
