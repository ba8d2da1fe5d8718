// Package sema turns a parsed program into an IR diagram.
//
// Analysis runs three passes over one session:
//
//	Discovery   registers every package and classifier FQN
//	Definition  resolves member types and attaches properties/operations
//	Resolution  resolves relationships, xor groups and association classes
//
// and finishes with validation and emission. Analysis never stops early:
// every problem becomes a diagnostic and a (possibly partial) diagram is
// always returned.
package sema
