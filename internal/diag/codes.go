package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004

	// Синтаксические
	SynUnexpectedToken     Code = 2001
	SynExpectIdentifier    Code = 2002
	SynPackageNameExpected Code = 2003
	SynExpectLBrace        Code = 2004
	SynExpectRBrace        Code = 2005
	SynExpectType          Code = 2006
	SynBadMultiplicity     Code = 2007
	SynUnexpectedMember    Code = 2008
	SynUnexpectedTopLevel  Code = 2009
	SynExpectColon         Code = 2010
	SynExpectRParen        Code = 2011
	SynExpectValue         Code = 2012
	SynExpectRelOp         Code = 2013
	SynExpectGt            Code = 2014
	SynExpectString        Code = 2015
	SynExpectComma         Code = 2016
	SynInvalidModifier     Code = 2017
	SynNestingTooDeep      Code = 2018

	// IO
	IOLoadFileError Code = 4001

	// Семантические
	SemaInternal            Code = 3000
	SemaDuplicateDefinition Code = 3002
	SemaKindConflict        Code = 3003
	SemaDuplicateMember     Code = 3004
	SemaAmbiguousEntity     Code = 3006
	SemaInvalidAssocArity   Code = 3010
	SemaXorArity            Code = 3011
	SemaUnknownConfigKey    Code = 3012
	SemaInlineEnumConflict  Code = 3013
	SemaAbstractLeaf        Code = 3020
	SemaInheritanceKind     Code = 3021
	SemaExtendsLeaf         Code = 3022
	SemaRootHasParent       Code = 3023
	SemaRealizationKind     Code = 3024
	SemaEnumWhole           Code = 3025
	SemaPackageTarget       Code = 3026
	SemaCycleDetected       Code = 3030

	// Проектные
	PrjUnknownLanguage Code = 5001
	PrjBadManifest     Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexUnknownChar:          "Unknown character",
		LexUnterminatedString:   "Unterminated string literal",
		LexUnterminatedComment:  "Unterminated doc comment",
		LexBadNumber:            "Malformed number literal",
		SynUnexpectedToken:      "Unexpected token",
		SynExpectIdentifier:     "Expected identifier",
		SynPackageNameExpected:  "Package name expected",
		SynExpectLBrace:         "Expected '{'",
		SynExpectRBrace:         "Expected '}'",
		SynExpectType:           "Expected type",
		SynBadMultiplicity:      "Malformed multiplicity",
		SynUnexpectedMember:     "Unexpected token in body",
		SynUnexpectedTopLevel:   "Unexpected top-level construct",
		SynExpectColon:          "Expected ':'",
		SynExpectRParen:         "Expected ')'",
		SynExpectValue:          "Expected value",
		SynExpectRelOp:          "Expected relationship operator",
		SynExpectGt:             "Expected '>'",
		SynExpectString:         "Expected string literal",
		SynExpectComma:          "Expected ','",
		SynInvalidModifier:      "Modifier not allowed here",
		SynNestingTooDeep:       "Packages nested too deeply",
		IOLoadFileError:         "Failed to load file",
		SemaInternal:            "Internal analyzer error",
		SemaDuplicateDefinition: "Duplicate definition",
		SemaKindConflict:        "Conflicting classifier kind",
		SemaDuplicateMember:     "Duplicate member",
		SemaAmbiguousEntity:     "Ambiguous entity reference",
		SemaInvalidAssocArity:   "Invalid association class arity",
		SemaXorArity:            "XOR group with a single member",
		SemaUnknownConfigKey:    "Unknown configuration key",
		SemaInlineEnumConflict:  "Conflicting inline enumeration",
		SemaAbstractLeaf:        "Abstract classifier cannot be leaf or final",
		SemaInheritanceKind:     "Inheritance between incompatible classifiers",
		SemaExtendsLeaf:         "Cannot inherit from leaf or final classifier",
		SemaRootHasParent:       "Root classifier cannot have parents",
		SemaRealizationKind:     "Invalid realization",
		SemaEnumWhole:           "Enumeration cannot be the whole of a composition",
		SemaPackageTarget:       "Package used as relationship target",
		SemaCycleDetected:       "Inheritance cycle",
		PrjUnknownLanguage:      "Unknown language plugin",
		PrjBadManifest:          "Invalid project manifest",
	}

	// codeNames are stable symbolic identifiers exposed to editors and the CLI.
	codeNames = map[Code]string{
		UnknownCode:             "UNKNOWN",
		LexUnknownChar:          "LEXICAL_UNKNOWN_CHARACTER",
		LexUnterminatedString:   "LEXICAL_UNTERMINATED_STRING",
		LexUnterminatedComment:  "LEXICAL_UNTERMINATED_COMMENT",
		LexBadNumber:            "LEXICAL_BAD_NUMBER",
		SynUnexpectedToken:      "SYNTAX_UNEXPECTED_TOKEN",
		SynExpectIdentifier:     "SYNTAX_EXPECTED_IDENTIFIER",
		SynPackageNameExpected:  "SYNTAX_PACKAGE_NAME_EXPECTED",
		SynExpectLBrace:         "SYNTAX_EXPECTED_LBRACE",
		SynExpectRBrace:         "SYNTAX_EXPECTED_RBRACE",
		SynExpectType:           "SYNTAX_EXPECTED_TYPE",
		SynBadMultiplicity:      "SYNTAX_BAD_MULTIPLICITY",
		SynUnexpectedMember:     "SYNTAX_UNEXPECTED_MEMBER",
		SynUnexpectedTopLevel:   "SYNTAX_UNEXPECTED_STATEMENT",
		SynExpectColon:          "SYNTAX_EXPECTED_COLON",
		SynExpectRParen:         "SYNTAX_EXPECTED_RPAREN",
		SynExpectValue:          "SYNTAX_EXPECTED_VALUE",
		SynExpectRelOp:          "SYNTAX_EXPECTED_RELATIONSHIP",
		SynExpectGt:             "SYNTAX_EXPECTED_GT",
		SynExpectString:         "SYNTAX_EXPECTED_STRING",
		SynExpectComma:          "SYNTAX_EXPECTED_COMMA",
		SynInvalidModifier:      "SYNTAX_INVALID_MODIFIER",
		SynNestingTooDeep:       "SYNTAX_NESTING_TOO_DEEP",
		IOLoadFileError:         "IO_LOAD_FAILED",
		SemaInternal:            "SEMANTIC_INTERNAL_ERROR",
		SemaDuplicateDefinition: "SEMANTIC_DUPLICATE_DEFINITION",
		SemaKindConflict:        "SEMANTIC_KIND_CONFLICT",
		SemaDuplicateMember:     "SEMANTIC_DUPLICATE_MEMBER",
		SemaAmbiguousEntity:     "SEMANTIC_AMBIGUOUS_ENTITY",
		SemaInvalidAssocArity:   "SEMANTIC_INVALID_ASSOCIATION_CLASS",
		SemaXorArity:            "SEMANTIC_XOR_ARITY",
		SemaUnknownConfigKey:    "SEMANTIC_UNKNOWN_CONFIG",
		SemaInlineEnumConflict:  "SEMANTIC_INLINE_ENUM_CONFLICT",
		SemaAbstractLeaf:        "SEMANTIC_ABSTRACT_LEAF",
		SemaInheritanceKind:     "SEMANTIC_INHERITANCE_MISMATCH",
		SemaExtendsLeaf:         "SEMANTIC_EXTENDS_LEAF",
		SemaRootHasParent:       "SEMANTIC_ROOT_HAS_PARENT",
		SemaRealizationKind:     "SEMANTIC_REALIZATION_MISMATCH",
		SemaEnumWhole:           "SEMANTIC_ENUM_WHOLE",
		SemaPackageTarget:       "SEMANTIC_PACKAGE_TARGET",
		SemaCycleDetected:       "SEMANTIC_CYCLE_DETECTED",
		PrjUnknownLanguage:      "PROJECT_UNKNOWN_LANGUAGE",
		PrjBadManifest:          "PROJECT_BAD_MANIFEST",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Name returns the stable symbolic identifier, e.g. SEMANTIC_CYCLE_DETECTED.
func (c Code) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[UnknownCode]
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
