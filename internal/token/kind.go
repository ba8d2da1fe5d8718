package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown is produced for a rune no matcher accepts.
	Unknown Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	StringLit
	NumberLit
	Comment    // line comment: // ...
	DocComment // /** ... */

	KwPackage   // package
	KwClass     // class
	KwInterface // interface
	KwEnum      // enum
	KwDataType  // datatype
	KwAbstract  // abstract
	KwStatic    // static
	KwFinal     // final
	KwLeaf      // leaf
	KwRoot      // root
	KwXor       // xor
	KwNote      // note
	KwConfig    // config
	KwFor       // for
	KwTrue      // true
	KwFalse     // false

	// Relationship operators.
	Generalization // >>
	Realization    // >I
	Composition    // >*
	Aggregation    // >+
	Association    // >-
	AssocBidir     // <>
	AssocPlain     // --
	Dependency     // ..>
	Range          // ..

	// Visibility marks.
	Plus  // +
	Minus // -
	Hash  // #
	Tilde // ~

	// Modifier marks.
	Dollar // $
	Star   // *
	Amp    // &
	Bang   // !
	Caret  // ^

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Lt        // <
	Gt        // >
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Pipe      // |
	Assign    // =
	At        // @
	Question  // ?
	Slash     // /

	// PluginBase is the first kind available to language plugins.
	// Plugins allocate their own kinds as PluginBase+n.
	PluginBase Kind = 200
)

var kindNames = [...]string{
	Unknown:        "UNKNOWN",
	EOF:            "EOF",
	Ident:          "IDENTIFIER",
	StringLit:      "STRING",
	NumberLit:      "NUMBER",
	Comment:        "COMMENT",
	DocComment:     "DOC_COMMENT",
	KwPackage:      "KW_PACKAGE",
	KwClass:        "KW_CLASS",
	KwInterface:    "KW_INTERFACE",
	KwEnum:         "KW_ENUM",
	KwDataType:     "KW_DATATYPE",
	KwAbstract:     "KW_ABSTRACT",
	KwStatic:       "KW_STATIC",
	KwFinal:        "KW_FINAL",
	KwLeaf:         "KW_LEAF",
	KwRoot:         "KW_ROOT",
	KwXor:          "KW_XOR",
	KwNote:         "KW_NOTE",
	KwConfig:       "KW_CONFIG",
	KwFor:          "KW_FOR",
	KwTrue:         "KW_TRUE",
	KwFalse:        "KW_FALSE",
	Generalization: "OP_INHERIT",
	Realization:    "OP_IMPLEMENT",
	Composition:    "OP_COMPOSE",
	Aggregation:    "OP_AGGREGATE",
	Association:    "OP_ASSOC",
	AssocBidir:     "OP_ASSOC_BIDIR",
	AssocPlain:     "OP_ASSOC_PLAIN",
	Dependency:     "OP_DEPENDENCY",
	Range:          "RANGE",
	Plus:           "PLUS",
	Minus:          "MINUS",
	Hash:           "HASH",
	Tilde:          "TILDE",
	Dollar:         "DOLLAR",
	Star:           "STAR",
	Amp:            "AMPERSAND",
	Bang:           "BANG",
	Caret:          "CARET",
	LParen:         "LPAREN",
	RParen:         "RPAREN",
	LBrace:         "LBRACE",
	RBrace:         "RBRACE",
	LBracket:       "LBRACKET",
	RBracket:       "RBRACKET",
	Lt:             "LT",
	Gt:             "GT",
	Comma:          "COMMA",
	Colon:          "COLON",
	Semicolon:      "SEMICOLON",
	Dot:            "DOT",
	Pipe:           "PIPE",
	Assign:         "EQUALS",
	At:             "AT",
	Question:       "QUESTION",
	Slash:          "SLASH",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if k >= PluginBase {
		if name, ok := pluginKindNames[k]; ok {
			return name
		}
		return "PLUGIN_TOKEN"
	}
	return "UNKNOWN"
}

var pluginKindNames = map[Kind]string{}

// RegisterKindName names a plugin-allocated kind for dumps and diagnostics.
// It must be called during plugin registration, before any concurrent use.
func RegisterKindName(k Kind, name string) {
	if k < PluginBase {
		return
	}
	pluginKindNames[k] = name
}
