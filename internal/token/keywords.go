package token

var keywords = map[string]Kind{
	"package":   KwPackage,
	"class":     KwClass,
	"interface": KwInterface,
	"enum":      KwEnum,
	"datatype":  KwDataType,
	"abstract":  KwAbstract,
	"static":    KwStatic,
	"final":     KwFinal,
	"leaf":      KwLeaf,
	"root":      KwRoot,
	"xor":       KwXor,
	"note":      KwNote,
	"config":    KwConfig,
	"for":       KwFor,
	"true":      KwTrue,
	"false":     KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
