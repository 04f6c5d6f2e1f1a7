package token

var keywords = map[string]Kind{
	"break":      Keyword,
	"case":       Keyword,
	"catch":      Keyword,
	"class":      Keyword,
	"const":      Keyword,
	"continue":   Keyword,
	"debugger":   Keyword,
	"default":    Keyword,
	"delete":     Keyword,
	"do":         Keyword,
	"else":       Keyword,
	"export":     Keyword,
	"extends":    Keyword,
	"finally":    Keyword,
	"for":        Keyword,
	"function":   Keyword,
	"if":         Keyword,
	"import":     Keyword,
	"in":         Keyword,
	"instanceof": Keyword,
	"new":        Keyword,
	"return":     Keyword,
	"super":      Keyword,
	"switch":     Keyword,
	"this":       Keyword,
	"throw":      Keyword,
	"try":        Keyword,
	"typeof":     Keyword,
	"var":        Keyword,
	"void":       Keyword,
	"while":      Keyword,
	"with":       Keyword,
	"null":       Null,
	"true":       True,
	"false":      False,
}

// LookupKeyword reports the keyword-class kind for ident. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// punctKinds maps delimiter text to its dedicated kind; every other
// punctuator is Punctuator.
var punctKinds = map[string]Kind{
	"(": LParen,
	")": RParen,
	"{": LBrace,
	"}": RBrace,
	"[": LBrack,
	"]": RBrack,
}

// PunctuatorKind returns the kind for punctuator text.
func PunctuatorKind(text string) Kind {
	if k, ok := punctKinds[text]; ok {
		return k
	}
	return Punctuator
}
