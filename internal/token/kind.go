package token

// Kind represents the lexical category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOS marks the end of the source stream.
	EOS

	// Ident is an identifier.
	Ident
	// Keyword is any reserved word other than null/true/false.
	Keyword
	// Null is the null literal keyword.
	Null
	// True is the true literal keyword.
	True
	// False is the false literal keyword.
	False

	// Number is a numeric literal.
	Number
	// String is a quoted string literal.
	String
	// Template is a back-quoted template literal.
	Template
	// RegExp is a regular expression literal.
	RegExp

	// Punctuator is any operator or punctuation not listed below.
	Punctuator
	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
	LBrack // [
	RBrack // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOS:        "EOS",
	Ident:      "Ident",
	Keyword:    "Keyword",
	Null:       "Null",
	True:       "True",
	False:      "False",
	Number:     "Number",
	String:     "String",
	Template:   "Template",
	RegExp:     "RegExp",
	Punctuator: "Punctuator",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBrack:     "LBrack",
	RBrack:     "RBrack",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Class groups kinds into the coarse lexical classes used for matching.
type Class uint8

const (
	ClassIllegal Class = iota
	ClassEOS
	ClassIdent
	ClassKeyword
	ClassNumericLiteral
	ClassStringLiteral
	ClassTemplateElement
	ClassRegularExpression
	ClassPunctuator
)

// Class reports the lexical class of k.
func (k Kind) Class() Class {
	switch k {
	case EOS:
		return ClassEOS
	case Ident:
		return ClassIdent
	case Keyword, Null, True, False:
		return ClassKeyword
	case Number:
		return ClassNumericLiteral
	case String:
		return ClassStringLiteral
	case Template:
		return ClassTemplateElement
	case RegExp:
		return ClassRegularExpression
	case Punctuator, LParen, RParen, LBrace, RBrace, LBrack, RBrack:
		return ClassPunctuator
	default:
		return ClassIllegal
	}
}

// Opening reports whether k opens a delimiter group.
func (k Kind) Opening() bool {
	return k == LParen || k == LBrace || k == LBrack
}

// Closing reports whether k closes a delimiter group.
func (k Kind) Closing() bool {
	return k == RParen || k == RBrace || k == RBrack
}

// Closer returns the kind that closes the delimiter opened by k, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBrack:
		return RBrack
	}
	return Invalid
}
