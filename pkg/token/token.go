// Package token defines the lexical tokens produced by the Pebble lexer.
package token

import "fmt"

// Kind identifies the variant of a Token.
type Kind int

const (
	Eof Kind = iota
	Newline
	Indent
	Dedent

	Number
	Id
	String
	Char

	Class
	Return
	If
	Else
	Def
	Print
	And
	Or
	Not
	None
	True
	False

	Eq
	NotEq
	LessOrEq
	GreaterOrEq
)

var keywords = map[string]Kind{
	"class":  Class,
	"return": Return,
	"if":     If,
	"else":   Else,
	"def":    Def,
	"print":  Print,
	"and":    And,
	"or":     Or,
	"not":    Not,
	"None":   None,
	"True":   True,
	"False":  False,
}

// Lookup reports whether word is a keyword, returning its Kind if so.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

var names = map[Kind]string{
	Eof:          "Eof",
	Newline:      "Newline",
	Indent:       "Indent",
	Dedent:       "Dedent",
	Number:       "Number",
	Id:           "Id",
	String:       "String",
	Char:         "Char",
	Class:        "Class",
	Return:       "Return",
	If:           "If",
	Else:         "Else",
	Def:          "Def",
	Print:        "Print",
	And:          "And",
	Or:           "Or",
	Not:          "Not",
	None:         "None",
	True:         "True",
	False:        "False",
	Eq:           "Eq",
	NotEq:        "NotEq",
	LessOrEq:     "LessOrEq",
	GreaterOrEq:  "GreaterOrEq",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a tagged lexical unit. Only the field matching Kind is
// meaningful: NumberVal for Number, Text for Id/String, Ch for Char.
type Token struct {
	Kind      Kind
	Text      string
	NumberVal int32
	Ch        byte
	Line      int
}

// Equal reports whether two tokens carry the same variant and payload.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Number:
		return t.NumberVal == o.NumberVal
	case Id, String:
		return t.Text == o.Text
	case Char:
		return t.Ch == o.Ch
	default:
		return true
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("Number(%d)", t.NumberVal)
	case Id:
		return fmt.Sprintf("Id(%s)", t.Text)
	case String:
		return fmt.Sprintf("String(%q)", t.Text)
	case Char:
		return fmt.Sprintf("Char(%c)", t.Ch)
	default:
		return t.Kind.String()
	}
}
