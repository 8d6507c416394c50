package lexer

import (
	"testing"

	"github.com/pebblelang/pebble/pkg/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	l, err := New([]byte(src))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var toks []token.Token
	toks = append(toks, l.Current())
	for toks[len(toks)-1].Kind != token.Eof {
		tok, err := l.Advance()
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func assertKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v tokens, want %v tokens\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	toks := tokenize(t, "a = 1")
	assertKinds(t, toks, token.Id, token.Char, token.Number, token.Newline, token.Eof)
	if toks[0].Text != "a" {
		t.Fatalf("expected identifier text 'a', got %q", toks[0].Text)
	}
	if toks[1].Ch != '=' {
		t.Fatalf("expected Char '=', got %q", toks[1].Ch)
	}
	if toks[2].NumberVal != 1 {
		t.Fatalf("expected Number 1, got %d", toks[2].NumberVal)
	}
}

func TestCompoundOperatorsAreSingleTokens(t *testing.T) {
	toks := tokenize(t, "a <= b == c != d >= e")
	assertKinds(t, toks,
		token.Id, token.LessOrEq, token.Id, token.Eq, token.Id,
		token.NotEq, token.Id, token.GreaterOrEq, token.Id,
		token.Newline, token.Eof)
}

func TestBlankLineDoesNotEmitExtraNewline(t *testing.T) {
	toks := tokenize(t, "a = 1\n\nb = 2\n")
	assertKinds(t, toks,
		token.Id, token.Char, token.Number, token.Newline,
		token.Id, token.Char, token.Number, token.Newline,
		token.Eof)
}

func TestLeadingBlankLinesAreSkipped(t *testing.T) {
	withBlank := kinds(tokenize(t, "\n\na = 1\n"))
	without := kinds(tokenize(t, "a = 1\n"))
	if len(withBlank) != len(without) {
		t.Fatalf("leading blank lines changed the token stream: %v vs %v", withBlank, without)
	}
	for i := range without {
		if withBlank[i] != without[i] {
			t.Fatalf("leading blank lines changed token %d: %v vs %v", i, withBlank, without)
		}
	}
}

func TestIndentAndDedent(t *testing.T) {
	src := "if a:\n  b = 1\nc = 2\n"
	toks := tokenize(t, src)
	assertKinds(t, toks,
		token.If, token.Id, token.Char, token.Newline,
		token.Indent,
		token.Id, token.Char, token.Number, token.Newline,
		token.Dedent,
		token.Id, token.Char, token.Number, token.Newline,
		token.Eof)
}

func TestMultipleDedentsAtOnce(t *testing.T) {
	src := "if a:\n  if b:\n    c = 1\nd = 2\n"
	toks := tokenize(t, src)
	assertKinds(t, toks,
		token.If, token.Id, token.Char, token.Newline,
		token.Indent,
		token.If, token.Id, token.Char, token.Newline,
		token.Indent,
		token.Id, token.Char, token.Number, token.Newline,
		token.Dedent, token.Dedent,
		token.Id, token.Char, token.Number, token.Newline,
		token.Eof)
}

func TestFinalDedentsAndEofAfterUnterminatedIndent(t *testing.T) {
	src := "if a:\n  b = 1"
	toks := tokenize(t, src)
	assertKinds(t, toks,
		token.If, token.Id, token.Char, token.Newline,
		token.Indent,
		token.Id, token.Char, token.Number,
		token.Newline, token.Dedent, token.Eof)
}

func TestCommentOnlyLineEmitsNoNewline(t *testing.T) {
	toks := tokenize(t, "a = 1\n# a comment\nb = 2\n")
	assertKinds(t, toks,
		token.Id, token.Char, token.Number, token.Newline,
		token.Id, token.Char, token.Number, token.Newline,
		token.Eof)
}

func TestTrailingCommentActsLikeNewline(t *testing.T) {
	toks := tokenize(t, "a = 1 # trailing\nb = 2\n")
	assertKinds(t, toks,
		token.Id, token.Char, token.Number, token.Newline,
		token.Id, token.Char, token.Number, token.Newline,
		token.Eof)
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\t\"c\""`)
	if toks[0].Kind != token.String {
		t.Fatalf("expected String token, got %v", toks[0].Kind)
	}
	want := "a\nb\t\"c\""
	if toks[0].Text != want {
		t.Fatalf("got %q, want %q", toks[0].Text, want)
	}
}

// drainForError scans src to completion or to the first error, whichever
// comes first, since an error partway through a token stream only surfaces
// on a later Advance call rather than from New itself.
func drainForError(src string) error {
	l, err := New([]byte(src))
	if err != nil {
		return err
	}
	for l.Current().Kind != token.Eof {
		if _, err := l.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	if err := drainForError(`"unterminated`); err == nil {
		t.Fatal("expected a LexError for an unterminated string")
	}
}

func TestBareBangIsLexError(t *testing.T) {
	if err := drainForError("a ! b"); err == nil {
		t.Fatal("expected a LexError for '!' not followed by '='")
	}
}

func TestOddIndentIsLexError(t *testing.T) {
	if err := drainForError("if a:\n b = 1\n"); err == nil {
		t.Fatal("expected a LexError for an odd number of leading spaces")
	}
}

func TestIndentJumpOfMoreThanOneLevelIsLexError(t *testing.T) {
	if err := drainForError("if a:\n    b = 1\n"); err == nil {
		t.Fatal("expected a LexError for an indent jump greater than one level")
	}
}

func TestTabInIndentationIsLexError(t *testing.T) {
	if err := drainForError("if a:\n\tb = 1\n"); err == nil {
		t.Fatal("expected a LexError for a tab in leading indentation")
	}
}

func TestKeywordsAreNotIdentifiers(t *testing.T) {
	toks := tokenize(t, "class return if else def print and or not None True False")
	assertKinds(t, toks,
		token.Class, token.Return, token.If, token.Else, token.Def, token.Print,
		token.And, token.Or, token.Not, token.None, token.True, token.False,
		token.Newline, token.Eof)
}
