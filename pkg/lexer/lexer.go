// Package lexer turns Pebble source text into a stream of tokens,
// tracking significant indentation the way the language's grammar requires.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/pebblelang/pebble/pkg/token"
)

// LexError reports a malformed token or indentation sequence.
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Lexer scans Pebble source one token at a time.
type Lexer struct {
	src    []byte
	pos    int
	line   int
	indent int

	pendingDedents int
	atLineStart    bool
	eofDone        bool

	lastKind token.Kind
	current  token.Token
}

// New constructs a Lexer and primes it with the first token, matching the
// contract that current() holds a real token immediately after construction.
func New(src []byte) (*Lexer, error) {
	l := &Lexer{
		src:         src,
		line:        1,
		atLineStart: true,
		lastKind:    token.Newline,
	}
	if _, err := l.Advance(); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the most recently produced token.
func (l *Lexer) Current() token.Token { return l.current }

// Advance scans and returns the next token, also updating Current.
func (l *Lexer) Advance() (token.Token, error) {
	tok, err := l.next()
	if err != nil {
		return token.Token{}, err
	}
	l.current = tok
	return tok, nil
}

func (l *Lexer) emit(tok token.Token) token.Token {
	l.lastKind = tok.Kind
	return tok
}

func (l *Lexer) next() (token.Token, error) {
	for {
		if l.pendingDedents > 0 {
			l.pendingDedents--
			return l.emit(token.Token{Kind: token.Dedent, Line: l.line}), nil
		}
		if l.eofDone {
			return l.emit(token.Token{Kind: token.Eof, Line: l.line}), nil
		}
		if l.atLineStart {
			tok, done, err := l.startLine()
			if err != nil {
				return token.Token{}, err
			}
			if done {
				return tok, nil
			}
			continue
		}
		return l.scanInline()
	}
}

// startLine consumes blank and comment-only lines, then resolves the
// indentation of the first line carrying real content (or EOF). It returns
// done=false to tell next() to loop back to the top-level dispatch (e.g.
// because pendingDedents or eofDone were just armed), or done=true with a
// token that must be returned immediately (an Indent, a Dedent, or the
// synthetic end-of-input Newline).
func (l *Lexer) startLine() (token.Token, bool, error) {
	for {
		spaces, err := l.countIndentSpaces()
		if err != nil {
			return token.Token{}, false, err
		}

		if l.pos >= len(l.src) {
			return l.resolveEOF()
		}

		switch l.src[l.pos] {
		case '\n':
			l.pos++
			l.line++
			continue
		case '#':
			l.skipLine()
			continue
		default:
			return l.resolveIndent(spaces)
		}
	}
}

func (l *Lexer) countIndentSpaces() (int, error) {
	count := 0
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ':
			count++
			l.pos++
		case '\t':
			return 0, &LexError{Line: l.line, Msg: "tab characters are not permitted in indentation"}
		default:
			return count, nil
		}
	}
	return count, nil
}

// skipLine consumes the remainder of a comment, including its terminating
// newline if present, without touching indentation state.
func (l *Lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++
		l.line++
	}
}

func (l *Lexer) resolveIndent(spaces int) (token.Token, bool, error) {
	diff := spaces - l.indent
	switch {
	case diff == 0:
		l.atLineStart = false
		return token.Token{}, false, nil
	case diff == 2:
		l.indent = spaces
		l.atLineStart = false
		return l.emit(token.Token{Kind: token.Indent, Line: l.line}), true, nil
	case diff%2 != 0:
		return token.Token{}, false, &LexError{Line: l.line, Msg: "indentation is not a multiple of two spaces"}
	case diff > 0:
		return token.Token{}, false, &LexError{Line: l.line, Msg: "indentation increased by more than one level"}
	default:
		k := -diff / 2
		l.indent = spaces
		l.atLineStart = false
		l.pendingDedents = k - 1
		return l.emit(token.Token{Kind: token.Dedent, Line: l.line}), true, nil
	}
}

// resolveEOF arms the trailing Newline/Dedent*/Eof sequence and either
// returns the synthetic Newline now (done=true) or hands control back to
// next()'s dispatch loop (done=false) when no synthetic Newline is owed.
func (l *Lexer) resolveEOF() (token.Token, bool, error) {
	needsNewline := l.lastKind != token.Newline

	l.pendingDedents = l.indent / 2
	l.indent = 0
	l.eofDone = true

	if needsNewline {
		return l.emit(token.Token{Kind: token.Newline, Line: l.line}), true, nil
	}
	return token.Token{}, false, nil
}

// scanInline scans within a line whose indentation has already been
// resolved: whitespace, comments, a real token, or the line's terminator.
func (l *Lexer) scanInline() (token.Token, error) {
	for {
		if l.pos >= len(l.src) {
			l.atLineStart = true
			return l.next()
		}
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
			continue
		case '#':
			l.skipInlineComment()
			continue
		case '\n':
			l.pos++
			if l.lastKind == token.Newline {
				l.line++
				l.atLineStart = true
				return l.next()
			}
			tok := l.emit(token.Token{Kind: token.Newline, Line: l.line})
			l.line++
			l.atLineStart = true
			return tok, nil
		}
		break
	}
	return l.scanToken()
}

func (l *Lexer) skipInlineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) scanToken() (token.Token, error) {
	ch := l.src[l.pos]
	line := l.line

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch):
		return l.scanIdentifier()
	case ch == '"' || ch == '\'':
		return l.scanString()
	}

	switch ch {
	case '=':
		if l.peek(1) == '=' {
			l.pos += 2
			return l.emit(token.Token{Kind: token.Eq, Line: line}), nil
		}
		l.pos++
		return l.emit(token.Token{Kind: token.Char, Ch: '=', Line: line}), nil
	case '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return l.emit(token.Token{Kind: token.NotEq, Line: line}), nil
		}
		return token.Token{}, &LexError{Line: line, Msg: "'!' not followed by '='"}
	case '<':
		if l.peek(1) == '=' {
			l.pos += 2
			return l.emit(token.Token{Kind: token.LessOrEq, Line: line}), nil
		}
		l.pos++
		return l.emit(token.Token{Kind: token.Char, Ch: '<', Line: line}), nil
	case '>':
		if l.peek(1) == '=' {
			l.pos += 2
			return l.emit(token.Token{Kind: token.GreaterOrEq, Line: line}), nil
		}
		l.pos++
		return l.emit(token.Token{Kind: token.Char, Ch: '>', Line: line}), nil
	default:
		l.pos++
		return l.emit(token.Token{Kind: token.Char, Ch: ch, Line: line}), nil
	}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) scanNumber() (token.Token, error) {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return token.Token{}, &LexError{Line: line, Msg: fmt.Sprintf("invalid number literal %q", text)}
	}
	return l.emit(token.Token{Kind: token.Number, NumberVal: int32(n), Line: line}), nil
}

func (l *Lexer) scanIdentifier() (token.Token, error) {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && isAlphaNumeric(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if kind, ok := token.Lookup(text); ok {
		return l.emit(token.Token{Kind: kind, Text: text, Line: line}), nil
	}
	return l.emit(token.Token{Kind: token.Id, Text: text, Line: line}), nil
}

func (l *Lexer) scanString() (token.Token, error) {
	quote := l.src[l.pos]
	line := l.line
	l.pos++

	var out []byte
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, &LexError{Line: line, Msg: "unterminated string literal"}
		}
		ch := l.src[l.pos]
		if ch == quote {
			l.pos++
			break
		}
		if ch == '\n' {
			return token.Token{}, &LexError{Line: line, Msg: "unterminated string literal"}
		}
		if ch == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token.Token{}, &LexError{Line: line, Msg: "unterminated string literal"}
			}
			out = append(out, unescape(l.src[l.pos]))
			l.pos++
			continue
		}
		out = append(out, ch)
		l.pos++
	}
	return l.emit(token.Token{Kind: token.String, Text: string(out), Line: line}), nil
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '"':
		return '"'
	case '\'':
		return '\''
	case '\\':
		return '\\'
	default:
		return ch
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch byte) bool { return isAlpha(ch) || isDigit(ch) }
