package lang

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// Scan tokenizes preprocessed EDL source in a single pass.
// The returned slice always ends with a [KindEOF] token. Scanning is
// one-shot and non-resumable: the first unrecognized character aborts the
// scan with an error of kind [LexError].
func Scan(src string) ([]Token, error) {
	s := &scanner{input: src, line: 1, col: 1}

	return s.run()
}

// scanner holds the lexer state.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func (s *scanner) run() ([]Token, error) {
	toks := make([]Token, 0, 64)

	for !s.eof() {
		ch := s.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()

		case ch == '/':
			s.skipComment()

		case ch == '\'' || ch == '"':
			tok, err := s.scanString(ch)
			if err != nil {
				return nil, err
			}

			toks = append(toks, tok)

		case ch == '.':
			pos := s.position()
			s.advance()

			if s.peek() == '.' {
				s.advance()

				toks = append(toks, Token{Kind: KindEllipsis, Text: "..", Pos: pos})
			} else {
				toks = append(toks, Token{Kind: KindPoint, Text: ".", Pos: pos})
			}

		case ch == '<':
			pos := s.position()
			s.advance()

			if s.peek() != '-' {
				return nil, ErrLex.WithPosition(pos).
					With(slog.String("text", "<"))
			}

			s.advance()

			toks = append(toks, Token{Kind: KindJunction, Text: "<-", Pos: pos})

		case isDigit(ch):
			toks = append(toks, s.scanNumber())

		case isIdentStart(ch):
			toks = append(toks, s.scanWord())

		default:
			kind, ok := punct[ch]
			if !ok {
				return nil, ErrLex.WithPosition(s.position()).
					With(slog.String("text", string(ch)))
			}

			toks = append(toks, Token{Kind: kind, Text: string(ch), Pos: s.position()})
			s.advance()
		}
	}

	toks = append(toks, Token{Kind: KindEOF, Text: "", Pos: s.position()})

	return toks, nil
}

// punct maps single-character punctuation to token kinds.
// "." and "<" need lookahead and are handled separately.
var punct = map[rune]Kind{
	'$': KindSigil,
	';': KindSemicolon,
	':': KindColon,
	',': KindComma,
	'+': KindConcat,
	'-': KindMinus,
	'=': KindAssign,
	'~': KindTilde,
	'{': KindLBrace,
	'}': KindRBrace,
	'[': KindLBracket,
	']': KindRBracket,
	'(': KindLParen,
	')': KindRParen,
}

// skipComment discards a "/ ... /" comment. Quoted strings inside the
// comment are skipped whole so a delimiter within them does not close the
// comment. A comment left open at end of input is accepted.
func (s *scanner) skipComment() {
	s.advance() // opening '/'

	for !s.eof() {
		ch := s.peek()
		if ch == '/' {
			s.advance()

			return
		}

		if ch == '\'' || ch == '"' {
			s.skipQuoted(ch)

			continue
		}

		s.advance()
	}
}

// skipQuoted consumes a quoted run, including both delimiters.
func (s *scanner) skipQuoted(quote rune) {
	s.advance()

	for !s.eof() {
		if s.peek() == quote {
			s.advance()

			return
		}

		s.advance()
	}
}

func (s *scanner) scanString(quote rune) (Token, error) {
	pos := s.position()
	s.advance()

	start := s.pos
	for !s.eof() && s.peek() != quote {
		s.advance()
	}

	if s.eof() {
		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("text", "unterminated string"))
	}

	text := s.input[start:s.pos]
	s.advance() // closing quote

	return Token{Kind: KindString, Text: text, Pos: pos}, nil
}

func (s *scanner) scanNumber() Token {
	pos := s.position()
	start := s.pos

	for !s.eof() && isDigit(s.peek()) {
		s.advance()
	}

	// A single decimal point makes it a float. ".." after the integer
	// part is an ellipsis, not a fraction.
	if !s.eof() && s.peek() == '.' && !s.ellipsisAhead() {
		s.advance()

		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}

		return Token{Kind: KindFloat, Text: s.input[start:s.pos], Pos: pos}
	}

	return Token{Kind: KindInt, Text: s.input[start:s.pos], Pos: pos}
}

func (s *scanner) scanWord() Token {
	pos := s.position()
	start := s.pos

	for !s.eof() && isIdentContinue(s.peek()) {
		s.advance()
	}

	word := s.input[start:s.pos]
	if tok, ok := keywords[word]; ok {
		tok.Pos = pos

		return tok
	}

	return Token{Kind: KindIdent, Text: word, Pos: pos}
}

// ellipsisAhead reports whether the next two characters are "..".
func (s *scanner) ellipsisAhead() bool {
	if s.pos+1 >= len(s.input) {
		return false
	}

	return s.input[s.pos] == '.' && s.input[s.pos+1] == '.'
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
