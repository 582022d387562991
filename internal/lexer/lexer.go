// Package lexer provides tokenization for TypeScript source code.
//
// The lexer converts a TypeScript source string into a sequence of tokens,
// handling:
// - Keywords, including TypeScript-only contextual words
// - Identifiers (including Unicode letters)
// - Numeric literals (int, float, hex, binary, octal, exponents)
// - String literals (single and double quoted) and template literals
// - Operators and punctuation
// - Comments (line and block), which are collected rather than discarded
//   so that pragma annotations such as "@jsx" can be scanned later
package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ----------------------------------------------------------------------------
// Token Types
// ----------------------------------------------------------------------------

// TokenKind represents the type of a token.
type TokenKind uint8

const (
	TokError TokenKind = iota
	TokEOF

	// Literals
	TokNumber
	TokString
	TokTemplate

	// Identifiers
	TokIdent

	// JavaScript keywords
	TokBreak
	TokCase
	TokCatch
	TokClass
	TokConst
	TokContinue
	TokDefault
	TokDelete
	TokDo
	TokElse
	TokEnum
	TokExport
	TokExtends
	TokFalse
	TokFinally
	TokFor
	TokFunction
	TokIf
	TokImport
	TokIn
	TokInstanceof
	TokLet
	TokNew
	TokNull
	TokReturn
	TokStatic
	TokSuper
	TokSwitch
	TokThis
	TokThrow
	TokTrue
	TokTry
	TokTypeof
	TokVar
	TokVoid
	TokWhile

	// Contextual keywords (JavaScript)
	TokAs
	TokAsync
	TokAwait
	TokFrom
	TokGet
	TokOf
	TokSet

	// TypeScript-only keywords
	TokAbstract
	TokDeclare
	TokImplements
	TokInterface
	TokIs
	TokKeyof
	TokModule
	TokNamespace
	TokPrivate
	TokProtected
	TokPublic
	TokReadonly
	TokRequire
	TokSatisfies
	TokType

	// Operators
	TokPlus     // +
	TokMinus    // -
	TokStar     // *
	TokSlash    // /
	TokPercent  // %
	TokAmp      // &
	TokPipe     // |
	TokCaret    // ^
	TokTilde    // ~
	TokBang     // !
	TokLt       // <
	TokGt       // >
	TokEq       // =
	TokQuestion // ?
	TokAt       // @

	// Multi-char operators
	TokPlusPlus   // ++
	TokMinusMinus // --
	TokAmpAmp     // &&
	TokPipePipe   // ||
	TokLtLt       // <<
	TokGtGt       // >>
	TokGtGtGt     // >>>
	TokLtEq       // <=
	TokGtEq       // >=
	TokEqEq       // ==
	TokEqEqEq     // ===
	TokBangEq     // !=
	TokBangEqEq   // !==
	TokArrow      // =>
	TokPlusEq     // +=
	TokMinusEq    // -=
	TokStarEq     // *=
	TokSlashEq    // /=
	TokPercentEq  // %=
	TokAmpEq      // &=
	TokPipeEq     // |=
	TokCaretEq    // ^=
	TokDotDotDot  // ...

	// Delimiters
	TokLParen    // (
	TokRParen    // )
	TokLBrace    // {
	TokRBrace    // }
	TokLBracket  // [
	TokRBracket  // ]
	TokSemicolon // ;
	TokColon     // :
	TokComma     // ,
	TokDot       // .
)

// String returns the string representation of a token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown"
}

var tokenNames = [...]string{
	TokError:    "error",
	TokEOF:      "EOF",
	TokNumber:   "number",
	TokString:   "string",
	TokTemplate: "template",
	TokIdent:    "identifier",
	// Keywords
	TokBreak:      "break",
	TokCase:       "case",
	TokCatch:      "catch",
	TokClass:      "class",
	TokConst:      "const",
	TokContinue:   "continue",
	TokDefault:    "default",
	TokDelete:     "delete",
	TokDo:         "do",
	TokElse:       "else",
	TokEnum:       "enum",
	TokExport:     "export",
	TokExtends:    "extends",
	TokFalse:      "false",
	TokFinally:    "finally",
	TokFor:        "for",
	TokFunction:   "function",
	TokIf:         "if",
	TokImport:     "import",
	TokIn:         "in",
	TokInstanceof: "instanceof",
	TokLet:        "let",
	TokNew:        "new",
	TokNull:       "null",
	TokReturn:     "return",
	TokStatic:     "static",
	TokSuper:      "super",
	TokSwitch:     "switch",
	TokThis:       "this",
	TokThrow:      "throw",
	TokTrue:       "true",
	TokTry:        "try",
	TokTypeof:     "typeof",
	TokVar:        "var",
	TokVoid:       "void",
	TokWhile:      "while",
	TokAs:         "as",
	TokAsync:      "async",
	TokAwait:      "await",
	TokFrom:       "from",
	TokGet:        "get",
	TokOf:         "of",
	TokSet:        "set",
	TokAbstract:   "abstract",
	TokDeclare:    "declare",
	TokImplements: "implements",
	TokInterface:  "interface",
	TokIs:         "is",
	TokKeyof:      "keyof",
	TokModule:     "module",
	TokNamespace:  "namespace",
	TokPrivate:    "private",
	TokProtected:  "protected",
	TokPublic:     "public",
	TokReadonly:   "readonly",
	TokRequire:    "require",
	TokSatisfies:  "satisfies",
	TokType:       "type",
	// Operators
	TokPlus:       "+",
	TokMinus:      "-",
	TokStar:       "*",
	TokSlash:      "/",
	TokPercent:    "%",
	TokAmp:        "&",
	TokPipe:       "|",
	TokCaret:      "^",
	TokTilde:      "~",
	TokBang:       "!",
	TokLt:         "<",
	TokGt:         ">",
	TokEq:         "=",
	TokQuestion:   "?",
	TokAt:         "@",
	TokPlusPlus:   "++",
	TokMinusMinus: "--",
	TokAmpAmp:     "&&",
	TokPipePipe:   "||",
	TokLtLt:       "<<",
	TokGtGt:       ">>",
	TokGtGtGt:     ">>>",
	TokLtEq:       "<=",
	TokGtEq:       ">=",
	TokEqEq:       "==",
	TokEqEqEq:     "===",
	TokBangEq:     "!=",
	TokBangEqEq:   "!==",
	TokArrow:      "=>",
	TokPlusEq:     "+=",
	TokMinusEq:    "-=",
	TokStarEq:     "*=",
	TokSlashEq:    "/=",
	TokPercentEq:  "%=",
	TokAmpEq:      "&=",
	TokPipeEq:     "|=",
	TokCaretEq:    "^=",
	TokDotDotDot:  "...",
	TokLParen:     "(",
	TokRParen:     ")",
	TokLBrace:     "{",
	TokRBrace:     "}",
	TokLBracket:   "[",
	TokRBracket:   "]",
	TokSemicolon:  ";",
	TokColon:      ":",
	TokComma:      ",",
	TokDot:        ".",
}

// IsKeyword returns true for keyword tokens (including contextual and
// TypeScript-only keywords). Keyword tokens carry their text in Value so
// they can still be used as member names after "." and as object keys.
func (k TokenKind) IsKeyword() bool {
	return k >= TokBreak && k <= TokType
}

// ----------------------------------------------------------------------------
// Token
// ----------------------------------------------------------------------------

// Token represents a lexical token.
type Token struct {
	Kind  TokenKind
	Start int    // Byte offset in source
	End   int    // Byte offset of end (exclusive)
	Value string // For identifiers, keywords, and literals (raw text)
}

// Text returns the source text of the token.
func (t Token) Text(source string) string {
	if t.Start >= 0 && t.End <= len(source) {
		return source[t.Start:t.End]
	}
	return ""
}

// ----------------------------------------------------------------------------
// Comments
// ----------------------------------------------------------------------------

// Comment is a source comment, kept so pragma annotations can be scanned.
type Comment struct {
	Start int
	End   int
	Text  string // Inner text without the // or /* */ markers
}

// ----------------------------------------------------------------------------
// Keywords
// ----------------------------------------------------------------------------

// Keywords maps keyword strings to their token kinds.
var Keywords = map[string]TokenKind{
	"break":      TokBreak,
	"case":       TokCase,
	"catch":      TokCatch,
	"class":      TokClass,
	"const":      TokConst,
	"continue":   TokContinue,
	"default":    TokDefault,
	"delete":     TokDelete,
	"do":         TokDo,
	"else":       TokElse,
	"enum":       TokEnum,
	"export":     TokExport,
	"extends":    TokExtends,
	"false":      TokFalse,
	"finally":    TokFinally,
	"for":        TokFor,
	"function":   TokFunction,
	"if":         TokIf,
	"import":     TokImport,
	"in":         TokIn,
	"instanceof": TokInstanceof,
	"let":        TokLet,
	"new":        TokNew,
	"null":       TokNull,
	"return":     TokReturn,
	"static":     TokStatic,
	"super":      TokSuper,
	"switch":     TokSwitch,
	"this":       TokThis,
	"throw":      TokThrow,
	"true":       TokTrue,
	"try":        TokTry,
	"typeof":     TokTypeof,
	"var":        TokVar,
	"void":       TokVoid,
	"while":      TokWhile,
	"as":         TokAs,
	"async":      TokAsync,
	"await":      TokAwait,
	"from":       TokFrom,
	"get":        TokGet,
	"of":         TokOf,
	"set":        TokSet,
	"abstract":   TokAbstract,
	"declare":    TokDeclare,
	"implements": TokImplements,
	"interface":  TokInterface,
	"is":         TokIs,
	"keyof":      TokKeyof,
	"module":     TokModule,
	"namespace":  TokNamespace,
	"private":    TokPrivate,
	"protected":  TokProtected,
	"public":     TokPublic,
	"readonly":   TokReadonly,
	"require":    TokRequire,
	"satisfies":  TokSatisfies,
	"type":       TokType,
}

// ----------------------------------------------------------------------------
// Lexer
// ----------------------------------------------------------------------------

// Lexer tokenizes TypeScript source code.
type Lexer struct {
	source   string
	pos      int
	start    int
	tokens   []Token
	comments []Comment
}

// New creates a new lexer for the given source.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		tokens: make([]Token, 0, len(source)/4), // Estimate
	}
}

// Tokenize returns all tokens in the source.
func (l *Lexer) Tokenize() []Token {
	for {
		tok := l.Next()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == TokEOF || tok.Kind == TokError {
			break
		}
	}
	return l.tokens
}

// Comments returns the comments collected while tokenizing, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.source) {
		return Token{Kind: TokEOF, Start: l.pos, End: l.pos}
	}

	l.start = l.pos
	ch := l.source[l.pos]

	// Identifiers and keywords
	if isIdentStart(rune(ch)) || ch >= utf8.RuneSelf {
		return l.scanIdentOrKeyword()
	}

	// Numbers
	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1])) {
		return l.scanNumber()
	}

	// Strings
	if ch == '"' || ch == '\'' {
		return l.scanString(ch)
	}

	// Template literals
	if ch == '`' {
		return l.scanTemplate()
	}

	// Operators and punctuation
	return l.scanOperator()
}

// ----------------------------------------------------------------------------
// Scanning Helpers
// ----------------------------------------------------------------------------

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]

		// Fast path: common ASCII whitespace
		if ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' {
			l.pos++
			continue
		}

		// Line comment
		if ch == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/' {
			start := l.pos
			l.pos += 2
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
			l.comments = append(l.comments, Comment{
				Start: start,
				End:   l.pos,
				Text:  l.source[start+2 : l.pos],
			})
			continue
		}

		// Block comment (no nesting in JavaScript)
		if ch == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '*' {
			start := l.pos
			l.pos += 2
			for l.pos+1 < len(l.source) {
				if l.source[l.pos] == '*' && l.source[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
			end := l.pos
			text := ""
			if end-2 >= start+2 {
				text = l.source[start+2 : end-2]
			}
			l.comments = append(l.comments, Comment{Start: start, End: end, Text: text})
			continue
		}

		break
	}
}

func (l *Lexer) scanIdentOrKeyword() Token {
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIdentContinue(r) {
			break
		}
		l.pos += size
	}

	text := l.source[l.start:l.pos]
	kind := TokIdent
	if kw, ok := Keywords[text]; ok {
		kind = kw
	}
	return Token{Kind: kind, Start: l.start, End: l.pos, Value: text}
}

func (l *Lexer) scanNumber() Token {
	// Hex, binary, octal prefixes
	if l.source[l.pos] == '0' && l.pos+1 < len(l.source) {
		switch l.source[l.pos+1] {
		case 'x', 'X':
			l.pos += 2
			for l.pos < len(l.source) && isHexDigit(l.source[l.pos]) {
				l.pos++
			}
			return l.makeToken(TokNumber)
		case 'b', 'B', 'o', 'O':
			l.pos += 2
			for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
				l.pos++
			}
			return l.makeToken(TokNumber)
		}
	}

	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}

	// Fractional part
	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}

	// Exponent
	if l.pos < len(l.source) && (l.source[l.pos] == 'e' || l.source[l.pos] == 'E') {
		next := l.pos + 1
		if next < len(l.source) && (l.source[next] == '+' || l.source[next] == '-') {
			next++
		}
		if next < len(l.source) && isDigit(l.source[next]) {
			l.pos = next
			for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
				l.pos++
			}
		}
	}

	return l.makeToken(TokNumber)
}

// scanString scans a single- or double-quoted string literal.
// The token Value keeps the quotes so the printer can reuse the raw text.
func (l *Lexer) scanString(quote byte) Token {
	l.pos++ // Opening quote
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '\\' && l.pos+1 < len(l.source) {
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			return l.makeToken(TokString)
		}
		if ch == '\n' {
			break
		}
		l.pos++
	}
	return Token{Kind: TokError, Start: l.start, End: l.pos, Value: "unterminated string literal"}
}

// scanTemplate scans a template literal as a single token, including any
// ${...} substitutions. Braces inside substitutions are balanced; nested
// template literals are handled.
func (l *Lexer) scanTemplate() Token {
	l.pos++ // Opening backtick
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '\\' && l.pos+1 < len(l.source) {
			l.pos += 2
			continue
		}
		if ch == '`' {
			l.pos++
			return l.makeToken(TokTemplate)
		}
		if ch == '$' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '{' {
			l.pos += 2
			depth := 1
			for l.pos < len(l.source) && depth > 0 {
				switch l.source[l.pos] {
				case '{':
					depth++
				case '}':
					depth--
				case '`':
					inner := l.scanTemplate()
					if inner.Kind == TokError {
						return inner
					}
					continue
				}
				l.pos++
			}
			continue
		}
		l.pos++
	}
	return Token{Kind: TokError, Start: l.start, End: l.pos, Value: "unterminated template literal"}
}

func (l *Lexer) scanOperator() Token {
	ch := l.source[l.pos]
	l.pos++

	two := byte(0)
	if l.pos < len(l.source) {
		two = l.source[l.pos]
	}
	three := byte(0)
	if l.pos+1 < len(l.source) {
		three = l.source[l.pos+1]
	}

	switch ch {
	case '+':
		if two == '+' {
			l.pos++
			return l.makeToken(TokPlusPlus)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokPlusEq)
		}
		return l.makeToken(TokPlus)
	case '-':
		if two == '-' {
			l.pos++
			return l.makeToken(TokMinusMinus)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokMinusEq)
		}
		return l.makeToken(TokMinus)
	case '*':
		if two == '=' {
			l.pos++
			return l.makeToken(TokStarEq)
		}
		return l.makeToken(TokStar)
	case '/':
		if two == '=' {
			l.pos++
			return l.makeToken(TokSlashEq)
		}
		return l.makeToken(TokSlash)
	case '%':
		if two == '=' {
			l.pos++
			return l.makeToken(TokPercentEq)
		}
		return l.makeToken(TokPercent)
	case '&':
		if two == '&' {
			l.pos++
			return l.makeToken(TokAmpAmp)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokAmpEq)
		}
		return l.makeToken(TokAmp)
	case '|':
		if two == '|' {
			l.pos++
			return l.makeToken(TokPipePipe)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokPipeEq)
		}
		return l.makeToken(TokPipe)
	case '^':
		if two == '=' {
			l.pos++
			return l.makeToken(TokCaretEq)
		}
		return l.makeToken(TokCaret)
	case '~':
		return l.makeToken(TokTilde)
	case '!':
		if two == '=' {
			if three == '=' {
				l.pos += 2
				return l.makeToken(TokBangEqEq)
			}
			l.pos++
			return l.makeToken(TokBangEq)
		}
		return l.makeToken(TokBang)
	case '<':
		if two == '<' {
			l.pos++
			return l.makeToken(TokLtLt)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokLtEq)
		}
		return l.makeToken(TokLt)
	case '>':
		if two == '>' {
			if three == '>' {
				l.pos += 2
				return l.makeToken(TokGtGtGt)
			}
			l.pos++
			return l.makeToken(TokGtGt)
		}
		if two == '=' {
			l.pos++
			return l.makeToken(TokGtEq)
		}
		return l.makeToken(TokGt)
	case '=':
		if two == '=' {
			if three == '=' {
				l.pos += 2
				return l.makeToken(TokEqEqEq)
			}
			l.pos++
			return l.makeToken(TokEqEq)
		}
		if two == '>' {
			l.pos++
			return l.makeToken(TokArrow)
		}
		return l.makeToken(TokEq)
	case '?':
		return l.makeToken(TokQuestion)
	case '@':
		return l.makeToken(TokAt)
	case '.':
		if two == '.' && three == '.' {
			l.pos += 2
			return l.makeToken(TokDotDotDot)
		}
		return l.makeToken(TokDot)
	case '(':
		return l.makeToken(TokLParen)
	case ')':
		return l.makeToken(TokRParen)
	case '{':
		return l.makeToken(TokLBrace)
	case '}':
		return l.makeToken(TokRBrace)
	case '[':
		return l.makeToken(TokLBracket)
	case ']':
		return l.makeToken(TokRBracket)
	case ';':
		return l.makeToken(TokSemicolon)
	case ':':
		return l.makeToken(TokColon)
	case ',':
		return l.makeToken(TokComma)
	}

	return Token{Kind: TokError, Start: l.start, End: l.pos, Value: "unexpected character " + string(ch)}
}

func (l *Lexer) makeToken(kind TokenKind) Token {
	return Token{Kind: kind, Start: l.start, End: l.pos, Value: l.source[l.start:l.pos]}
}

// ----------------------------------------------------------------------------
// Character Classes
// ----------------------------------------------------------------------------

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
