package query

// lexState tracks which part of a condition the lexer is in
type lexState int

const (
	stateColumn lexState = iota
	stateOperator
	stateValue
	stateDone
)

// Lexer tokenizes condition strings of the form column<op>value.
//
// The first '>', '<' or '=' ends the column; everything after the operator
// is returned verbatim as a single value token, so values may contain
// operator characters of their own.
type Lexer struct {
	input   string
	pos     int // index of ch
	readPos int
	ch      byte
	state   lexState
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// atEnd reports whether the whole input was consumed
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func isOperator(ch byte) bool {
	return ch == '>' || ch == '<' || ch == '='
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	switch l.state {
	case stateColumn:
		start := l.pos
		for !l.atEnd() && !isOperator(l.ch) {
			l.readChar()
		}
		l.state = stateOperator
		return Token{Type: TokenColumn, Value: l.input[start:l.pos]}

	case stateOperator:
		if l.atEnd() {
			l.state = stateDone
			return Token{Type: TokenEOF, Value: ""}
		}
		// stateColumn only stops on an operator character
		var tok Token
		switch l.ch {
		case '>':
			tok = Token{Type: TokenGreater, Value: ">"}
		case '<':
			tok = Token{Type: TokenLess, Value: "<"}
		default:
			tok = Token{Type: TokenEqual, Value: "="}
		}
		l.readChar()
		l.state = stateValue
		return tok

	case stateValue:
		value := l.input[l.pos:]
		l.pos = len(l.input)
		l.state = stateDone
		return Token{Type: TokenValue, Value: value}
	}

	return Token{Type: TokenEOF, Value: ""}
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	return tokens
}
