package query

import "strings"

// Operators accepted in a condition
var supportedOperators = []string{">", "<", "="}

// Parser turns condition tokens into a Condition
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(input string, tokens []Token) *Parser {
	return &Parser{
		input:  input,
		tokens: tokens,
		pos:    0,
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) fail(reason string, err error) error {
	return &ParseError{Input: p.input, Reason: reason, Err: err}
}

// ParseCondition parses a filter condition such as "price>500" or
// "brand = apple".
func ParseCondition(input string) (*Condition, error) {
	if err := ValidateExpression(input); err != nil {
		return nil, &ParseError{Input: input, Reason: err.Error(), Err: err}
	}

	parser := NewParser(input, Tokenize(input))
	return parser.parseCondition()
}

// parseCondition parses: column op value
func (p *Parser) parseCondition() (*Condition, error) {
	column, opTok, rawValue, err := p.parseTriple()
	if err != nil {
		return nil, err
	}

	// Compound operators are split by the lexer; catch them before the
	// leftover character ends up in the column or value.
	if strings.HasSuffix(column, "!") {
		return nil, &UnsupportedOperationError{Operation: "!" + opTok.Value, Supported: supportedOperators}
	}
	if rawValue != "" && isOperator(rawValue[0]) {
		return nil, &UnsupportedOperationError{Operation: opTok.Value + rawValue[:1], Supported: supportedOperators}
	}

	column = strings.TrimSpace(column)
	if err := ValidateColumnName(column); err != nil {
		return nil, p.fail(err.Error(), err)
	}

	raw := strings.TrimSpace(rawValue)
	if raw == "" {
		return nil, p.fail(ErrEmptyValue.Error(), ErrEmptyValue)
	}

	op, ok := operatorFor(opTok.Type)
	if !ok {
		return nil, &UnsupportedOperationError{Operation: opTok.Value, Supported: supportedOperators}
	}

	return &Condition{
		Column:   column,
		Operator: op,
		Value:    typedValue(raw),
		Raw:      raw,
	}, nil
}

// parseTriple reads the column, operator and value tokens without
// interpreting them.
func (p *Parser) parseTriple() (string, Token, string, error) {
	if p.current().Type != TokenColumn {
		return "", Token{}, "", p.fail("expected column name, got "+p.current().Type.String(), nil)
	}
	column := p.current().Value
	p.advance()

	opTok := p.current()
	if opTok.Type == TokenEOF {
		return "", Token{}, "", p.fail("missing comparison operator (use one of >, <, =)", ErrMissingOperator)
	}
	p.advance()

	var value string
	if p.current().Type == TokenValue {
		value = p.current().Value
		p.advance()
	}

	return column, opTok, value, nil
}

// typedValue interprets the value as a number when possible
func typedValue(raw string) Value {
	if f, ok := parseNumber(raw); ok {
		return Number(f)
	}
	return Text(raw)
}
