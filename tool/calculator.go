package tool

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Calculator evaluates arithmetic expressions for agents that need to perform
// calculations. It supports the operators + - * / ** %, parentheses, unary
// sign and integer, float and scientific-notation literals.
//
// Expressions are parsed by a dedicated recursive-descent evaluator, so the
// tool cannot execute arbitrary code and is safe for untrusted input. There is
// no support for mathematical functions (sin, cos, log, ...), variables or
// assignment; such constructs fail with a structured error.
//
// Evaluation faults (division by zero, malformed syntax, unsupported
// constructs) are caught and reported in the result. Call never returns an
// error and never panics.
type Calculator struct {
	name        string
	description string
}

// CalcResult is the structured outcome of a calculation.
type CalcResult struct {
	Success    bool    `json:"success"`
	Result     float64 `json:"result,omitempty"`
	Error      string  `json:"error,omitempty"`
	Expression string  `json:"expression"`
	Tool       string  `json:"tool"`
}

// NewCalculator constructs the calculator tool.
func NewCalculator() *Calculator {
	return &Calculator{
		name:        "calculator",
		description: "Performs basic mathematical operations",
	}
}

// Name returns the tool identifier.
func (c *Calculator) Name() string { return c.name }

// Description returns the short natural language description exposed to models.
func (c *Calculator) Description() string { return c.description }

// Parameters returns the JSON schema for the calculator's arguments.
func (c *Calculator) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"expression": map[string]any{
				"type":        "string",
				"description": "Mathematical expression to evaluate, e.g. \"2 + 3 * 4\"",
			},
		},
		"required": []string{"expression"},
	}
}

// Calculate evaluates expression and returns a tagged result. Failures are
// reported in the result, never as an error or panic.
func (c *Calculator) Calculate(expression string) CalcResult {
	value, err := evalExpression(expression)
	if err != nil {
		return CalcResult{
			Success:    false,
			Error:      err.Error(),
			Expression: expression,
			Tool:       c.name,
		}
	}
	return CalcResult{
		Success:    true,
		Result:     value,
		Expression: expression,
		Tool:       c.name,
	}
}

// Call implements the Tool interface. It expects an "expression" argument;
// a missing or non-string value is treated as the empty expression. The
// returned error is always nil; faults are reported inside the CalcResult.
func (c *Calculator) Call(args map[string]any) (any, error) {
	expression, _ := args["expression"].(string)
	return c.Calculate(expression), nil
}

// ---------------------------------------------------------------------------
// Expression evaluator: tokenizer + recursive-descent parser.
//
// Grammar (operator precedence low to high, ** is right-associative and binds
// tighter than unary sign on its left operand):
//
//	expr    := term    { ("+" | "-") term }
//	term    := unary   { ("*" | "/" | "%") unary }
//	unary   := ("+" | "-") unary | power
//	power   := primary [ "**" unary ]
//	primary := number | "(" expr ")"
// ---------------------------------------------------------------------------

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokEOF
)

type token struct {
	kind  tokenKind
	value float64 // set for tokNumber
	op    string  // set for tokOp: + - * / % ** ( )
	pos   int     // byte offset in the source expression
}

func evalExpression(expression string) (float64, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return 0, err
	}
	p := &parser{tokens: tokens}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q at position %d", tok.op, tok.pos)
	}
	return value, nil
}

func tokenize(expression string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expression) {
		ch := expression[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			i = scanNumber(expression, i)
			value, err := strconv.ParseFloat(expression[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", expression[start:i], start)
			}
			tokens = append(tokens, token{kind: tokNumber, value: value, pos: start})
		case ch == '*':
			if i+1 < len(expression) && expression[i+1] == '*' {
				tokens = append(tokens, token{kind: tokOp, op: "**", pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokOp, op: "*", pos: i})
				i++
			}
		case ch == '+' || ch == '-' || ch == '/' || ch == '%' || ch == '(' || ch == ')':
			tokens = append(tokens, token{kind: tokOp, op: string(ch), pos: i})
			i++
		default:
			if unicode.IsLetter(rune(ch)) {
				return nil, fmt.Errorf("unsupported construct %q at position %d: only arithmetic is allowed", ch, i)
			}
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(expression)})
	return tokens, nil
}

// scanNumber advances past a numeric literal starting at i: digits and/or a
// decimal point, optionally followed by a scientific-notation exponent.
func scanNumber(s string, i int) int {
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// accept consumes the next token if it is the given operator.
func (p *parser) accept(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if tok.op == op {
			p.next()
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.accept("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.accept("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = pymod(left, right)
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if op, ok := p.accept("+", "-"); ok {
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -value, nil
		}
		return value, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if _, ok := p.accept("**"); ok {
		// Right-associative; the exponent may carry its own unary sign.
		exponent, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exponent), nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (float64, error) {
	tok := p.next()
	switch {
	case tok.kind == tokNumber:
		return tok.value, nil
	case tok.kind == tokOp && tok.op == "(":
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, ok := p.accept(")"); !ok {
			return 0, fmt.Errorf("missing closing parenthesis at position %d", p.peek().pos)
		}
		return value, nil
	case tok.kind == tokEOF:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected %q at position %d", tok.op, tok.pos)
	}
}

// pymod computes the remainder with the sign of the divisor, matching the
// arithmetic of the % operator in most calculator conventions.
func pymod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
