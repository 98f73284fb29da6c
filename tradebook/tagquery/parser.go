package tagquery

import "fmt"

// Parse parses a query string into an expression tree. Input is assumed to
// have passed Validate; on unvalidated input Parse may return an error, but
// it never panics. The empty query parses to an empty AndNode.
//
// Grammar, tightest binding first:
//
//	Primary := TAG | '(' OrExpr ')'
//	NotExpr := NOT TAG | Primary
//	AndExpr := NotExpr (AND NotExpr)*
//	OrExpr  := AndExpr (OR AndExpr)*
//
// AND binds tighter than OR. Chained operands accumulate under a single
// AndNode/OrNode instead of nesting binary pairs.
func Parse(input string) (Node, error) {
	return parseTokens(Tokenize(input))
}

func parseTokens(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return AndNode{}, nil
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected %v after expression", p.current().Kind)
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseOr() (Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	children := []Node{first}
	for p.match(TokOr) {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if len(children) == 1 {
		return first, nil
	}
	return OrNode{Children: children}, nil
}

func (p *parser) parseAnd() (Node, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	children := []Node{first}
	for p.match(TokAnd) {
		p.advance()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if len(children) == 1 {
		return first, nil
	}
	return AndNode{Children: children}, nil
}

func (p *parser) parseNot() (Node, error) {
	if !p.match(TokNot) {
		return p.parsePrimary()
	}
	p.advance()

	// NOT binds to the single tag immediately following it.
	if !p.match(TokTag) {
		return nil, fmt.Errorf("%s", MsgDanglingNot)
	}
	tag := TagNode{Value: p.current().Value}
	p.advance()
	return NotNode{Child: tag}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	if p.match(TokLParen) {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			return nil, fmt.Errorf("expected ')'")
		}
		p.advance()
		return expr, nil
	}

	if p.match(TokTag) {
		tag := TagNode{Value: p.current().Value}
		p.advance()
		return tag, nil
	}

	if p.done() {
		return nil, fmt.Errorf("unexpected end of query")
	}
	return nil, fmt.Errorf("unexpected %v", p.current().Kind)
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return !p.done() && p.tokens[p.pos].Kind == kind
}
