package script

// Parser builds a parse tree from a token stream using single-token
// lookahead. Parsing is pure and deterministic: the same source always
// yields the same tree or the same *SyntaxError.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
}

// Parse tokenizes and parses a whole script source.
func Parse(source string) (*Tree, error) {
	return NewParser(NewLexer(source)).ParseTree()
}

// NewParser creates a parser over the given lexer.
func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// ParseTree parses the "act" production: one or more scene blocks.
func (p *Parser) ParseTree() (*Tree, error) {
	tree := &Tree{}
	for p.curToken.Type != TokenEOF {
		scene, err := p.parseScene()
		if err != nil {
			return nil, err
		}
		tree.Scenes = append(tree.Scenes, *scene)
	}
	return tree, nil
}

func (p *Parser) parseScene() (*SceneNode, error) {
	if p.curToken.Type != TokenScene {
		return nil, syntaxError(`"scene"`, p.curToken)
	}
	p.nextToken()

	if p.curToken.Type != TokenIdent {
		return nil, syntaxError("scene name", p.curToken)
	}
	scene := &SceneNode{
		Name:   p.curToken.Literal,
		Line:   p.curToken.Line,
		Column: p.curToken.Column,
	}
	p.nextToken()

	if p.curToken.Type != TokenLBrace {
		return nil, syntaxError(`"{"`, p.curToken)
	}
	p.nextToken()

	for p.curToken.Type != TokenRBrace {
		if p.curToken.Type == TokenEOF {
			return nil, syntaxError(`"}"`, p.curToken)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		scene.Statements = append(scene.Statements, *stmt)
	}
	p.nextToken() // consume "}"

	return scene, nil
}

// parseStatement disambiguates on one token of lookahead: an identifier
// followed by "(" is a directive, an identifier or variable marker
// followed by a string is dialogue.
func (p *Parser) parseStatement() (*StatementNode, error) {
	switch p.curToken.Type {
	case TokenIdent:
		if p.peekToken.Type == TokenLParen {
			return p.parseDirective()
		}
		return p.parseDialogue()
	case TokenVar:
		return p.parseDialogue()
	default:
		return nil, syntaxError("speaker or directive", p.curToken)
	}
}

func (p *Parser) parseDialogue() (*StatementNode, error) {
	stmt := &StatementNode{
		Kind:    NodeDialogue,
		Line:    p.curToken.Line,
		Column:  p.curToken.Column,
		Speaker: p.curToken.Literal,
	}
	p.nextToken()

	if p.curToken.Type != TokenString {
		return nil, syntaxError("dialogue text", p.curToken)
	}
	stmt.Text = p.curToken.Literal
	p.nextToken()

	return stmt, nil
}

func (p *Parser) parseDirective() (*StatementNode, error) {
	stmt := &StatementNode{
		Kind:    NodeDirective,
		Line:    p.curToken.Line,
		Column:  p.curToken.Column,
		Keyword: p.curToken.Literal,
	}
	p.nextToken() // keyword
	p.nextToken() // "("

	if p.curToken.Type == TokenRParen {
		p.nextToken()
		return stmt, nil
	}

	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		stmt.Args = append(stmt.Args, *arg)

		switch p.curToken.Type {
		case TokenComma:
			p.nextToken()
		case TokenRParen:
			p.nextToken()
			return stmt, nil
		default:
			return nil, syntaxError(`"," or ")"`, p.curToken)
		}
	}
}

func (p *Parser) parseArg() (*Arg, error) {
	arg := &Arg{
		Value:  p.curToken.Literal,
		Line:   p.curToken.Line,
		Column: p.curToken.Column,
	}
	switch p.curToken.Type {
	case TokenIdent:
		arg.Kind = ArgIdent
	case TokenString:
		arg.Kind = ArgString
	case TokenNumber:
		arg.Kind = ArgNumber
	default:
		return nil, syntaxError("identifier, string or number argument", p.curToken)
	}
	p.nextToken()
	return arg, nil
}
