package script

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	TokenIllegal TokenType = "ILLEGAL"
	TokenEOF     TokenType = "EOF"

	TokenIdent  TokenType = "IDENT"  // scene names, speakers, directive keywords
	TokenString TokenType = "STRING" // double-quoted text, may embed [_VAR_] markers
	TokenNumber TokenType = "NUMBER" // integer or decimal literal
	TokenVar    TokenType = "VAR"    // bare variable marker, e.g. [_PLAYERNAME_]

	TokenScene TokenType = "SCENE" // keyword "scene"

	TokenLBrace TokenType = "{"
	TokenRBrace TokenType = "}"
	TokenLParen TokenType = "("
	TokenRParen TokenType = ")"
	TokenComma  TokenType = ","
)

// Token is a single lexeme with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based
	Column  int // 1-based, in runes
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of script"
	}
	return fmt.Sprintf("%q", t.Literal)
}

var keywords = map[string]TokenType{
	"scene": TokenScene,
}

// lookupIdent resolves keywords, falling back to a plain identifier.
func lookupIdent(literal string) TokenType {
	if t, ok := keywords[literal]; ok {
		return t
	}
	return TokenIdent
}
