package script

import "testing"

func TestLexer_Tokens(t *testing.T) {
	source := `scene intro { # a comment
	Amy "Hello"
	spawn(Amy, happy, "far left", fade)
	wait(1.5)
}`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{TokenScene, "scene"},
		{TokenIdent, "intro"},
		{TokenLBrace, "{"},
		{TokenIdent, "Amy"},
		{TokenString, "Hello"},
		{TokenIdent, "spawn"},
		{TokenLParen, "("},
		{TokenIdent, "Amy"},
		{TokenComma, ","},
		{TokenIdent, "happy"},
		{TokenComma, ","},
		{TokenString, "far left"},
		{TokenComma, ","},
		{TokenIdent, "fade"},
		{TokenRParen, ")"},
		{TokenIdent, "wait"},
		{TokenLParen, "("},
		{TokenNumber, "1.5"},
		{TokenRParen, ")"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := NewLexer(source)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: expected type %s, got %s (%q)", i, want.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: expected literal %q, got %q", i, want.literal, tok.Literal)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	source := "scene a {\n  Amy \"hi\"\n}"
	l := NewLexer(source)

	tok := l.NextToken() // scene
	if tok.Line != 1 || tok.Column != 1 {
		t.Errorf("expected 1:1, got %d:%d", tok.Line, tok.Column)
	}

	l.NextToken() // a
	l.NextToken() // {

	tok = l.NextToken() // Amy
	if tok.Line != 2 || tok.Column != 3 {
		t.Errorf("expected 2:3, got %d:%d", tok.Line, tok.Column)
	}

	tok = l.NextToken() // "hi"
	if tok.Line != 2 || tok.Column != 7 {
		t.Errorf("expected 2:7, got %d:%d", tok.Line, tok.Column)
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	l := NewLexer(`"line one\nline \"two\""`)
	tok := l.NextToken()
	if tok.Type != TokenString {
		t.Fatalf("expected string token, got %s", tok.Type)
	}
	want := "line one\nline \"two\""
	if tok.Literal != want {
		t.Errorf("expected %q, got %q", want, tok.Literal)
	}
}

func TestLexer_VarMarkerSpeaker(t *testing.T) {
	l := NewLexer(`[_PLAYERNAME_] "hi"`)
	tok := l.NextToken()
	if tok.Type != TokenVar {
		t.Fatalf("expected var token, got %s (%q)", tok.Type, tok.Literal)
	}
	if tok.Literal != "[_PLAYERNAME_]" {
		t.Errorf("expected marker literal, got %q", tok.Literal)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := NewLexer("\"oops\nmore")
	tok := l.NextToken()
	if tok.Type != TokenIllegal {
		t.Fatalf("expected illegal token, got %s", tok.Type)
	}
}

func TestLexer_EOFForever(t *testing.T) {
	l := NewLexer("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("expected EOF, got %s", tok.Type)
		}
	}
}
