package script

// The parse tree is a faithful, untyped shape of the source text. Turning
// it into a playable Act (validating directive arity, argument vocabulary
// and scene references) is the ast package's job.

// Tree is the parse result for one script: the "act" production.
type Tree struct {
	Scenes []SceneNode
}

// SceneNode is one "scene <name> { ... }" block.
type SceneNode struct {
	Name       string
	Line       int
	Column     int
	Statements []StatementNode
}

// NodeKind distinguishes the two statement productions.
type NodeKind string

const (
	NodeDialogue  NodeKind = "dialogue"
	NodeDirective NodeKind = "directive"
)

// StatementNode is one statement line within a scene. For dialogue,
// Speaker and Text are set (Text is the raw string, variable markers
// intact). For directives, Keyword and Args are set.
type StatementNode struct {
	Kind    NodeKind
	Line    int
	Column  int
	Speaker string
	Text    string
	Keyword string
	Args    []Arg
}

// ArgKind identifies the lexical form of a directive argument.
type ArgKind string

const (
	ArgIdent  ArgKind = "ident"
	ArgString ArgKind = "string"
	ArgNumber ArgKind = "number"
)

// Arg is one directive argument as written, before semantic validation.
type Arg struct {
	Kind   ArgKind
	Value  string
	Line   int
	Column int
}
