package lang

// AssignOp is the operator of an [Assignment].
type AssignOp string

const (
	OpSet     AssignOp = "="  // replace
	OpDefault AssignOp = "?=" // set only if absent
	OpAppend  AssignOp = "+=" // current then new
	OpPrefix  AssignOp = "=+" // new then current
	OpRemove  AssignOp = "-=" // current without new
)

// CompareOp is the operator of a [Conditional].
type CompareOp string

const (
	CompareEq  CompareOp = "eq"
	CompareNeq CompareOp = "neq"
)

// Document is a parsed sequence of top-level statements.
type Document struct {
	Statements []Statement `json:"statements" yaml:"statements"`
}

// Statement is a node that can appear at the top level of a document, in a
// conditional branch or in a macro body.
//
// The set of statements is closed: [*Assignment], [*Comment], [*Include],
// [*Conditional], [*MacroDef] and [*Call].
type Statement interface {
	Position() Pos
	statement()
}

// Expr is a value-producing node.
//
// The set of expressions is closed: [*Literal], [*Concat], [*Ref] and
// [*Call].
type Expr interface {
	expr()
}

// Part is an operand of a [Concat]: [*Text], [*Ref] or [*Call].
type Part interface {
	Expr
	part()
}

// Assignment records the value of Value in the variable Name.
type Assignment struct {
	Value Expr     `json:"value" yaml:"value"`
	Name  string   `json:"name"  yaml:"name"`
	Op    AssignOp `json:"op"    yaml:"op"`
	Pos   Pos      `json:"pos"   yaml:"pos"`
}

// Comment is a line comment carried through to the output.
type Comment struct {
	Text string `json:"text" yaml:"text"`
	Pos  Pos    `json:"pos"  yaml:"pos"`
}

// Include marks the point where an included file was spliced in.
type Include struct {
	Path string `json:"path" yaml:"path"`
	Pos  Pos    `json:"pos"  yaml:"pos"`
}

// Conditional selects Then when Left and Right compare according to Op, and
// Else otherwise.
type Conditional struct {
	Left  Expr        `json:"left"           yaml:"left"`
	Right Expr        `json:"right"          yaml:"right"`
	Op    CompareOp   `json:"op"             yaml:"op"`
	Then  []Statement `json:"then,omitempty" yaml:"then,omitempty"`
	Else  []Statement `json:"else,omitempty" yaml:"else,omitempty"`
	Pos   Pos         `json:"pos"            yaml:"pos"`
}

// MacroDef registers Body under Name for later invocation with call.
type MacroDef struct {
	Name string      `json:"name"           yaml:"name"`
	Body []Statement `json:"body,omitempty" yaml:"body,omitempty"`
	Pos  Pos         `json:"pos"            yaml:"pos"`
}

// Call invokes the builtin Name. It is both a statement and an expression.
type Call struct {
	Name string `json:"name"           yaml:"name"`
	Args []Expr `json:"args,omitempty" yaml:"args,omitempty"`
	Pos  Pos    `json:"pos"            yaml:"pos"`
}

// Literal is a state, int or hex value written verbatim.
type Literal struct {
	Value Value `json:"value" yaml:"value"`
}

// Concat is a string built from its parts in order.
type Concat struct {
	Parts []Part `json:"parts" yaml:"parts"`
}

// Text is a string literal inside a [Concat].
type Text struct {
	Text string `json:"text" yaml:"text"`
}

// Ref is a reference to the current value of a variable.
type Ref struct {
	Name string `json:"name" yaml:"name"`
	Pos  Pos    `json:"pos"  yaml:"pos"`
}

func (s *Assignment) Position() Pos  { return s.Pos }
func (s *Comment) Position() Pos     { return s.Pos }
func (s *Include) Position() Pos     { return s.Pos }
func (s *Conditional) Position() Pos { return s.Pos }
func (s *MacroDef) Position() Pos    { return s.Pos }
func (s *Call) Position() Pos        { return s.Pos }

func (*Assignment) statement()  {}
func (*Comment) statement()     {}
func (*Include) statement()     {}
func (*Conditional) statement() {}
func (*MacroDef) statement()    {}
func (*Call) statement()        {}

func (*Literal) expr() {}
func (*Concat) expr()  {}
func (*Text) expr()    {}
func (*Ref) expr()     {}
func (*Call) expr()    {}

func (*Text) part() {}
func (*Ref) part()  {}
func (*Call) part() {}
