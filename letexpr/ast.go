package letexpr

// Node is the base interface of all AST nodes.
type Node interface {
	Pos() int // 1-based source line
}

// Statement nodes bind, rebind or drop names, or evaluate for effect.
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes produce a value.
type Expression interface {
	Node
	exprNode()
}

// Program is a parsed source file: statements followed by an optional
// trailing expression whose value is the program's result.
type Program struct {
	Body []Statement
	Tail Expression
}

func (p *Program) Pos() int {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	if p.Tail != nil {
		return p.Tail.Pos()
	}
	return 0
}

// Ident is a variable reference.
type Ident struct {
	Name string
	Line int
}

func (n *Ident) Pos() int  { return n.Line }
func (n *Ident) exprNode() {}

// Literal carries an already parsed constant.
type Literal struct {
	Value Value
	Line  int
}

func (n *Literal) Pos() int  { return n.Line }
func (n *Literal) exprNode() {}

type UnaryExpr struct {
	Op   TokenType
	X    Expression
	Line int
}

func (n *UnaryExpr) Pos() int  { return n.Line }
func (n *UnaryExpr) exprNode() {}

type BinaryExpr struct {
	Op    TokenType
	Left  Expression
	Right Expression
	Line  int
}

func (n *BinaryExpr) Pos() int  { return n.Line }
func (n *BinaryExpr) exprNode() {}

// CallExpr invokes a registered builtin.
type CallExpr struct {
	Name string
	Args []Expression
	Line int
}

func (n *CallExpr) Pos() int  { return n.Line }
func (n *CallExpr) exprNode() {}

// BlockExpr is a braced scope. Its value is the trailing expression, or
// nil when the block ends with a statement.
type BlockExpr struct {
	Stmts []Statement
	Tail  Expression
	Line  int
}

func (n *BlockExpr) Pos() int  { return n.Line }
func (n *BlockExpr) exprNode() {}

// IfExpr selects between branches. Else is a *BlockExpr, a chained
// *IfExpr, or nil.
type IfExpr struct {
	Cond Expression
	Then *BlockExpr
	Else Expression
	Line int
}

func (n *IfExpr) Pos() int  { return n.Line }
func (n *IfExpr) exprNode() {}

// LetStmt declares a name in the current scope.
type LetStmt struct {
	Name string
	Init Expression
	Line int
}

func (n *LetStmt) Pos() int  { return n.Line }
func (n *LetStmt) stmtNode() {}

// AssignStmt rebinds the nearest declaration of a name.
type AssignStmt struct {
	Name  string
	Value Expression
	Line  int
}

func (n *AssignStmt) Pos() int  { return n.Line }
func (n *AssignStmt) stmtNode() {}

// DelStmt drops the nearest declaration of a name.
type DelStmt struct {
	Name string
	Line int
}

func (n *DelStmt) Pos() int  { return n.Line }
func (n *DelStmt) stmtNode() {}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	X Expression
}

func (n *ExprStmt) Pos() int  { return n.X.Pos() }
func (n *ExprStmt) stmtNode() {}
