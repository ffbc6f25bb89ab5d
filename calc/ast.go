package calc

// node is an expression tree. The set of implementations is closed: nodeNumber,
// nodeIdent, nodeBinary and nodeCall.
type node interface {
	Eval(e *Env) (float64, error)
	isNode()
}

type nodeNumber struct{ v float64 }

type nodeIdent struct{ name string }

// nodeBinary applies one of + - * / % ^.
type nodeBinary struct {
	op    byte
	left  node
	right node
}

type nodeCall struct {
	name string
	args []node
}

func (nodeNumber) isNode() {}
func (nodeIdent) isNode()  {}
func (nodeBinary) isNode() {}
func (nodeCall) isNode()   {}

// FunctionDef is a user-defined function: ordered parameters and a body.
type FunctionDef struct {
	Params []string
	body   node
}

// Body returns the function body in source form.
func (f *FunctionDef) Body() string { return NodeString(f.body) }

// statement is one parsed input line. The set of implementations is closed.
type statement interface {
	isStatement()
}

type stmtFunction struct {
	name string
	def  *FunctionDef
}

type stmtAssign struct {
	name string
	expr node
}

type stmtPlot struct{ name string }

type stmtSolveFor struct {
	lhs    node
	rhs    node
	target string
}

type stmtExpr struct{ expr node }

func (stmtFunction) isStatement() {}
func (stmtAssign) isStatement()   {}
func (stmtPlot) isStatement()     {}
func (stmtSolveFor) isStatement() {}
func (stmtExpr) isStatement()     {}
