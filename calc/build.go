package calc

import (
	"errors"
	"fmt"
	"strconv"
)

// parse turns one line into a statement.
func parse(line string) (statement, error) {
	pr, err := parseLine(line)
	if err != nil {
		return nil, err
	}
	return buildStatement(pr), nil
}

// buildStatement panics on trees the grammar cannot produce.
func buildStatement(pr *pair) statement {
	switch pr.rule {
	case ruleFunction:
		if len(pr.inner) < 2 {
			panic(malformed(pr))
		}
		params := make([]string, 0, len(pr.inner)-2)
		for _, param := range pr.inner[1 : len(pr.inner)-1] {
			params = append(params, expectRule(param, ruleSymbol).text)
		}
		body := buildExpr(pr.inner[len(pr.inner)-1])
		return stmtFunction{name: pr.inner[0].text, def: &FunctionDef{Params: params, body: body}}
	case rulePlot:
		if len(pr.inner) != 1 {
			panic(malformed(pr))
		}
		return stmtPlot{name: expectRule(pr.inner[0], ruleSymbol).text}
	case ruleSolveFor:
		if len(pr.inner) != 3 {
			panic(malformed(pr))
		}
		return stmtSolveFor{
			lhs:    buildExpr(pr.inner[0]),
			rhs:    buildExpr(pr.inner[1]),
			target: expectRule(pr.inner[2], ruleSymbol).text,
		}
	case ruleAssignment:
		if len(pr.inner) != 2 {
			panic(malformed(pr))
		}
		return stmtAssign{name: expectRule(pr.inner[0], ruleSymbol).text, expr: buildExpr(pr.inner[1])}
	case ruleExpr:
		return stmtExpr{expr: buildExpr(pr)}
	default:
		panic(malformed(pr))
	}
}

// buildExpr folds `term (op term)*` to the left, preserving operand order.
func buildExpr(pr *pair) node {
	switch pr.rule {
	case ruleNum:
		return nodeNumber{v: buildNumber(pr)}
	case ruleSymbol:
		return nodeIdent{name: pr.text}
	case ruleFunCall:
		if len(pr.inner) == 0 {
			panic(malformed(pr))
		}
		args := make([]node, 0, len(pr.inner)-1)
		for _, a := range pr.inner[1:] {
			args = append(args, buildExpr(a))
		}
		return nodeCall{name: pr.inner[0].text, args: args}
	case ruleExpr:
		if len(pr.inner)%2 != 1 {
			panic(malformed(pr))
		}
		left := buildExpr(pr.inner[0])
		for i := 1; i < len(pr.inner); i += 2 {
			op := expectRule(pr.inner[i], ruleOperation)
			left = nodeBinary{op: op.text[0], left: left, right: buildExpr(pr.inner[i+1])}
		}
		return left
	default:
		panic(malformed(pr))
	}
}

func buildNumber(pr *pair) float64 {
	f, err := strconv.ParseFloat(pr.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(malformed(pr))
	}
	// Out of range literals keep the IEEE result (±Inf or 0).
	return f
}

func expectRule(pr *pair, r rule) *pair {
	if pr == nil || pr.rule != r {
		panic(malformed(pr))
	}
	return pr
}

func malformed(pr *pair) string {
	if pr == nil {
		return "calc: malformed syntax tree: nil pair"
	}
	return fmt.Sprintf("calc: malformed syntax tree: rule %d %q at %d", pr.rule, pr.text, pr.pos)
}
