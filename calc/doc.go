// Package calc implements the calculator core: the statement grammar, the expression
// tree, the evaluation environment, the evaluator, and a solver for equations that are
// linear in one variable.
//
// Operators have flat precedence and associate to the left: `3 + 4 * 2` is 14.
// Grouping is only done with parentheses.
//
// The words plot, solve and for are keywords and cannot be used as names.
package calc
