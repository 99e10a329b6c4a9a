// Package procalc implements a calculator over high-precision decimals.
//
// Evaluation is a pipeline of three pure stages. Tokenize splits user input
// into tokens, ToPostfix reorders them into postfix (RPN) order with the
// shunting-yard algorithm, and Context.Evaluate runs the postfix sequence on a
// stack of decimals. EvaluateExpression composes all three. Format renders a
// result for display.
//
// Arithmetic is done to a fixed number of significant decimal digits, 28 by
// default, rounding half away from zero after every inexact step. "^", pow,
// and the transcendental functions are computed in float64 and re-rounded, so
// their results are only as precise as float64 allows.
//
// Syntax is what you would type on a desk calculator: "2*(3+4)", "2^3^2"
// (which is 2^(3^2)), "sqrt(2)", "pow(2, 10)", "50%", "5!", "pi", and "×"
// or "÷" in place of "*" or "/". Function and constant names are
// case-insensitive.
package procalc
