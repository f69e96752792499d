// Figura
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ast

import (
	"fmt"

	"github.com/purpleidea/figura/lang/token"
)

// Precedence is the binding strength of an operation. Higher values bind more
// tightly.
type Precedence int

// These are the precedence levels, from lowest to highest.
const (
	PrecedenceWith Precedence = iota
	PrecedenceAssignment
	PrecedenceLogical
	PrecedenceEquality
	PrecedenceComparison
	PrecedenceAdditive
	PrecedenceMultiplicative
	PrecedenceExponent
	PrecedencePrefix
	PrecedencePostfix
	PrecedenceAccess
	PrecedenceContainer
)

// IsLeftAssociative returns true if operators of this level group left to
// right when chained.
func (obj Precedence) IsLeftAssociative() bool {
	switch obj {
	case PrecedencePrefix, PrecedenceAssignment, PrecedenceWith, PrecedenceExponent:
		return false
	}
	return true
}

// Precedes returns true if a pending operator of this level must be reduced
// before an operator of the rhs level is pushed.
func (obj Precedence) Precedes(rhs Precedence) bool {
	return obj > rhs || (obj == rhs && obj.IsLeftAssociative())
}

// Operation is the kind of an operator expression.
type Operation int

// These are all the operations that can appear in an expression.
const (
	OpPointLiteral Operation = iota
	OpListLiteral
	OpListFill
	OpListMap
	OpListFilter
	OpMemberAccess
	OpBuiltIn
	OpCall
	OpActionCall
	OpIndex
	OpPosate
	OpNegate
	OpNot
	OpExponent
	OpMultiply
	OpDivide
	OpModulus
	OpAdd
	OpSubtract
	OpLessThan
	OpGreaterThan
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpAnd
	OpOr
	OpExclusiveRange
	OpInclusiveRange
	OpConditional
	OpAssignment
	OpUpdate
	OpWith
)

var operationNames = []string{
	OpPointLiteral:   "PointLiteral",
	OpListLiteral:    "ListLiteral",
	OpListFill:       "ListFill",
	OpListMap:        "ListMap",
	OpListFilter:     "ListFilter",
	OpMemberAccess:   "MemberAccess",
	OpBuiltIn:        "BuiltIn",
	OpCall:           "Call",
	OpActionCall:     "ActionCall",
	OpIndex:          "Index",
	OpPosate:         "Posate",
	OpNegate:         "Negate",
	OpNot:            "Not",
	OpExponent:       "Exponent",
	OpMultiply:       "Multiply",
	OpDivide:         "Divide",
	OpModulus:        "Modulus",
	OpAdd:            "Add",
	OpSubtract:       "Subtract",
	OpLessThan:       "LessThan",
	OpGreaterThan:    "GreaterThan",
	OpLessEqual:      "LessEqual",
	OpGreaterEqual:   "GreaterEqual",
	OpEqual:          "Equal",
	OpNotEqual:       "NotEqual",
	OpAnd:            "And",
	OpOr:             "Or",
	OpExclusiveRange: "ExclusiveRange",
	OpInclusiveRange: "InclusiveRange",
	OpConditional:    "Conditional",
	OpAssignment:     "Assignment",
	OpUpdate:         "Update",
	OpWith:           "With",
}

// String returns the name of the operation.
func (obj Operation) String() string {
	if obj < 0 || int(obj) >= len(operationNames) {
		return fmt.Sprintf("<operation %d>", int(obj))
	}
	return operationNames[obj]
}

// Precedence returns the level at which this operation binds.
func (obj Operation) Precedence() Precedence {
	switch obj {
	case OpPointLiteral, OpListLiteral, OpListFill, OpListMap, OpListFilter,
		OpConditional, OpExclusiveRange, OpInclusiveRange:
		return PrecedenceContainer
	case OpMemberAccess, OpBuiltIn:
		return PrecedenceAccess
	case OpCall, OpActionCall, OpIndex:
		return PrecedencePostfix
	case OpPosate, OpNegate, OpNot:
		return PrecedencePrefix
	case OpExponent:
		return PrecedenceExponent
	case OpMultiply, OpDivide, OpModulus:
		return PrecedenceMultiplicative
	case OpAdd, OpSubtract:
		return PrecedenceAdditive
	case OpLessThan, OpGreaterThan, OpLessEqual, OpGreaterEqual:
		return PrecedenceComparison
	case OpEqual, OpNotEqual:
		return PrecedenceEquality
	case OpAnd, OpOr:
		return PrecedenceLogical
	case OpAssignment, OpUpdate:
		return PrecedenceAssignment
	}
	return PrecedenceWith
}

// Precedes compares two operations by their precedence level.
func (obj Operation) Precedes(rhs Operation) bool {
	return obj.Precedence().Precedes(rhs.Precedence())
}

// OperationFromSymbol returns the operation a symbol stands for. The meaning of
// some symbols depends on whether an operand or an operator is expected next.
func OperationFromSymbol(sym token.Symbol, expectOperand bool) (Operation, bool) {
	switch sym {
	case token.SymbolPlus:
		if expectOperand {
			return OpPosate, true
		}
		return OpAdd, true
	case token.SymbolMinus:
		if expectOperand {
			return OpNegate, true
		}
		return OpSubtract, true
	case token.SymbolBang:
		return OpNot, expectOperand
	case token.SymbolAtSign:
		return OpBuiltIn, expectOperand
	}
	if expectOperand {
		return 0, false
	}

	switch sym {
	case token.SymbolStar:
		return OpMultiply, true
	case token.SymbolSlash:
		return OpDivide, true
	case token.SymbolPercent:
		return OpModulus, true
	case token.SymbolCaret, token.SymbolStar2:
		return OpExponent, true
	case token.SymbolAmpersand2:
		return OpAnd, true
	case token.SymbolPipe2:
		return OpOr, true
	case token.SymbolEqual2:
		return OpEqual, true
	case token.SymbolNotEqual:
		return OpNotEqual, true
	case token.SymbolLessThan:
		return OpLessThan, true
	case token.SymbolGreaterThan:
		return OpGreaterThan, true
	case token.SymbolLessEqual:
		return OpLessEqual, true
	case token.SymbolGreaterEqual:
		return OpGreaterEqual, true
	case token.SymbolEqual:
		return OpAssignment, true
	case token.SymbolColonEqual:
		return OpUpdate, true
	case token.SymbolDot:
		return OpMemberAccess, true
	case token.SymbolParenLeft:
		return OpCall, true
	case token.SymbolSquareLeft:
		return OpIndex, true
	}
	return 0, false
}

// OperationFromKeyword returns the operation a keyword stands for.
func OperationFromKeyword(kw token.Keyword, expectOperand bool) (Operation, bool) {
	switch kw {
	case token.KeywordAction:
		return OpActionCall, expectOperand
	case token.KeywordWith:
		return OpWith, !expectOperand
	}
	return 0, false
}
