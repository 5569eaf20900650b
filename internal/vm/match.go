package vm

import "github.com/cwbudde/goxlang/internal/ir"

// matchElse scans forward from an IF at ifPC, skipping over any nested
// IF/ENDIF pairs, and returns the index of the matching ELSE. Every IF is
// guaranteed by the generator to have exactly one ELSE before its ENDIF
// (lowerIf always emits ELSE even for an empty else-branch), so this never
// falls through to ENDIF.
func matchElse(code []ir.Instruction, ifPC int) int {
	depth := 0
	for pc := ifPC + 1; pc < len(code); pc++ {
		switch code[pc].Op {
		case ir.IF:
			depth++
		case ir.ELSE:
			if depth == 0 {
				return pc
			}
		case ir.ENDIF:
			depth--
		}
	}
	panic(&RuntimeError{Message: "internal error: IF without matching ELSE"})
}

// matchEndif scans forward from an ELSE at elsePC, skipping nested
// IF/ENDIF pairs, and returns the index of the matching ENDIF.
func matchEndif(code []ir.Instruction, elsePC int) int {
	depth := 0
	for pc := elsePC + 1; pc < len(code); pc++ {
		switch code[pc].Op {
		case ir.IF:
			depth++
		case ir.ENDIF:
			if depth == 0 {
				return pc
			}
			depth--
		}
	}
	panic(&RuntimeError{Message: "internal error: ELSE without matching ENDIF"})
}

// matchEndloop scans forward from a point inside a loop body (a CBREAK or
// BREAK instruction), skipping nested LOOP/ENDLOOP pairs, and returns the
// index of the enclosing loop's ENDLOOP.
func matchEndloop(code []ir.Instruction, pc int) int {
	depth := 0
	for i := pc + 1; i < len(code); i++ {
		switch code[i].Op {
		case ir.LOOP:
			depth++
		case ir.ENDLOOP:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	panic(&RuntimeError{Message: "internal error: loop exit without matching ENDLOOP"})
}

// matchLoopHead scans backward from an ENDLOOP or CONTINUE at pc, skipping
// nested ENDLOOP/LOOP pairs, and returns the index of the enclosing loop's
// LOOP instruction, so execution can re-evaluate the condition.
func matchLoopHead(code []ir.Instruction, pc int) int {
	depth := 0
	for i := pc - 1; i >= 0; i-- {
		switch code[i].Op {
		case ir.ENDLOOP:
			depth++
		case ir.LOOP:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	panic(&RuntimeError{Message: "internal error: loop exit without matching LOOP"})
}
