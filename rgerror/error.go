// Package rgerror defines the fatal compile-time error type shared by
// every compiler stage. A CompileError is always raised via panic — see
// each stage's package doc — and is meant to be recovered at the call
// boundary with errors.As, the same shape as an assertion failure in a
// debug build that never ships with checks compiled out.
package rgerror

import (
	"fmt"

	"github.com/gogpu/rendergraph/resource"
)

// Stage names the compiler stage that raised a CompileError.
type Stage string

const (
	StageVersioning Stage = "versioning"
	StageValidation Stage = "validation"
	StageDAG        Stage = "dag"
	StageScheduling Stage = "scheduling"
	StageLifetime   Stage = "lifetime"
	StageAliasing   Stage = "aliasing"
	StageBarrier    Stage = "barrier"
)

// Kind discriminates the specific fatal condition, so callers can match
// on it instead of parsing the message.
type Kind int

const (
	KindNoOutputsDeclared Kind = iota
	KindHandleOutOfRange
	KindReadBeforeWrite
	KindWriteOutOfRange
	KindCycleDetected
)

func (k Kind) String() string {
	switch k {
	case KindNoOutputsDeclared:
		return "no outputs declared"
	case KindHandleOutOfRange:
		return "handle out of range"
	case KindReadBeforeWrite:
		return "read before write"
	case KindWriteOutOfRange:
		return "write out of range"
	case KindCycleDetected:
		return "cycle detected"
	default:
		return "unknown"
	}
}

// CompileError is a fatal, non-recoverable-by-design compile failure.
// Pass and Handle are set to their respective Invalid sentinels when not
// applicable to the failure.
type CompileError struct {
	Stage   Stage
	Kind    Kind
	Message string
	Pass    resource.PassHandle
	Handle  resource.Handle
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("rendergraph: %s: %s: %s", e.Stage, e.Kind, e.Message)
}

// Raise panics with a *CompileError built from the given fields. Every
// compiler stage that detects a fatal condition calls Raise instead of
// constructing the panic value inline, keeping the wrapping consistent.
func Raise(stage Stage, kind Kind, pass resource.PassHandle, handle resource.Handle, message string) {
	panic(&CompileError{
		Stage:   stage,
		Kind:    kind,
		Message: message,
		Pass:    pass,
		Handle:  handle,
	})
}
