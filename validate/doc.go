// Package validate runs the fatal, compile-time-only checks over live
// passes: an empty output set, out-of-range resource handles, and
// read-before-write on a non-imported resource. Every failure is raised
// as a panic carrying a *CompileError, mirroring the assert() semantics
// of a debug-build compiler that never runs in production with checks
// disabled.
package validate
