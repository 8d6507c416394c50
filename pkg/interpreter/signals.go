package interpreter

import "github.com/pebblelang/pebble/pkg/runtime"

// returnSignal is a Go-error-typed control-flow signal, not a user-facing
// error: executing a Return statement produces one, and MethodBody catches
// it, converting it back into an ordinary value. A Return at the top level
// of a program or REPL chunk is caught by EvalChunk instead, which ends the
// chunk with the returned value.
type returnSignal struct {
	value runtime.Value
}

func (s *returnSignal) Error() string { return "return outside of a method body" }

func asReturnSignal(err error) (*returnSignal, bool) {
	rs, ok := err.(*returnSignal)
	return rs, ok
}
