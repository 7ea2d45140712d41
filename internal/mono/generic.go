package mono

import "github.com/thresh-lang/threshc/internal/ast"

// IsGeneric reports whether a function declaration's parameter list makes
// it generic: spec.md's "a function with one or more comptime parameters
// or with a parameter typed as `type` is generic" reduces to the same
// check either way, since `comptime T: type`, `comptime n: i32` and a bare
// `T: type` all reach here with FnParam.Comptime set. When internal/sema
// builds a call's argument vector it records only integer and boolean
// compile-time arguments (types.InstArgInt/InstArgBool); a call passing any
// other compile-time argument is not recorded.
func IsGeneric(params []ast.FnParam) bool {
	for _, p := range params {
		if p.Comptime {
			return true
		}
	}
	return false
}
