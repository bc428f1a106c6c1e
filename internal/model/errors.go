package model

import "fmt"

// ToolError reports an external command that failed to spawn or exited
// non-zero. Command semantics are opaque at this layer; the caller decides
// whether the failure aborts the run.
type ToolError struct {
	Command string // full command line as invoked
	Dir     string // working directory of the invocation
	Err     error  // exit or spawn error from os/exec
	Output  string // trailing combined output, kept for diagnostics only
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q failed in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// PatchError reports a configuration document missing an expected structural
// marker. A patch step never partially applies; it either succeeds or
// returns a PatchError and leaves the document untouched on disk.
type PatchError struct {
	Reason string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("config patch: %s", e.Reason)
}
