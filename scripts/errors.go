package scripts

import "fmt"

type ScriptError struct {
	Op      string
	Err     error
	Message string
	Stderr  string
}

func (e *ScriptError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s\nstderr: %s", msg, e.Stderr)
	}
	return msg
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

func newScriptError(op string, err error, message, stderr string) *ScriptError {
	return &ScriptError{
		Op:      op,
		Err:     err,
		Message: message,
		Stderr:  stderr,
	}
}
