package conda

import "os/exec"

// Runner abstracts process execution for the driver. This interface is
// intentionally package-local to enable parallel-safe unit tests without
// shared global state; bootstrap defines its own System interface with
// operations specific to its needs.
type Runner interface {
	Run(cmd *exec.Cmd) error
	Output(cmd *exec.Cmd) ([]byte, error)
}

// RealRunner implements Runner using os/exec directly.
type RealRunner struct{}

// Run starts cmd and waits for it to complete.
func (RealRunner) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

// Output runs cmd and returns its standard output.
func (RealRunner) Output(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}
