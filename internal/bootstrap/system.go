package bootstrap

import (
	"os"
	"os/exec"

	"github.com/condaprep/condaprep/internal/fsutil"
)

// System abstracts OS operations needed by the bootstrapper. This interface
// is intentionally package-local to enable parallel-safe unit tests without
// shared global state; conda defines its own Runner interface with
// operations specific to its needs.
type System interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	CreateTemp(dir string, pattern string) (*os.File, error)
	Rename(oldpath string, newpath string) error
	Getenv(key string) string
	Setenv(key string, value string) error
	Environ() []string
	LookPath(file string) (string, error)
	RunCommand(cmd *exec.Cmd) error
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes path and any children it contains.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFileAtomic writes data to a file atomically by writing a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// CreateTemp creates a new temporary file in dir.
func (RealSystem) CreateTemp(dir string, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

// Rename renames (moves) oldpath to newpath.
func (RealSystem) Rename(oldpath string, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Setenv sets the value of the environment variable named by key.
func (RealSystem) Setenv(key string, value string) error {
	return os.Setenv(key, value)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// LookPath searches for an executable in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// RunCommand starts cmd and waits for it to complete.
func (RealSystem) RunCommand(cmd *exec.Cmd) error {
	return cmd.Run()
}
