// Package exec invokes the external fimfic2epub tool.
package exec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/ZodiacalComet/f2e-alt-cover/shutdown"
)

// DefaultExecutable is the fimfic2epub entrypoint; npm installs a .cmd shim
// on Windows.
func DefaultExecutable() string {
	if runtime.GOOS == "windows" {
		return "fimfic2epub.cmd"
	}
	return "fimfic2epub"
}

// LookupExecutable verifies that path resolves to a runnable program, either
// as an explicit file path or through PATH.
func LookupExecutable(path string) error {
	if strings.ContainsRune(path, os.PathSeparator) {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("executable %s doesn't exist: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("executable %s is a directory", path)
		}
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable %s not found in PATH: %w", path, err)
	}
	return nil
}

// Process is a single invocation of an external command. The command runs
// without a shell; Args are passed through verbatim.
type Process struct {
	Cmd  string
	Args []string
	Cwd  string
	Env  map[string]string

	// InheritStdio connects the child to this process's stdin and mirrors
	// its output to our stdout/stderr in addition to capturing it.
	InheritStdio bool

	Started *time.Time
	Err     error
	Stdout  bytes.Buffer
	Stderr  bytes.Buffer

	cmd *exec.Cmd
}

// String renders the invocation with shell-style quoting for logging.
func (p *Process) String() string {
	quoted := lo.Map(append([]string{p.Cmd}, p.Args...), func(arg string, _ int) string {
		if strings.ContainsAny(arg, " \t") {
			return fmt.Sprintf("%q", arg)
		}
		return arg
	})
	return strings.Join(quoted, " ")
}

// Run executes the command and blocks until it exits. The child is
// terminated by a shutdown hook if we are interrupted first.
func (p *Process) Run() error {
	cmd := exec.Command(p.Cmd, p.Args...)
	cmd.Dir = p.Cwd

	if p.InheritStdio {
		cmd.Stdin = os.Stdin
		cmd.Stdout = io.MultiWriter(&p.Stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&p.Stderr, os.Stderr)
	} else {
		cmd.Stdout = &p.Stdout
		cmd.Stderr = &p.Stderr
	}

	if len(p.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range p.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	p.cmd = cmd
	now := time.Now()
	p.Started = &now

	logger.Infof("Executing: %s", p)

	if err := cmd.Start(); err != nil {
		p.Err = fmt.Errorf("failed to start %s: %w", p.Cmd, err)
		return p.Err
	}

	shutdown.AddHookWithPriority("Stopping "+p.Cmd, shutdown.PriorityProcess, func() {
		_ = p.Terminate()
	})

	p.Err = cmd.Wait()
	return p.Err
}

// Out returns the combined captured output.
func (p *Process) Out() string {
	return p.Stderr.String() + p.Stdout.String()
}

func (p *Process) IsOK() bool {
	return p.Err == nil && p.cmd != nil && p.cmd.ProcessState != nil && p.cmd.ProcessState.Success()
}

// ExitCode returns the child's exit code, or 1 for failures that never
// produced one.
func (p *Process) ExitCode() int {
	if p.cmd != nil && p.cmd.ProcessState != nil {
		return p.cmd.ProcessState.ExitCode()
	}
	if p.Err != nil {
		return 1
	}
	return 0
}

// Terminate interrupts the child and waits for it to exit.
func (p *Process) Terminate() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		return err
	}
	_, err := p.cmd.Process.Wait()
	return err
}
