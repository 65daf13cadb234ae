package setup

import (
	"fmt"
	"os/exec"
)

// StepResult records one executed step.
type StepResult struct {
	Step  Step
	Err   error
	Lines []string // output lines emitted while the step ran
}

// Report summarizes one setup run.
type Report struct {
	Results   []StepResult
	Succeeded int
	Failed    int
}

// Summary returns a one-line description of the run for the completion screen.
func (rep *Report) Summary() string {
	if len(rep.Results) == 0 {
		return "No steps selected, nothing to do"
	}
	if rep.Failed == 0 {
		return fmt.Sprintf("All %d selected steps completed", rep.Succeeded)
	}
	return fmt.Sprintf("%d steps completed, %d failed", rep.Succeeded, rep.Failed)
}

// runner carries the command plumbing a step needs. Tests swap execCommand
// and lookPathFn for fakes; production code uses os/exec.
type runner struct {
	execCommand func(name string, args ...string) error
	lookPathFn  func(name string) (string, error)
	logLine     func(line string)

	lines *[]string
}

func (r *runner) exec(name string, args ...string) error {
	return r.execCommand(name, args...)
}

func (r *runner) lookPath(name string) (string, error) {
	return r.lookPathFn(name)
}

func (r *runner) commandExists(name string) bool {
	_, err := r.lookPathFn(name)
	return err == nil
}

func (r *runner) logf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	*r.lines = append(*r.lines, line)
	if r.logLine != nil {
		r.logLine(line)
	}
}

func defaultExec(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Run executes the selected steps in numbered order, one at a time. A failing
// step is recorded and the run continues with the next selected step.
// progress, if non-nil, receives the step about to run; logLine, if non-nil,
// receives step output lines as they happen.
func Run(sel *Selection, progress func(step Step), logLine func(line string)) *Report {
	return runWith(sel, progress, logLine, defaultExec, exec.LookPath)
}

// runWith is Run with injectable command plumbing.
func runWith(sel *Selection, progress func(step Step), logLine func(line string),
	execCommand func(name string, args ...string) error,
	lookPath func(name string) (string, error)) *Report {

	rep := &Report{}

	for _, step := range Steps() {
		if !sel.IsSelected(step.ID) {
			continue
		}
		if progress != nil {
			progress(step)
		}

		result := StepResult{Step: step}
		r := &runner{
			execCommand: execCommand,
			lookPathFn:  lookPath,
			logLine:     logLine,
			lines:       &result.Lines,
		}

		result.Err = step.run(r)
		if result.Err != nil {
			rep.Failed++
		} else {
			rep.Succeeded++
		}
		rep.Results = append(rep.Results, result)
	}

	return rep
}
