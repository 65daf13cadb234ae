package setup

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder captures every command a run would have executed.
type recorder struct {
	commands []string
	failOn   func(cmd string) bool
}

func (r *recorder) exec(name string, args ...string) error {
	cmd := name + " " + strings.Join(args, " ")
	r.commands = append(r.commands, cmd)
	if r.failOn != nil && r.failOn(cmd) {
		return fmt.Errorf("exit status 1")
	}
	return nil
}

func lookPathOK(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func TestRunNothingSelectedIsNoOp(t *testing.T) {
	rec := &recorder{}
	rep := runWith(NewSelection(), nil, nil, rec.exec, lookPathOK)

	require.Empty(t, rec.commands)
	require.Empty(t, rep.Results)
	require.Equal(t, "No steps selected, nothing to do", rep.Summary())
}

func TestRunExecutesSelectedStepsInOrder(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(3)
	sel.Toggle(1)

	var ran []int
	rec := &recorder{}
	rep := runWith(sel, func(step Step) { ran = append(ran, step.ID) }, nil, rec.exec, lookPathOK)

	// Numbered order, not toggle order
	require.Equal(t, []int{1, 3}, ran)
	require.Equal(t, 2, rep.Succeeded)
	require.Equal(t, 0, rep.Failed)
	require.Contains(t, rec.commands[0], "archlinux-keyring")
	require.Contains(t, rec.commands[1], "-Syu")
}

func TestRunContinuesAfterFailingStep(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	sel := NewSelection()
	sel.Toggle(1)
	sel.Toggle(7)

	rec := &recorder{failOn: func(cmd string) bool {
		return strings.Contains(cmd, "archlinux-keyring")
	}}
	rep := runWith(sel, nil, nil, rec.exec, lookPathOK)

	require.Equal(t, 1, rep.Failed)
	require.Equal(t, 1, rep.Succeeded)
	require.Len(t, rep.Results, 2)
	require.Error(t, rep.Results[0].Err)
	require.NoError(t, rep.Results[1].Err)
	require.Contains(t, rep.Summary(), "1 failed")
}

func TestInstallPackagesToleratesIndividualFailures(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(5)

	rec := &recorder{failOn: func(cmd string) bool {
		return strings.Contains(cmd, "brave-bin")
	}}
	rep := runWith(sel, nil, nil, rec.exec, lookPathOK)

	// Every package was attempted despite the failure
	require.Len(t, rec.commands, len(packages))
	require.Equal(t, 1, rep.Failed)

	result := rep.Results[0]
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "brave-bin")

	var tally string
	for _, line := range result.Lines {
		if strings.Contains(line, "installed") && strings.Contains(line, "failed") {
			tally = line
		}
	}
	require.Equal(t, fmt.Sprintf("packages: %d installed, 1 failed", len(packages)-1), tally)
}

func TestMirrorStepSkipsWhenReflectorMissing(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(2)

	rec := &recorder{}
	rep := runWith(sel, nil, nil, rec.exec, func(name string) (string, error) {
		return "", fmt.Errorf("not found")
	})

	require.Empty(t, rec.commands)
	require.Equal(t, 1, rep.Succeeded)
	require.Contains(t, rep.Results[0].Lines[0], "reflector not installed")
}

func TestCreateDirectoriesStep(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sel := NewSelection()
	sel.Toggle(7)

	rec := &recorder{}
	rep := runWith(sel, nil, nil, rec.exec, lookPathOK)

	require.Equal(t, 1, rep.Succeeded)
	require.DirExists(t, home+"/Projects")
	require.DirExists(t, home+"/.local/bin")
}
