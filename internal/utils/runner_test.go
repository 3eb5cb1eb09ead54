package utils

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunner_RunWithInput(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	out, _, err := ExecRunner{}.RunWithInput(context.Background(), []byte("hello"), "cat")
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
}

func TestExecRunner_MissingCommand(t *testing.T) {
	_, _, err := ExecRunner{}.Run(context.Background(), "definitely-not-a-command-xyz")
	require.Error(t, err)
}

func TestOpenCommand(t *testing.T) {
	name, args := OpenCommand("linux", "/tmp/a.html")
	require.Equal(t, "xdg-open", name)
	require.Equal(t, []string{"/tmp/a.html"}, args)

	name, _ = OpenCommand("darwin", "/tmp/a.html")
	require.Equal(t, "open", name)
}

func TestClipboardCommands(t *testing.T) {
	require.Equal(t, [][]string{{"pbcopy"}}, ClipboardCommands("darwin", false))
	require.Equal(t, "wl-copy", ClipboardCommands("linux", true)[0][0])
	require.Equal(t, "xclip", ClipboardCommands("linux", false)[0][0])
}
