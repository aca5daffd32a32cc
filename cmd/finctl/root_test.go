package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"migrate", "fix-sequences", "clear", "load-demo", "export", "token"}, names)
}

func TestClear_RequiresConfirmation(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")

	root := newRootCommand()
	root.SetArgs([]string{"clear"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotConfirmed)
}
