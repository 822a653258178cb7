package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-admin/internal/shared/capability"
)

func TestFormatSnapshot(t *testing.T) {
	caps := capability.New([]string{"factions", "promotions"}, true)
	caps.SetImageColumn("promotions", false)

	out := formatSnapshot(caps.Tables(), caps.Snapshot())

	assert.Contains(t, out, "factions       image_url present")
	assert.Contains(t, out, "promotions     image_url missing")
	assert.Contains(t, out, "image uploads  enabled")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, false, nil, "Schema applied"))
	assert.Equal(t, "Schema applied\n", buf.String())

	buf.Reset()
	require.NoError(t, write(&buf, true, map[string]bool{"applied": true}, "ignored"))
	var got map[string]bool
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got["applied"])
}

func TestCmdError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	err := unavailable(base)

	assert.Equal(t, exitUnavailable, err.Code)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, base.Error(), err.Error())
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"storage", "init"},
		{"storage", "check"},
		{"capabilities"},
		{"schema", "apply"},
		{"schema", "print"},
		{"cache", "flush"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	capCmd, _, _ := rootCmd.Find([]string{"capabilities"})
	assert.Contains(t, capCmd.Annotations, "needsDB")
}
