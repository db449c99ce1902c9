package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const thermal = `
network "TH_PS" {
  component "ps" { kind = "phase_shifter" }
  derived "PS" {
    expr = 0.1 * PW
    args = { PW = 0 }
  }
  raise_pins = true
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "th.hcl")
	require.NoError(t, os.WriteFile(file, []byte(thermal), 0o644))

	out, err := run(t, "kinds")
	require.NoError(t, err)
	require.Contains(t, out, "phase_shifter")
	require.Contains(t, out, "user_waveguide")

	out, err = run(t, "networks", "-f", file)
	require.NoError(t, err)
	require.Contains(t, out, "TH_PS")
	require.Contains(t, out, "PW=0")

	out, err = run(t, "solve", "-f", file, "--set", "PW=10", "--pins", "a0,b0")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "T=1 "), out)

	out, err = run(t, "solve", "-f", file, "--pins", "")
	require.NoError(t, err)
	require.Contains(t, out, "a0")
	require.Contains(t, out, "b0")

	csv := filepath.Join(dir, "out.csv")
	png := filepath.Join(dir, "out.png")
	_, err = run(t, "sweep", "-f", file, "-n", "TH_PS", "--sweep", "PW=0:10:3", "--pins", "a0,b0", "--csv", csv, "--plot", png)
	require.NoError(t, err)
	data, err := os.ReadFile(csv)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4, "表头加三行")
	_, err = os.Stat(png)
	require.NoError(t, err)

	_, err = run(t, "solve", "-f", file, "-n", "nope", "--pins", "a0,b0")
	require.Error(t, err)
	_, err = run(t, "solve", "-f", filepath.Join(dir, "missing.hcl"), "-n", "TH_PS")
	require.Error(t, err)
}
