// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), errOut.String())

	return out.String()
}

func TestFamilies(t *testing.T) {
	out := run(t, "families")
	require.Contains(t, out, "clusters_hypercube\n")
	require.Contains(t, out, "paths_hypercube_LC\n")
	require.Contains(t, out, "MHD_LC_hypercube\n")
	require.Contains(t, out, "H_PXP\n")
}

func TestGenerate_WholeGraphFamily(t *testing.T) {
	out := run(t, "--backend", "memory", "generate", "H_PXP", "--n", "6", "--nr", "2", "--p", "0.5")
	require.Equal(t, "H_PXP_N6_NR2_p0.5000.bin\t2 realizations\n", out)
}

func TestGenerate_LocalBackend(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "--backend", "local", "--data-dir", dir, "generate", "clusters_hypercube", "--n", "4", "--nr", "5", "--p", "0.5")
	require.Equal(t, "clusters_hypercube_N4_NR5_p0.5000.bin\t5 realizations\n", out)

	_, err := os.Stat(filepath.Join(dir, "clusters_hypercube_N4_NR5_p0.5000.bin"))
	require.NoError(t, err)
}

func TestGenerate_UnknownFamily(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend", "memory", "generate", "clusters_torus"})
	require.Error(t, cmd.Execute())
}

func TestStats_FullCube(t *testing.T) {
	out := run(t, "--backend", "memory", "stats", "--n", "5", "--nr", "3", "--p", "1")
	require.Contains(t, out, "S\t32\n")
	require.Contains(t, out, "S'\t32\n")
	require.Contains(t, out, "32  0.03125  1")
}

func TestMHD_FullCube(t *testing.T) {
	out := run(t, "--backend", "memory", "mhd", "--n", "3", "--ncoeff", "3", "--tmax", "10", "--nt", "5", "--nr", "1", "--log=false")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	first := strings.Split(lines[0], "\t")
	require.Equal(t, "0", first[0])
	v, err := strconv.ParseFloat(first[1], 64)
	require.NoError(t, err)
	require.InDelta(t, 0, v, 1e-9)
}

func TestInvalidBackend(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend", "tape", "generate", "clusters_PXP"})
	require.Error(t, cmd.Execute())
}
