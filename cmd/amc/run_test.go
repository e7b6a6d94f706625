// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochrare/config"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-version"}, &stdout, &stderr))
	assert.Equal(t, "amc "+version+"\n", stdout.String())
}

func TestRun_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amc.yaml")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-init", path}, &stdout, &stderr))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestRun_GeneratedPipeline(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "amc.yaml")
	cfg := config.Default()
	cfg.Generate.Samples = 300
	cfg.Generate.Thinning = 5
	cfg.Chain.K = 5
	cfg.Simulate.Steps = 50
	require.NoError(t, cfg.Save(cfgPath))

	out := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", cfgPath, "-out", out, "-no-plots", "-log-level", "debug"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "301 states, 50 simulated steps")
	assert.Contains(t, stderr.String(), "analogue chain built")
	for _, name := range []string{fileTrajectory, fileSimulated, fileConfig} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, plotTrajectory))

	_, statErr := os.Stat(filepath.Join(out, fileCommittor))
	assert.Equal(t, strings.Contains(stdout.String(), "committor |A|="), statErr == nil)

	// The saved config reflects the flag overrides.
	saved, err := config.Load(filepath.Join(out, fileConfig))
	require.NoError(t, err)
	assert.Equal(t, out, saved.Output.Dir)
	assert.False(t, saved.Output.Plots)
}

// TestRun_TrajectoryFile runs the pipeline on a gambler's-ruin-like walk
// read from CSV, with plots.
func TestRun_TrajectoryFile(t *testing.T) {
	dir := t.TempDir()
	traj := filepath.Join(dir, "walk.csv")
	var b strings.Builder
	b.WriteString("x\n")
	for i := 0; i < 40; i++ {
		v := i % 10
		if (i/10)%2 == 1 {
			v = 9 - v
		}
		b.WriteString(strconv.Itoa(v) + "\n")
	}
	require.NoError(t, os.WriteFile(traj, []byte(b.String()), 0o644))

	out := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-trajectory", traj, "-header", "-k", "2", "-steps", "10", "-out", out, "-no-committor"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "40 states, 10 simulated steps")
	assert.FileExists(t, filepath.Join(out, plotTrajectory))
	assert.FileExists(t, filepath.Join(out, plotSimulated))
	assert.NoFileExists(t, filepath.Join(out, fileCommittor))

	// The written trajectory is a valid input and reproduces itself.
	again := filepath.Join(dir, "again")
	err = run([]string{"-trajectory", filepath.Join(out, fileTrajectory), "-header", "-k", "2", "-steps", "10", "-out", again, "-no-committor", "-no-plots"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	first, err := os.ReadFile(filepath.Join(out, fileTrajectory))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(again, fileTrajectory))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.True(t, strings.HasPrefix(string(first), "t,x\n"))
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Error(t, run([]string{"-bogus"}, &stdout, &stderr))

	err := run([]string{"-k", "0", "-out", t.TempDir()}, &stdout, &stderr)
	require.ErrorIs(t, err, config.ErrInvalid)

	err = run([]string{"-trajectory", filepath.Join(t.TempDir(), "none.csv"), "-out", t.TempDir()}, &stdout, &stderr)
	require.ErrorIs(t, err, os.ErrNotExist)
}
