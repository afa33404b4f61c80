package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wa-resolver/tests/testutil"
)

func TestResolveCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	deps := t.TempDir()
	cache := t.TempDir()
	expected := testutil.WriteAsset(t, deps, "dhrystone/bin/arm64/dhrystone", "dhrystone binary")

	cmd := exec.Command("go", "run", "./cmd/wa-resolver", "resolve",
		"--kind", "executable",
		"--owner", "dhrystone",
		"--abi", "arm64",
		"--filename", "dhrystone",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(),
		"WA_RESOLVER_DEPENDENCIES_DIRECTORY="+deps,
		"WA_RESOLVER_CACHE_DIRECTORY="+cache,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	assert.Contains(t, string(out), expected)
	require.FileExists(t, expected)
}

func TestResolveCommandE2EStrictMiss(t *testing.T) {
	root := testutil.RepoRoot(t)
	deps := t.TempDir()
	cache := t.TempDir()

	// `go run` always exits 1 on a non-zero child exit, so build the
	// binary and run it directly to observe the real exit code.
	bin := filepath.Join(t.TempDir(), "wa-resolver")
	build := exec.Command("go", "build", "-o", bin, "./cmd/wa-resolver")
	build.Dir = root
	buildOut, buildErr := build.CombinedOutput()
	require.NoError(t, buildErr, string(buildOut))

	cmd := exec.Command(bin, "resolve",
		"--kind", "jar",
		"--owner", "uibench",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(),
		"WA_RESOLVER_DEPENDENCIES_DIRECTORY="+deps,
		"WA_RESOLVER_CACHE_DIRECTORY="+cache,
	)
	out, err := cmd.CombinedOutput()
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.ExitCode())
	assert.Contains(t, string(out), "could not be found")
}

func TestResolveCommandE2ELenientMiss(t *testing.T) {
	root := testutil.RepoRoot(t)
	deps := t.TempDir()
	cache := t.TempDir()

	cmd := exec.Command("go", "run", "./cmd/wa-resolver", "resolve",
		"--kind", "jar",
		"--owner", "uibench",
		"--lenient",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(),
		"WA_RESOLVER_DEPENDENCIES_DIRECTORY="+deps,
		"WA_RESOLVER_CACHE_DIRECTORY="+cache,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Contains(t, string(out), "not found")
}
