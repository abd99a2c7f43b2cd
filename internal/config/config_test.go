package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvTimeout:      "250ms",
		EnvGRPCAddr:     ":7000",
		EnvResolverAddr: "resolver:7000",
		EnvNamespace:    "dappnode",
		EnvMetricsAddr:  "",
	}))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, ":7000", cfg.GRPCAddr)
	assert.Equal(t, "resolver:7000", cfg.ResolverAddr)
	assert.Equal(t, "dappnode", cfg.Namespace)
	assert.Equal(t, ":9091", cfg.MetricsAddr, "empty values keep the default")
}

func TestFromLookup_BadTimeout(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{EnvTimeout: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DNP_NAMESPACE=from-file\nDNP_GRPC_ADDR=:6000\n"), 0o600))

	t.Setenv(EnvGRPCAddr, ":5000")
	t.Setenv(EnvNamespace, "")
	require.NoError(t, os.Unsetenv(EnvNamespace))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Namespace)
	assert.Equal(t, ":5000", cfg.GRPCAddr, "the process environment wins over the file")
}

func TestBindFlags(t *testing.T) {
	cfg := Default()
	cfg.Namespace = "from-env"
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindTimeout(fs)
	cfg.BindServer(fs)
	cfg.BindClient(fs)

	require.NoError(t, fs.Parse([]string{"-timeout=0", "-server=remote:1"}))
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "remote:1", cfg.ResolverAddr)
	assert.Equal(t, "from-env", cfg.Namespace)
}
