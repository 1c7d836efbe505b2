package cmd

import (
	"os"
	"testing"

	bullposter_protocol "bullposter-cli/solana"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envRpcEndpoints, envHeliusApiKey, envProgramID, envLogLevel, envHTTPAddr} {
		t.Setenv(k, "")
	}
	// no .env in the package directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{defaultRpcEndpoint}, cfg.RpcEndpoints)
	assert.Equal(t, bullposter_protocol.ProgramID, cfg.ProgramID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.DotenvLoaded)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envRpcEndpoints, " https://a.example , https://b.example,,")
	t.Setenv(envHeliusApiKey, "k3y")
	t.Setenv(envProgramID, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envHTTPAddr, "127.0.0.1:9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://devnet.helius-rpc.com/?api-key=k3y",
		"https://a.example",
		"https://b.example",
	}, cfg.RpcEndpoints)
	assert.Equal(t, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", cfg.ProgramID.String())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
}

func TestLoadConfig_BadProgramID(t *testing.T) {
	clearEnv(t)
	t.Setenv(envProgramID, "not-a-key")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), envProgramID)
}

func TestConfig_ApplyOverrides(t *testing.T) {
	cfg := &Config{RpcEndpoints: []string{defaultRpcEndpoint}, ProgramID: bullposter_protocol.ProgramID}

	require.NoError(t, cfg.ApplyOverrides(nil, ""))
	assert.Equal(t, []string{defaultRpcEndpoint}, cfg.RpcEndpoints)

	require.NoError(t, cfg.ApplyOverrides([]string{"https://x.example,https://y.example", "https://z.example"}, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"))
	assert.Equal(t, []string{"https://x.example", "https://y.example", "https://z.example"}, cfg.RpcEndpoints)
	assert.Equal(t, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", cfg.ProgramID.String())

	require.Error(t, cfg.ApplyOverrides(nil, "bad"))
}
