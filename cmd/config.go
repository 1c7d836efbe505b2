package cmd

import (
	"fmt"
	"os"
	"strings"

	bullposter_protocol "bullposter-cli/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

const (
	defaultRpcEndpoint = "https://api.devnet.solana.com"
	defaultHTTPAddr    = ":8080"
	defaultLogLevel    = "info"

	envRpcEndpoints = "BULLPOSTER_RPC_ENDPOINTS"
	envHeliusApiKey = "HELIUS_API_KEY"
	envProgramID    = "BULLPOSTER_PROGRAM_ID"
	envLogLevel     = "BULLPOSTER_LOG_LEVEL"
	envHTTPAddr     = "BULLPOSTER_HTTP_ADDR"
)

// Config is the runtime configuration shared by every command.
type Config struct {
	// RpcEndpoints are tried in order for every account read.
	RpcEndpoints []string
	ProgramID    solana.PublicKey
	LogLevel     string
	HTTPAddr     string

	// DotenvLoaded reports whether a .env file was found.
	DotenvLoaded bool
}

// LoadConfig reads .env from the current directory, if present, and then the
// environment.
func LoadConfig() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		ProgramID:    bullposter_protocol.ProgramID,
		LogLevel:     envOr(envLogLevel, defaultLogLevel),
		HTTPAddr:     envOr(envHTTPAddr, defaultHTTPAddr),
		DotenvLoaded: loaded,
	}

	if raw := os.Getenv(envProgramID); raw != "" {
		id, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", envProgramID, raw, err)
		}
		cfg.ProgramID = id
	}

	cfg.RpcEndpoints = rpcEndpoints(os.Getenv(envRpcEndpoints), os.Getenv(envHeliusApiKey))
	return cfg, nil
}

// ApplyOverrides replaces configured values with ones given on the command line.
func (c *Config) ApplyOverrides(rpc []string, programID string) error {
	if endpoints := splitEndpoints(strings.Join(rpc, ",")); len(endpoints) > 0 {
		c.RpcEndpoints = endpoints
	}
	if programID != "" {
		id, err := solana.PublicKeyFromBase58(programID)
		if err != nil {
			return fmt.Errorf("invalid --program-id %q: %w", programID, err)
		}
		c.ProgramID = id
	}
	return nil
}

// rpcEndpoints builds the prioritized endpoint list. A Helius key puts the
// Helius devnet endpoint first.
func rpcEndpoints(raw, heliusApiKey string) []string {
	var endpoints []string
	if heliusApiKey != "" {
		endpoints = append(endpoints, fmt.Sprintf("https://devnet.helius-rpc.com/?api-key=%s", heliusApiKey))
	}
	for _, e := range splitEndpoints(raw) {
		if !contains(endpoints, e) {
			endpoints = append(endpoints, e)
		}
	}
	if len(endpoints) == 0 {
		endpoints = []string{defaultRpcEndpoint}
	}
	return endpoints
}

func splitEndpoints(raw string) []string {
	var out []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
