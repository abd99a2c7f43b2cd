// Package config resolves settings shared by the dnp binaries.
//
// Values come from DNP_* environment variables, optionally seeded from a .env
// file, and become the defaults of the command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

const (
	EnvTimeout      = "DNP_RESOLVE_TIMEOUT"
	EnvGRPCAddr     = "DNP_GRPC_ADDR"
	EnvMetricsAddr  = "DNP_METRICS_ADDR"
	EnvResolverAddr = "DNP_RESOLVER_ADDR"
	EnvNamespace    = "DNP_NAMESPACE"
)

// Config holds the settings common to the server, the CLIs and the manager.
type Config struct {
	// Timeout bounds one resolution. Zero or less disables the bound.
	Timeout time.Duration
	// GRPCAddr is the listen address of the resolver service.
	GRPCAddr string
	// MetricsAddr is the listen address of the resolver service metrics endpoint.
	MetricsAddr string
	// ResolverAddr is the address clients dial to reach the resolver service.
	ResolverAddr string
	// Namespace is where InstallRequests are created.
	Namespace string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timeout:      resolver.DefaultTimeout,
		GRPCAddr:     ":9090",
		MetricsAddr:  ":9091",
		ResolverAddr: "localhost:9090",
		Namespace:    "default",
	}
}

// LoadDotEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv overlays DNP_* variables from the process environment on Default.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup overlays variables returned by lookup on Default.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	for key, dst := range map[string]*string{
		EnvGRPCAddr:     &cfg.GRPCAddr,
		EnvMetricsAddr:  &cfg.MetricsAddr,
		EnvResolverAddr: &cfg.ResolverAddr,
		EnvNamespace:    &cfg.Namespace,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	return cfg, nil
}

// BindTimeout registers the -timeout flag with the current value as default.
func (c *Config) BindTimeout(fs *flag.FlagSet) {
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Resolution time budget; 0 disables it. Env: "+EnvTimeout)
}

// BindServer registers the listen address flags.
func (c *Config) BindServer(fs *flag.FlagSet) {
	fs.StringVar(&c.GRPCAddr, "grpc-bind-address", c.GRPCAddr, "The address the resolver service binds to. Env: "+EnvGRPCAddr)
	fs.StringVar(&c.MetricsAddr, "metrics-bind-address", c.MetricsAddr, "The address the metric endpoint binds to. Env: "+EnvMetricsAddr)
}

// BindClient registers the flags used to reach the resolver service and the cluster.
func (c *Config) BindClient(fs *flag.FlagSet) {
	fs.StringVar(&c.ResolverAddr, "server", c.ResolverAddr, "Resolver service address. Env: "+EnvResolverAddr)
	fs.StringVar(&c.Namespace, "namespace", c.Namespace, "Namespace for InstallRequests. Env: "+EnvNamespace)
}
