package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/dnp-manager/internal/candidates"
	"github.com/bayleafwalker/dnp-manager/internal/config"
	"github.com/bayleafwalker/dnp-manager/internal/resolver"
	"github.com/bayleafwalker/dnp-manager/internal/rpc"
)

const (
	exitResolved     = 0
	exitError        = 1
	exitUnresolvable = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	var file string
	var remote bool
	var asJSON bool
	var trace bool
	flag.StringVar(&file, "f", "", "candidate set file (YAML or JSON)")
	flag.BoolVar(&remote, "remote", false, "resolve on the resolver service instead of in-process")
	flag.BoolVar(&asJSON, "json", false, "print the result as JSON")
	flag.BoolVar(&trace, "trace", false, "log every verified combination (local only)")
	bindTimeout(flag.CommandLine, &cfg)
	cfg.BindClient(flag.CommandLine)

	opts := zap.Options{Development: true, DestWriter: os.Stderr}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()
	if trace {
		opts.Level = zapcore.Level(-2)
	}
	log := zap.New(zap.UseFlagOptions(&opts))

	if file == "" {
		fmt.Fprintln(os.Stderr, "dnp-resolve: -f is required")
		flag.Usage()
		return exitError
	}
	req, err := candidates.Load(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	var r resolver.Resolver
	ctx := context.Background()
	if remote {
		conn, err := grpc.NewClient(cfg.ResolverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "dial %s: %v\n", cfg.ResolverAddr, err)
			return exitError
		}
		defer conn.Close()
		r = rpc.NewClient(conn)

		// The server applies its own budget; this bounds the call.
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout+30*time.Second)
		defer cancel()
	} else {
		resolverOpts := []resolver.Option{
			resolver.WithTimeout(cfg.Timeout),
			resolver.WithLogger(log.WithName("resolver")),
		}
		if trace {
			resolverOpts = append(resolverOpts, resolver.WithTracer(resolver.LogTracer{Logger: log.WithName("trace")}))
		}
		r = resolver.NewDefault(resolverOpts...)
	}

	res, err := r.Resolve(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrInvalidCandidateSet), errors.Is(err, resolver.ErrNoCombinations), errors.Is(err, resolver.ErrSearchSpaceTooLarge):
			fmt.Fprintf(os.Stderr, "%s: candidate set rejected: %v\n", file, err)
		default:
			fmt.Fprintf(os.Stderr, "resolve: %v\n", err)
		}
		return exitError
	}

	if err := writeResult(os.Stdout, res, asJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	if !res.Success {
		return exitUnresolvable
	}
	return exitResolved
}

// bindTimeout registers -timeout. The server keeps its own search budget, so
// with -remote the flag only bounds the call.
func bindTimeout(fs *flag.FlagSet, cfg *config.Config) {
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout,
		"Search budget for local runs; 0 disables it. With -remote the server applies its own budget and this only bounds the call. Env: "+config.EnvTimeout)
}

func writeResult(w io.Writer, res resolver.Result, asJSON bool) error {
	out, err := candidates.Encode(res, asJSON)
	if err != nil {
		return err
	}
	if asJSON {
		out = append(out, '\n')
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
