package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/whyql/internal/cliconfig"
	"github.com/bft-labs/whyql/internal/devserver"
	"github.com/bft-labs/whyql/internal/report"
	"github.com/bft-labs/whyql/internal/watch"
	"github.com/bft-labs/whyql/pkg/fetch"
	"github.com/bft-labs/whyql/pkg/log"
)

const longHelp = `Issue one HTTP request against an endpoint and print what happened.

The endpoint and request options come from, in increasing precedence:
defaults, $HOME/.whyql/config.toml (or --config), WHYQL_* environment
variables, and flags. The result is written to stdout; responses and
failures are both reported and the exit status is 0 unless --fail-on-error
is set.`

var exampleUsage = strings.TrimSpace(`
  whyql
  whyql --endpoint http://localhost:8000/a.json -H "Accept: application/json"
  whyql --config ./whyql.toml --watch
  whyql serve --addr :8000 --dir ./fixtures
`)

var errRequestFailed = errors.New("request failed")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func versionString() string {
	return fmt.Sprintf("%s (fetch %s) %s/%s", getVersion(), fetch.Version, runtime.GOOS, runtime.GOARCH)
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	diag := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "whyql",
		Short:         "Issue one HTTP request and print the outcome",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       versionString(),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := cliconfig.ResolveConfigPath(cfgPath)
			if err != nil {
				return err
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// cfg holds defaults plus flag values; keep it as the base for reloads.
			base := cfg
			loaded, err := cliconfig.Load(base, cfgFile, changed)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			level, err := loaded.Level()
			if err != nil {
				return err
			}
			logCfg := loaded
			logCfg.Headers = maskHeaders(loaded.Headers)
			levelDiag := diag.Level(level)
			levelDiag.Debug().Interface("config", logCfg).Msg("configuration")

			out := resultLogger(os.Stdout, loaded, level)

			if !loaded.Watch {
				if res := execute(cmd.Context(), loaded, out); !res.OK() && loaded.FailOnError {
					return errRequestFailed
				}
				return nil
			}

			if cfgFile == "" {
				return fmt.Errorf("--watch needs a config file")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			execute(ctx, loaded, out)
			w := watch.New(cfgFile, out)
			return w.Run(ctx, func(ctx context.Context) {
				next, nextOut, err := reload(base, cfgFile, changed, os.Stdout)
				if err != nil {
					out.Error("reload config", log.Err(err))
					return
				}
				execute(ctx, next, nextOut)
			})
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.whyql/config.toml)")
	root.Flags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "URL to request")
	root.Flags().StringVarP(&cfg.Method, "method", "X", cfg.Method, "HTTP method")
	root.Flags().StringArrayVarP(&cfg.Headers, "header", "H", nil, `request header as "Name: value" (repeatable)`)
	root.Flags().StringVar(&cfg.Mode, "mode", cfg.Mode, "cross-origin mode: cors, no-cors or same-origin")
	root.Flags().StringVar(&cfg.Cache, "cache", cfg.Cache, "cache directive: default, no-store, reload, no-cache, force-cache or only-if-cached")
	root.Flags().StringVarP(&cfg.Body, "data", "d", cfg.Body, "request body (not allowed with GET or HEAD)")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall request timeout (0 leaves it to the transport)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum level written to stdout")
	root.Flags().BoolVar(&cfg.JSON, "json", cfg.JSON, "write results as JSON lines")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the request whenever the config file changes")
	root.Flags().BoolVar(&cfg.FailOnError, "fail-on-error", cfg.FailOnError, "exit with status 1 if the request fails")

	root.AddCommand(newServeCommand())

	if err := root.Execute(); err != nil {
		diag.Error().Err(err).Msg("whyql")
		os.Exit(1)
	}
}

// execute runs one request with cfg and reports it.
func execute(ctx context.Context, cfg cliconfig.Config, out log.Logger) fetch.Result {
	opts, err := cfg.RequestOptions()
	if err != nil {
		res := fetch.Result{Err: &fetch.Error{Kind: fetch.KindInvalidRequest, Message: err.Error(), Err: err}}
		report.Result(out, cfg.Endpoint, res)
		return res
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res := fetch.New(cfg.Endpoint).Execute(ctx, opts)
	report.Result(out, cfg.Endpoint, res)
	return res
}

func resultLogger(w io.Writer, cfg cliconfig.Config, level zerolog.Level) log.Logger {
	format := log.FormatConsole
	if cfg.JSON {
		format = log.FormatJSON
	}
	return log.NewZerologAdapter(w, format, level)
}

// reload re-reads the config file and rebuilds the result logger so that
// log_level and json changes take effect on the next run.
func reload(base cliconfig.Config, path string, changed map[string]bool, w io.Writer) (cliconfig.Config, log.Logger, error) {
	next, err := cliconfig.Load(base, path, changed)
	if err != nil {
		return next, nil, err
	}
	level, err := next.Level()
	if err != nil {
		return next, nil, err
	}
	return next, resultLogger(w, next, level), nil
}

func maskHeaders(headers []string) []string {
	masked := make([]string, len(headers))
	for i, h := range headers {
		name, _, ok := strings.Cut(h, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Authorization") {
			masked[i] = name + ": *****"
			continue
		}
		masked[i] = h
	}
	return masked
}

func newServeCommand() *cobra.Command {
	cfg := devserver.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory so a local endpoint can be requested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			logger := log.NewZerologAdapterWithLogger(cliconfig.Logger())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return devserver.Run(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.Dir, "dir", cfg.Dir, "directory to serve")
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "allow-origin", cfg.AllowedOrigins, "origins allowed by CORS")
	return cmd
}
