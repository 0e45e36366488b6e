package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Naufalpc11/Wood-Classification/client"
	"github.com/Naufalpc11/Wood-Classification/internal/config"
)

// app carries settings shared by all sub-commands. Flags override the
// PCD_* environment loaded by internal/config.
type app struct {
	cfg *config.Config

	baseURL string
	timeout time.Duration
	retries int
	debug   bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "pcdctl",
		Short:         "Command line client for the Wood Knots Detection API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.baseURL, "base-url", "", "backend API root (env PCD_API_BASE_URL, default http://localhost:5000/api)")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-request timeout (env PCD_HTTP_TIMEOUT)")
	pf.IntVar(&a.retries, "retries", 0, "max attempts for retryable failures (env PCD_RETRY_MAX_ATTEMPTS)")
	pf.BoolVarP(&a.debug, "debug", "d", false, "log HTTP requests and responses")

	rootCmd.AddCommand(newUploadCmd(a))
	rootCmd.AddCommand(newProcessCmd(a))
	rootCmd.AddCommand(newResultsCmd(a))
	rootCmd.AddCommand(newClassifyCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.APIBaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = a.timeout
	}
	if flags.Changed("retries") {
		cfg.RetryMaxAttempts = a.retries
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	cfg.Init()
	a.cfg = cfg
	return nil
}

func (a *app) client() (*client.Client, error) {
	c, err := a.cfg.NewClient()
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// withClient runs fn with a fresh client and closes it afterwards.
func (a *app) withClient(fn func(c *client.Client) error) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}

func printResult(w io.Writer, res client.Result) error {
	out, err := res.Indent()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func logElapsed(op string, start time.Time, err error) {
	ev := log.Debug()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("op", op).Dur("elapsed", time.Since(start)).Msg("request finished")
}
