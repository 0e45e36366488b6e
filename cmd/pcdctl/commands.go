package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Naufalpc11/Wood-Classification/client"
)

var errBackendUnreachable = errors.New("backend not reachable")

// simpleCmd builds a command whose whole job is one client call.
func simpleCmd(a *app, use, short string, args cobra.PositionalArgs,
	call func(ctx context.Context, c *client.Client, args []string) (client.Result, error)) *cobra.Command {
	name, _, _ := strings.Cut(use, " ")
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *client.Client) error {
				start := time.Now()
				res, err := call(cmd.Context(), c, args)
				logElapsed(name, start, err)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}
}

func newResultsCmd(a *app) *cobra.Command {
	return simpleCmd(a, "results <image-id>", "Fetch stored processing results", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (client.Result, error) {
			return c.GetResults(ctx, args[0])
		})
}

func newClassifyCmd(a *app) *cobra.Command {
	return simpleCmd(a, "classify <image-id>", "Classify an uploaded image as defective or not", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (client.Result, error) {
			return c.ClassifyImage(ctx, args[0])
		})
}

func newDemoCmd(a *app) *cobra.Command {
	return simpleCmd(a, "demo", "Run the pipeline on the backend's sample image", cobra.NoArgs,
		func(ctx context.Context, c *client.Client, _ []string) (client.Result, error) {
			return c.GetDemoResults(ctx)
		})
}

func newUploadCmd(a *app) *cobra.Command {
	var process bool
	var saveDir string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *client.Client) error {
				ctx := cmd.Context()
				start := time.Now()
				res, err := c.UploadFile(ctx, args[0])
				logElapsed("upload", start, err)
				if err != nil {
					return err
				}
				if err := printResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				if !process {
					return nil
				}
				id, ok := res.ImageID()
				if !ok {
					return fmt.Errorf("upload response has no image id")
				}
				return runProcess(ctx, cmd, c, id, saveDir)
			})
		},
	}
	cmd.Flags().BoolVar(&process, "process", false, "process the image right after uploading it")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "with --process, write pipeline images to this directory")
	return cmd
}

func newProcessCmd(a *app) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "process <image-id>",
		Short: "Run the detection pipeline on an uploaded image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *client.Client) error {
				return runProcess(cmd.Context(), cmd, c, args[0], saveDir)
			})
		},
	}
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "write pipeline step images and the detection result to this directory")
	return cmd
}

func runProcess(ctx context.Context, cmd *cobra.Command, c *client.Client, imageID, saveDir string) error {
	start := time.Now()
	res, err := c.ProcessImage(ctx, imageID)
	logElapsed("process", start, err)
	if err != nil {
		return err
	}
	if err := printResult(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if saveDir == "" {
		return nil
	}
	var pr client.ProcessResponse
	if err := res.Decode(&pr); err != nil {
		return fmt.Errorf("decode process response: %w", err)
	}
	n, err := saveImages(saveDir, pr)
	if err != nil {
		return err
	}
	log.Info().Str("dir", saveDir).Int("files", n).Msg("pipeline images saved")
	return nil
}

// saveImages writes every step image plus the annotated detection result.
func saveImages(dir string, pr client.ProcessResponse) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}
	written := 0
	write := func(base string, uri client.DataURI) error {
		if uri.Empty() {
			return nil
		}
		_, data, err := uri.Decode()
		if err != nil {
			return fmt.Errorf("%s: %w", base, err)
		}
		path := filepath.Join(dir, base+"."+uri.Extension())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		written++
		return nil
	}
	for _, s := range pr.PipelineSteps {
		if err := write(fmt.Sprintf("step_%02d_%s", s.Step, slug(s.Name)), s.Image); err != nil {
			return written, err
		}
	}
	if err := write("detection_result", pr.DetectionResults.ResultImage); err != nil {
		return written, err
	}
	return written, nil
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func newHealthCmd(a *app) *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(c *client.Client) error {
				ctx := cmd.Context()
				if watch <= 0 {
					hs := c.HealthCheck(ctx)
					if err := printJSON(cmd.OutOrStdout(), hs); err != nil {
						return err
					}
					if !hs.Reachable() {
						return errBackendUnreachable
					}
					return nil
				}

				ticker := time.NewTicker(watch)
				defer ticker.Stop()
				for {
					hs := c.HealthCheck(ctx)
					if ctx.Err() != nil {
						return nil
					}
					log.Info().Str("status", hs.Status).Bool("reachable", hs.Reachable()).Msg("health")
					if err := printJSON(cmd.OutOrStdout(), hs); err != nil {
						return err
					}
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
					}
				}
			})
		},
	}
	cmd.Flags().DurationVar(&watch, "watch", 0, "repeat the check at this interval until interrupted")
	return cmd
}
