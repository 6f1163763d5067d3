package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Declarative navigation-tree router",
		Long: `Wayfind resolves hierarchical navigation trees against URL paths
and orchestrates the resulting navigations: guards, access checks,
history, modal origin tracking, and failure recovery.

The route tree is a YAML document loaded from a local file or an S3
object.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		validateCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// configSource turns a path argument into a Source. "s3://bucket/key"
// selects S3; everything else is a local file.
func configSource(ctx context.Context, path string) (routecfg.Source, error) {
	if !strings.HasPrefix(path, "s3://") {
		return routecfg.FileSource{Path: path}, nil
	}

	rest := strings.TrimPrefix(path, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 url %q, want s3://bucket/key", path)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return routecfg.NewS3Source(s3.NewFromConfig(awsCfg), bucket, key), nil
}

// loadConfig fetches, parses, and validates a route configuration.
// Warnings go to stderr; validation errors abort.
func loadConfig(ctx context.Context, path string) (*routecfg.Config, error) {
	src, err := configSource(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := routecfg.FromSource(ctx, src)
	if err != nil {
		return nil, err
	}

	result := routecfg.Validate(cfg)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", w)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s: %s", src.Describe(), result.Summary())
	}
	return cfg, nil
}
