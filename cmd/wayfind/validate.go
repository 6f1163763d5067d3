package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

func validateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a route configuration",
		Long: `Validate a route configuration without starting a server.

Errors (duplicate ids, bad patterns, unsupported versions) exit
non-zero. Warnings are printed but do not fail the command unless
--strict is set.

Examples:
  wayfind validate routes.yaml
  wayfind validate s3://my-bucket/router/routes.yaml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, strict bool) error {
	src, err := configSource(cmd.Context(), path)
	if err != nil {
		return err
	}
	cfg, err := routecfg.FromSource(cmd.Context(), src)
	if err != nil {
		return err
	}

	result := routecfg.Validate(cfg)

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", e)
	}

	if !result.Valid {
		return fmt.Errorf("%s: %s", src.Describe(), result.Summary())
	}
	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("%s: %d warning(s) with --strict", src.Describe(), len(result.Warnings))
	}

	fmt.Printf("\033[32m✓\033[0m %s is valid\n", src.Describe())
	return nil
}
