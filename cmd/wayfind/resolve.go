package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func resolveCmd() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Match a URL path against the route tree",
		Long: `Resolve a URL path the way the engine would, printing the matched
route, captured entity and modal ids, and segment counts.

Examples:
  wayfind resolve /corpus/browse --config routes.yaml
  wayfind resolve "/docs/RFP-123?s=abc" --config routes.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			m, err := router.NewMatcher(cfg)
			if err != nil {
				return err
			}
			return printMatch(m.Match(args[0]), asJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "Route configuration (file path or s3://bucket/key)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw match result as JSON")

	return cmd
}

func printMatch(match *router.MatchResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(match)
	}

	if !match.Success {
		return fmt.Errorf("no match: %v", match.Err)
	}

	fmt.Printf("route:    %s\n", match.Route.ID)
	fmt.Printf("path:     %s\n", match.Path())
	if match.EntityID != "" {
		fmt.Printf("entity:   %s\n", match.EntityID)
	}
	if match.SecondaryEntityID != "" {
		fmt.Printf("entity2:  %s\n", match.SecondaryEntityID)
	}
	if match.ModalID != "" {
		fmt.Printf("modal:    %s\n", match.ModalID)
	}
	if len(match.Params) > 0 {
		fmt.Printf("params:   %v\n", match.Params)
	}
	if len(match.QueryParams) > 0 {
		fmt.Printf("query:    %v\n", match.QueryParams)
	}
	fmt.Printf("segments: %d/%d", match.MatchedSegments, match.TotalSegments)
	if match.Partial {
		fmt.Print(" (partial)")
	}
	fmt.Println()
	return nil
}
