package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func routesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the indexed route tree",
		Long: `Load a route configuration and print every indexed route with its
full path key, entity support, and modals.

Examples:
  wayfind routes --config routes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			return printRoutes(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "Route configuration (file path or s3://bucket/key)")

	return cmd
}

func printRoutes(cfg *routecfg.Config) error {
	idx, err := router.BuildIndex(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%d routes (default: %s)\n\n", idx.Len(), cfg.DefaultRouteID())
	for _, key := range idx.PathKeys() {
		entry, _ := idx.ByPath(key)
		node := entry.Route

		var tags []string
		if node.EntitySupport.Enabled {
			tags = append(tags, "entity="+node.EntitySupport.EffectivePattern())
		}
		if node.Access.RequiresAuth {
			tags = append(tags, "auth")
		}
		for _, m := range node.Modals {
			tags = append(tags, "modal:"+m.ID)
		}

		line := fmt.Sprintf("  /%-30s %s", key, node.ID)
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, " ") + "]"
		}
		fmt.Println(line)
	}
	return nil
}
