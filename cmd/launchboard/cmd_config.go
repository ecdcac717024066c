package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var errNoConfigDir = errors.New("--config-dir is required to change the configuration")

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg := a.cfg
				view := tableView{
					header: table.Row{"Key", "Value"},
					rows: []table.Row{
						{"config_dir", cfg.ConfigDir},
						{"dataset_path", cfg.DatasetPath},
						{"log_level", cfg.LogLevel},
						{"columns.launch_site", cfg.Columns.LaunchSite},
						{"columns.payload_mass", cfg.Columns.PayloadMass},
						{"columns.outcome_class", cfg.Columns.OutcomeClass},
						{"columns.booster_category", cfg.Columns.BoosterCategory},
						{"slider", fmt.Sprintf("[%g, %g] step %g", cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Step)},
						{"sites.include", strings.Join(cfg.Sites.Include, ", ")},
						{"sites.exclude", strings.Join(cfg.Sites.Exclude, ", ")},
						{"transform_script", cfg.TransformScript},
					},
				}
				return a.render(cmd.OutOrStdout(), cfg, view)
			},
		},
		&cobra.Command{
			Use:   "set-dataset PATH",
			Short: "Set the dataset loaded when --dataset is not given",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if a.configDir == "" {
					return errNoConfigDir
				}
				return a.cfg.SetDatasetPath(args[0])
			},
		},
		newSiteRuleCmd(a, "add-site PATTERN", "Add a site scope pattern", func(pattern string, exclude bool) error {
			return a.cfg.AddSiteRule(pattern, exclude)
		}),
		newSiteRuleCmd(a, "remove-site PATTERN", "Remove a site scope pattern", func(pattern string, exclude bool) error {
			return a.cfg.RemoveSiteRule(pattern, exclude)
		}),
	)
	return cmd
}

func newSiteRuleCmd(a *app, use, short string, apply func(pattern string, exclude bool) error) *cobra.Command {
	var exclude bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configDir == "" {
				return errNoConfigDir
			}
			return apply(args[0], exclude)
		},
	}

	cmd.Flags().BoolVar(&exclude, "exclude", false, "Apply to the exclude list instead of the include list")
	return cmd
}
