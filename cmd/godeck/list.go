package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoDeck/layout"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported slide types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range layout.AllSlideTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in and configured themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.cfg.ThemeNames() {
				t, err := a.cfg.ThemeFor(name)
				if err != nil {
					return err
				}
				marker := " "
				if name == a.cfg.Theme {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s primary=%s background=%s fonts=%s/%s\n",
					marker, name, t.Primary, t.Background, t.HeadingFont, t.BodyFont)
			}
			return nil
		},
	}
}
