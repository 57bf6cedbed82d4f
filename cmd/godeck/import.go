package main

import (
	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoDeck/internal/atomicfile"
	"github.com/VantageDataChat/GoDeck/pipeline"
)

func newImportCmd(a *app) *cobra.Command {
	var out, theme string
	cmd := &cobra.Command{
		Use:   "import <markdown>",
		Short: "Convert a Markdown outline to a JSON deck file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := pipeline.LoadDeck(args[0])
			if err != nil {
				return err
			}
			deck.Theme = theme
			data, err := deck.EncodeJSON()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := atomicfile.Write(out, data, 0o644); err != nil {
				return err
			}
			a.log.Info("deck imported", "from", args[0], "to", out, "slides", len(deck.Slides))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "theme recorded in the deck file")
	return cmd
}
