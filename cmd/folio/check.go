package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unknownriver/folio/content"
	"github.com/unknownriver/folio/i18n"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate translation catalogs and project data",
	Long:  `Decode every structured translation for every locale and verify the per-locale project catalogs line up.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := i18n.DefaultStore()
		if err != nil {
			return err
		}
		if err := content.Validate(store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d locales, namespaces %v\n", len(store.Locales()), store.Namespaces())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
