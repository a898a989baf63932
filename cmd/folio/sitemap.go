package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/unknownriver/folio"
)

var sitemapBaseURL string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print sitemap.xml to stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		base := sitemapBaseURL
		if base == "" {
			cfg, err := folio.LoadConfig()
			if err != nil {
				return err
			}
			base = cfg.URL
		}
		return folio.WriteSitemap(cmd.OutOrStdout(), base, time.Now())
	},
}

func init() {
	sitemapCmd.Flags().StringVar(&sitemapBaseURL, "base-url", "", "Site URL (overrides SITE_URL)")
	rootCmd.AddCommand(sitemapCmd)
}
