package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/hashroute/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		templateName string
		cfg          templates.Config
		list         bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new hashroute project",
		Long: `Create a hashroute.toml, a routes.toml manifest and route templates.

Examples:
  hashroute init
  hashroute init handbook --template docs --title Handbook
  hashroute init site --template s3 --bucket my-routes --region eu-west-1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, t := range templates.List() {
					field(out, t.Name, t.Description)
				}
				return nil
			}

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			tmpl, err := templates.Get(templateName)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := tmpl.Create(dir, cfg); err != nil {
				return err
			}

			success(out, "Created %s project in %s", tmpl.Name, dir)
			for _, p := range tmpl.Paths() {
				info(out, "%s", filepath.Join(dir, p))
			}
			fmt.Fprintln(out)
			info(out, "Next: hashroute serve -c %s", filepath.Join(dir, "hashroute.toml"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "minimal", "Project template")
	cmd.Flags().BoolVar(&list, "list", false, "List available templates")
	cmd.Flags().StringVar(&cfg.Title, "title", "", "Application title")
	cmd.Flags().StringVar(&cfg.Addr, "addr", "", "Listen address")
	cmd.Flags().StringVar(&cfg.Bucket, "bucket", "", "S3 bucket holding the manifest (s3 template)")
	cmd.Flags().StringVar(&cfg.Region, "region", "", "S3 region (s3 template)")
	cmd.Flags().BoolVarP(&cfg.Overwrite, "force", "f", false, "Overwrite existing files")
	return cmd
}
