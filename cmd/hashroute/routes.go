package main

import (
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if len(a.manifest.Routes) == 0 {
				warn(out, "No routes declared")
				return nil
			}

			entries := append(a.manifest.Routes[:0:0], a.manifest.Routes...)
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

			table := tablewriter.NewWriter(out)
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeader([]string{"Name", "Path", "Title", "Source", "Controller"})
			for _, e := range entries {
				source := "inline"
				if e.Template != "" {
					source = e.Template
				} else if e.HTML == "" {
					source = "-"
				}
				table.Append([]string{e.Name, e.Path, e.Title, source, e.ControllerName()})
			}
			table.Render()

			if _, ok := a.router.Lookup("/"); !ok {
				warn(out, `No route at "/"; unmatched hashes will fail`)
			}
			return nil
		},
	}
}
