package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/hashroute/pkg/mount"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var renderHTML bool

	cmd := &cobra.Command{
		Use:   "resolve [hash]",
		Short: "Show which route a hash resolves to",
		Long: `Resolve a hash against the manifest without starting a server.

Examples:
  hashroute resolve '#/users'
  hashroute resolve '#/users/show/42'
  hashroute resolve '#/users/show/42' --render`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := ""
			if len(args) > 0 {
				hash = args[0]
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.router.Resolve(hash)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if m.Fallback {
				warn(out, "%q matched no route, using %q", m.Fragment.Base, m.Route.Path)
			} else {
				success(out, "%q resolves to %q", m.Fragment.String(), m.Route.Path)
			}
			field(out, "Route", m.Route.Name)
			field(out, "Base", m.Fragment.Base)
			if m.Fragment.HasSubRoute() {
				field(out, "SubRoute", m.SubRoute())
			}
			if len(m.Fragment.Extra) > 0 {
				field(out, "Ignored", strings.Join(m.Fragment.Extra, "/"))
			}

			if !renderHTML {
				return nil
			}
			if m.Route.Controller == nil {
				info(out, "Route has no controller; nothing rendered")
				return nil
			}
			el := mount.NewElement(a.cfg.Server.MountID)
			if _, _, err := a.router.Dispatch(cmd.Context(), hash, el); err != nil {
				return err
			}
			snap := el.Snapshot()
			if snap.Err != nil {
				return snap.Err
			}
			fmt.Fprintf(out, "\n%s\n", snap.HTML)
			return nil
		},
	}

	cmd.Flags().BoolVar(&renderHTML, "render", false, "Run the route's controller and print the rendered HTML")
	return cmd
}
