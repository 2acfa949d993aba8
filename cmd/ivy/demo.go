package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ARTM2000/ivy"
	"github.com/ARTM2000/ivy/internal/demo"
)

func newDemoCmd(envFiles *[]string) *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Resolve the demo service, look up a user and print the registrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, r, err := setup(*envFiles)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			svc, err := ivy.Get[*demo.UserService](r, demo.UserServiceType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "result:", svc.GetUser(userID))
			fmt.Fprintln(out)
			printRegistrations(cmd, r)

			return r.Shutdown(context.Background())
		},
	}
	cmd.Flags().IntVar(&userID, "user", 42, "user id to look up")
	return cmd
}

func printRegistrations(cmd *cobra.Command, r *ivy.Registry) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLIFETIME\tCACHED\tINJECT\tPROPERTIES")
	for _, reg := range r.Registrations() {
		props := make([]string, 0, len(reg.Properties))
		for k, v := range reg.Properties {
			props = append(props, k+"="+v)
		}
		sort.Strings(props)
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n",
			reg.Name, reg.Lifetime, reg.Cached,
			strings.Join(reg.Inject, ","), strings.Join(props, ","))
	}
	tw.Flush()
}
