package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	formbind "github.com/goliatone/go-formbind"
)

type violation struct {
	location string
	message  string
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [locations...]",
		Short: "Check that manifests and OpenAPI documents can be bound",
		Long: `Loads every location and reports the ones whose parameters cannot bind:
unsupported kinds or sources, duplicate names, unknown sanitize policies, or
OpenAPI form properties with object schemas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			locations := args
			if len(locations) == 0 && a.cfg.Manifest.Path != "" {
				locations = []string{a.cfg.Manifest.Path}
			}
			if len(locations) == 0 {
				return fmt.Errorf("lint: no locations given")
			}

			var violations []violation
			for _, location := range locations {
				m, err := formbind.LoadManifest(cmd.Context(), location)
				if err != nil {
					violations = append(violations, violation{location: location, message: err.Error()})
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d operations ok\n", location, m.Len())
			}
			if len(violations) == 0 {
				return nil
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", v.location, v.message)
			}
			return fmt.Errorf("lint: %d of %d locations failed", len(violations), len(locations))
		},
	}
}
