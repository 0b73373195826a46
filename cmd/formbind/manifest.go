package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	formbind "github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/manifest"
)

func newManifestCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "manifest [location]",
		Short: "Print the parameters of every manifest operation",
		Long: `Loads a manifest file or directory, or derives one from an OpenAPI document
(file or URL), and prints each operation with its parameters. Defaults to the
configured manifest.path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := a.cfg.Manifest.Path
			if len(args) == 1 {
				location = args[0]
			}
			if location == "" {
				return fmt.Errorf("manifest: no location given and manifest.path is unset")
			}
			m, err := formbind.LoadManifest(cmd.Context(), location)
			if err != nil {
				return err
			}
			return writeManifest(cmd.OutOrStdout(), m, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table, json, or yaml")
	return cmd
}

func writeManifest(w io.Writer, m *manifest.Manifest, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		return writeTable(w, m)
	default:
		return fmt.Errorf("manifest: unknown output format %q", format)
	}
}

func writeTable(w io.Writer, m *manifest.Manifest) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tMETHOD\tPATH\tPARAM\tKIND\tSOURCE\tFLAGS")
	for _, id := range m.IDs() {
		op, _ := m.Operation(id)
		if len(op.Params) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t-\t-\t-\n", op.ID, op.Method, op.Path)
			continue
		}
		for _, p := range op.Params {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", op.ID, op.Method, op.Path, p.Name, p.Kind, p.Source, paramFlags(p))
		}
	}
	return tw.Flush()
}

func paramFlags(p binding.Param) string {
	var flags []string
	if p.Multi {
		flags = append(flags, "multi")
	}
	if p.Required {
		flags = append(flags, "required")
	}
	if p.Sanitize != "" {
		flags = append(flags, "sanitize="+p.Sanitize)
	}
	if len(flags) == 0 {
		return "-"
	}
	sort.Strings(flags)
	return strings.Join(flags, ",")
}
