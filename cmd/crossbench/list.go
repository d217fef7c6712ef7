package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crossbench/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured implementations and scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.FromViper()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "IMPLEMENTATION\tBINARY\tSCENARIOS")
		for _, im := range reg.Implementations() {
			var supported []string
			for _, s := range reg.Scenarios() {
				if im.Supports(s.Name) {
					supported = append(supported, s.Name)
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", im.Label, im.Binary, strings.Join(supported, ", "))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SCENARIO\tARGS\tARTIFACT")
		for _, s := range reg.Scenarios() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, strings.Join(s.Args, " "), s.Artifact)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
