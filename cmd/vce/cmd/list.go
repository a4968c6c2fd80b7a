package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var src string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the properties of the map",
		Long: `List every property of the map sorted by name. With --src the current bits and
value of each property are printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd.OutOrStdout(), src)
		},
	}

	listCmd.Flags().StringVarP(&src, "src", "s", "", "config binary file to read values from")

	return listCmd
}

func (a *app) runList(out io.Writer, src string) error {
	m, err := a.loadMap()
	if err != nil {
		return err
	}

	var data []byte
	if src != "" {
		blob, err := a.loadConfig(src, m)
		if err != nil {
			return err
		}
		data = blob.Data
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	for _, name := range m.Table.Names() {
		pos, err := m.Table.Lookup(name)
		if err != nil {
			return err
		}
		if data == nil {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", name, pos); err != nil {
				return err
			}
			continue
		}
		if err := writeProperty(w, data, name, pos); err != nil {
			return err
		}
	}
	return w.Flush()
}
