package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

func hexByte(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}

func newGetCmd(a *app) *cobra.Command {
	var src string

	getCmd := &cobra.Command{
		Use:   "get PROPERTY...",
		Short: "Print properties of a config binary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd.OutOrStdout(), src, args)
		},
	}

	getCmd.Flags().StringVarP(&src, "src", "s", "VehicleConfig.bin", "path to config binary file")

	return getCmd
}

func (a *app) runGet(out io.Writer, src string, names []string) error {
	m, err := a.loadMap()
	if err != nil {
		return err
	}
	blob, err := a.loadConfig(src, m)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	for _, name := range names {
		pos, err := m.Table.Lookup(name)
		if err != nil {
			return err
		}
		if err := writeProperty(w, blob.Data, name, pos); err != nil {
			return err
		}
	}
	return w.Flush()
}

// writeProperty prints one tab separated row: name, position, bits, value.
func writeProperty(w io.Writer, data []byte, name string, pos vehcfg.Position) error {
	bits, err := vehcfg.ReadBits(data, pos)
	if err != nil {
		return &vehcfg.PropertyError{Property: name, Err: err}
	}
	v, err := vehcfg.ReadNumber(data, pos)
	if err != nil {
		return &vehcfg.PropertyError{Property: name, Err: err}
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, pos, bits, v)
	return err
}
