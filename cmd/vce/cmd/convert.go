package cmd

import (
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a config between raw binary and Intel HEX",
		Long: `Convert a config between raw binary and Intel HEX. The format of each side is
picked by extension (.hex, .ihex, .ihx are Intel HEX, anything else is raw).
Data is copied as is; the checksum is neither checked nor updated.

Example:
  vce convert VehicleConfig.hex VehicleConfig.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(args[0], args[1])
		},
	}
}

func (a *app) runConvert(in, out string) error {
	blob, err := readBlob(in)
	if err != nil {
		return err
	}
	a.log.Info("Read config", "path", in, "bytes", len(blob.Data), "records", len(blob.Records))

	if err := writeBlob(out, blob.Data, blob); err != nil {
		return err
	}
	a.log.Info("Wrote config", "path", out)
	return nil
}
