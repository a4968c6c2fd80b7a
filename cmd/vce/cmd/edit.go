package cmd

import (
	"github.com/spf13/cobra"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

func newEditCmd(a *app) *cobra.Command {
	var src, dst string

	editCmd := &cobra.Command{
		Use:   "edit [flags] PROPERTY:BITSTRING|PROPERTY=VALUE...",
		Short: "Patch properties of a config binary",
		Long: `Patch properties of a config binary and recompute its checksum.

Each argument sets one property, applied in order:
  NAME:BITSTRING   explicit bits, high bit first; length must match the field
  NAME=VALUE       decimal or 0x-prefixed hex in [0, 255], zero-padded to the field

The source is validated first. Nothing is written when any step fails or when no
property was given.

Example:
  vce edit --map map.json --src VehicleConfig.bin --dst NewVehicleConfig.bin X:1 Y=0x3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(src, dst, args)
		},
	}

	editCmd.Flags().StringVarP(&src, "src", "s", "VehicleConfig.bin", "path to source config binary file")
	editCmd.Flags().StringVarP(&dst, "dst", "d", "NewVehicleConfig.bin", "path to destination config binary file")

	return editCmd
}

func (a *app) runEdit(src, dst string, tokens []string) error {
	m, err := a.loadMap()
	if err != nil {
		return err
	}

	blob, err := a.loadConfig(src, m)
	if err != nil {
		return err
	}

	updates, err := vehcfg.ParseUpdates(tokens)
	if err != nil {
		return err
	}

	res, err := vehcfg.NewEditor(m.Table).Apply(blob.Data, updates)
	if err != nil {
		return err
	}

	if res.Applied == 0 {
		a.log.Info("No properties changed, nothing written")
		return nil
	}

	for idx, ok := res.Touched.NextSet(0); ok; idx, ok = res.Touched.NextSet(idx + 1) {
		a.log.Debug("Byte changed", "index", idx, "old", hexByte(blob.Data[idx]), "new", hexByte(res.Data[idx]))
	}
	last := len(res.Data) - 1
	a.log.Debug("Checksum updated", "old", hexByte(blob.Data[last]), "new", hexByte(res.Data[last]))

	if isHex(dst) && blob.Records != nil {
		if err := checkCoverage(blob, res); err != nil {
			return err
		}
	}

	a.log.Info("Save updated config", "path", dst, "updates", res.Applied)
	return writeBlob(dst, res.Data, blob)
}
