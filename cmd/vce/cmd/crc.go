package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

func newCRCCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "crc FILE...",
		Short: "Print stored and computed checksums",
		Long: `Print the stored checksum byte of each config binary next to the CRC8 computed
over the preceding bytes. No map is needed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCRC(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) runCRC(out io.Writer, paths []string) error {
	for _, path := range paths {
		blob, err := readBlob(path)
		if err != nil {
			return err
		}
		if len(blob.Data) == 0 {
			return errors.Errorf("%s: empty config", path)
		}

		ok, stored, computed := vehcfg.Verify(blob.Data)
		status := "ok"
		if !ok {
			status = "mismatch"
			a.log.Warn("Checksum mismatch", "path", path, "stored", hexByte(stored), "computed", hexByte(computed))
		}
		if _, err := fmt.Fprintf(out, "%s: stored %s computed %s %s\n", path, hexByte(stored), hexByte(computed), status); err != nil {
			return err
		}
	}
	return nil
}
