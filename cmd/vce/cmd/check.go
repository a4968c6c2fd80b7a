package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

var errChecksum = errors.New("checksum mismatch")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate config binaries against the map",
		Long: `Validate each config binary against the map: size, project code, property
bounds and the stored checksum. Files are checked in parallel; the command fails
if any of them is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) runCheck(out io.Writer, paths []string) error {
	m, err := a.loadMap()
	if err != nil {
		return err
	}

	results := make([]error, len(paths))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			results[i] = checkOne(path, m)
			return nil
		})
	}
	_ = eg.Wait()

	var failed int
	for i, path := range paths {
		status := "ok"
		if results[i] != nil {
			failed++
			status = results[i].Error()
			a.log.Warn("Invalid config", "path", path, "error", results[i])
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", path, status); err != nil {
			return err
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d configs invalid", failed, len(paths))
	}
	return nil
}

func checkOne(path string, m vehcfg.Map) error {
	blob, err := readBlob(path)
	if err != nil {
		return err
	}
	if err := vehcfg.Validate(blob.Data, m); err != nil {
		return err
	}
	if ok, stored, computed := vehcfg.Verify(blob.Data); !ok {
		return errors.Wrapf(errChecksum, "stored 0x%02X, computed 0x%02X", stored, computed)
	}
	return nil
}
