package cmd

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/osamahabbal/GWM-Harman-VCE/logging"
	"github.com/osamahabbal/GWM-Harman-VCE/posmap"
	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

// app holds what every subcommand shares for one invocation.
type app struct {
	mapPath  string
	logLevel string
	logOut   io.Writer

	log hclog.Logger
}

// loadMap reads the position map named by --map.
func (a *app) loadMap() (vehcfg.Map, error) {
	a.log.Info("Read property map", "path", a.mapPath)
	m, err := posmap.Load(a.mapPath)
	if err != nil {
		return vehcfg.Map{}, err
	}
	a.log.Debug("Loaded property map", "size", m.Size, "project_codes", m.ProjectCodes.String(), "properties", len(m.Table))
	return m, nil
}

// loadConfig reads a blob and validates it against m.
func (a *app) loadConfig(path string, m vehcfg.Map) (*blobFile, error) {
	a.log.Info("Read config", "path", path)
	blob, err := readBlob(path)
	if err != nil {
		return nil, err
	}
	if err := vehcfg.Validate(blob.Data, m); err != nil {
		return nil, err
	}
	return blob, nil
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	rootCmd := &cobra.Command{
		Use:   "vce",
		Short: "Edit vehicle config binaries by property name",
		Long: `vce reads a vehicle config binary, validates it against a property map and
patches individual properties in place. Every property lives in a bit range of a
single byte, described in the map as "[byte][high:low]". The last byte of the
binary is a CRC8 over the rest and is recomputed after every edit.

The map is JSON (or TOML/CBOR by extension):

  {
    "size": 64,
    "project_code": 1,
    "ro.vehicle.config": {"AAA": "[0][7:0]", "X": "[1][0:0]"}
  }

"AAA" holds the project code; it must be in project_code and cannot be edited.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logging.New("vce", logging.Level(a.logLevel), a.logOut)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.mapPath, "map", "m", "map.json", "path to JSON file with mapping of properties to config bits")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to $"+logging.LevelEnv+" or info")

	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newCRCCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd := newRootCmd(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		logging.New("vce", logging.Level(""), os.Stderr).Error("Failed", "error", err)
		os.Exit(1)
	}
}
