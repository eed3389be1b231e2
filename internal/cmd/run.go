package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shikarl/levelset"
	"github.com/shikarl/levelset/diagnostics"
)

func init() {
	Root.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a segmentation.",
	Long:  "run loads the configured image and mask, evolves the boundary, and writes the resulting segmentation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(Run())
	},
}

// Run executes one segmentation using the globally loaded Config.
func Run() error {
	img, err := readImage(Config.InputImage)
	if err != nil {
		return err
	}
	mask, err := readMask(Config.InputMask)
	if err != nil {
		return err
	}

	field, err := levelset.NewSpeedField(Config.SpeedMethod(), img, mask, Config.Params)
	if err != nil {
		return fmt.Errorf("constructing speed field: %w", err)
	}

	engine, err := levelset.NewEngine(Config.Params, img, mask, field)
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	diag := diagnostics.NewPartitionStats()
	engine.AddBoundaryObserver(func(lin, lout []levelset.Point) {
		logrus.WithFields(logrus.Fields{
			"lin_size":  len(lin),
			"lout_size": len(lout),
		}).Debug("boundary sweep complete")
	})
	engine.AddProgressObserver(func(fraction float64) {
		diag.Reset()
		diag.Sample(img.Width(), img.Height(), img.At, engine.IsInside)
		snap := diag.Snapshot()
		logrus.WithFields(logrus.Fields{
			"progress":     fraction,
			"inside_mean":  snap.InsideMean,
			"outside_mean": snap.OutsideMean,
			"separation":   snap.Separation,
		}).Info("iteration complete")
	})

	if ok := engine.Run(); !ok {
		return fmt.Errorf("segmentation was canceled")
	}

	seg, err := engine.Segmentation()
	if err != nil {
		return err
	}

	if err := writeMask(Config.OutputMask, seg); err != nil {
		return err
	}
	logrus.Infof("wrote segmentation to %s", Config.OutputMask)
	return nil
}
