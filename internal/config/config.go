// Package config reads the TOML configuration file consumed by
// cmd/levelsetcli.
package config

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/shikarl/levelset"
)

// Config holds everything needed to run one segmentation from the CLI.
type Config struct {
	// InputImage is the path to the raw intensity raster to segment.
	InputImage string

	// InputMask is the path to the raw binary initialization mask.
	InputMask string

	// OutputMask is the path the resulting segmentation is written to.
	OutputMask string

	// Method selects the speed field: "chan_vese" or "hybrid".
	Method string

	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string

	// Params carries the level-set evolution parameters. TOML keys match
	// the Params field names.
	Params levelset.Params
}

// ReadFile reads and parses a TOML configuration file.
func ReadFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	b, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	cfg := &Config{
		Method:   "chan_vese",
		LogLevel: "info",
		Params:   levelset.DefaultParams(),
	}
	if _, err := toml.Decode(string(b), cfg); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	if cfg.InputImage == "" {
		return nil, fmt.Errorf("you need to specify an input image in the configuration file (InputImage)")
	}
	if cfg.InputMask == "" {
		return nil, fmt.Errorf("you need to specify an initialization mask in the configuration file (InputMask)")
	}
	if cfg.OutputMask == "" {
		return nil, fmt.Errorf("you need to specify an output path in the configuration file (OutputMask)")
	}
	if cfg.Method != "chan_vese" && cfg.Method != "hybrid" {
		return nil, fmt.Errorf("Method must be 'chan_vese' or 'hybrid', got %q", cfg.Method)
	}
	return cfg, nil
}

// SpeedMethod maps the configured method name to a levelset.Method.
func (c *Config) SpeedMethod() levelset.Method {
	if c.Method == "hybrid" {
		return levelset.Hybrid
	}
	return levelset.ChanVese
}
