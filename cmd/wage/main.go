// wage runs the WAGE demo platformer and inspects its configuration.
//
// Usage:
//
//	wage run                 - Play the demo stage
//	wage sprites             - List sprite sheets and animations
//
// Global flags:
//
//	--config <dir>     - Read configs and assets from dir instead of the embedded set
//	--log-level <lvl>  - debug, info, warn or error (default: from engine.yaml)
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/wage/internal/infrastructure/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wage",
	Short: "WAGE - a small 2D game engine demo",
	Long: `WAGE drives sprite animation, timed effects and AABB collisions for
small 2D games. This binary plays a demo platformer built from YAML
configs.

Examples:
  wage run
  wage run --debug-hitboxes --tps 30
  wage run --config ./cmd/wage/configs --watch
  wage sprites`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config directory (default: embedded configs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(spritesCmd)
}

// configSource returns the file system holding the YAML configs and the
// assets they reference.
func configSource(dir string) (fs.FS, string, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open config dir: %w", err)
		}
		if !info.IsDir() {
			return nil, "", fmt.Errorf("config path %s is not a directory", dir)
		}
		return os.DirFS(dir), dir, nil
	}
	sub, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config subfs: %w", err)
	}
	return sub, "configs", nil
}

func loadConfig() (*config.Loader, *config.GameConfig, error) {
	fsys, base, err := configSource(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	loader := config.NewFSLoader(fsys, base)
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loader, cfg, nil
}

// newLogger creates the process logger. An explicit level wins over the
// configured one.
func newLogger(configured, override string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wage",
	})
	name := configured
	if override != "" {
		name = override
	}
	if name == "" {
		return logger, nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	logger.SetLevel(level)
	return logger, nil
}
