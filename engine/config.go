// Package engine wires a world.World together from a TOML
// configuration file and loads scenario fixtures.
package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/conveyorsim/conveyor/kinds"
	"github.com/conveyorsim/conveyor/world"
)

// UserConfig is the on-disk TOML shape loaded by LoadConfig: a plain,
// serializable struct separate from the runtime Config it produces.
type UserConfig struct {
	World struct {
		Width  int
		Height int
		Seed   string
	}
	Log struct {
		Level string
	}
}

// DefaultUserConfig returns a UserConfig with sensible defaults.
func DefaultUserConfig() UserConfig {
	var uc UserConfig
	uc.World.Width = 32
	uc.World.Height = 32
	uc.Log.Level = "info"
	return uc
}

// LoadConfig reads and parses a TOML configuration file at path. A
// missing file is not an error: DefaultUserConfig is returned instead.
func LoadConfig(path string) (UserConfig, error) {
	uc := DefaultUserConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uc, nil
		}
		return uc, fmt.Errorf("read config: %w", err)
	}
	if len(contents) == 0 {
		return uc, nil
	}
	if err := toml.Unmarshal(contents, &uc); err != nil {
		return uc, fmt.Errorf("decode config: %w", err)
	}
	return uc, nil
}

// Config is the runtime configuration New builds a World from.
type Config struct {
	Log      *slog.Logger
	Width    int
	Height   int
	Seed     string
	Map      world.ResourceMap
	Registry *world.EntityRegistry
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Registry == nil {
		conf.Registry = kinds.DefaultRegistry()
	}
	if conf.Map == nil {
		conf.Map = world.NewGridResourceMap(conf.Width, conf.Height)
	}
	return conf
}

// New builds a *world.World from conf, applying defaults for any
// unset field (logger, registry, map).
func (conf Config) New() (*world.World, error) {
	conf = conf.withDefaults()
	return world.CreateWorld(world.CreateOptions{
		Width:  conf.Width,
		Height: conf.Height,
		Seed:   conf.Seed,
		Map:    conf.Map,
	}, conf.Registry, world.Config{Log: conf.Log})
}

// Config converts a loaded UserConfig into a runtime Config, resolving
// the log level string into a *slog.Logger.
func (uc UserConfig) Config() Config {
	return Config{
		Log:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(uc.Log.Level)})),
		Width:  uc.World.Width,
		Height: uc.World.Height,
		Seed:   uc.World.Seed,
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
