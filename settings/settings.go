package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/wire"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for a movement session.
type Settings struct {
	Movement Movement
	// Capabilities is the protocol variant used when the transport doesn't resolve one itself.
	Capabilities wire.Capabilities
	Log          Log
}

// Movement holds the timing and rotation settings of the movement loop.
type Movement struct {
	// PhysicsEnabled controls whether the physics engine is run every tick. If false, the session
	// still reconciles and transmits its pose.
	PhysicsEnabled bool
	// CatchupTicks is the maximum amount of ticks run in a single scheduler callback. Any further
	// backlog is dropped.
	CatchupTicks int
	// HeartbeatInterval is the longest time without any message before a heartbeat is sent.
	HeartbeatInterval time.Duration
	// DeadGraceTicks is the amount of ticks a non-alive entity keeps transmitting its pose.
	DeadGraceTicks int
	// TurnSpeed is the default rotation speed in radians per second.
	TurnSpeed float64
}

// Log holds the log output settings.
type Log struct {
	// Level is a logrus level name, such as "info" or "debug".
	Level string
	// File is the path of the log file. Logs are written to stdout if it is empty.
	File string
	// MaxSizeMB is the size a log file may grow to before it is rotated.
	MaxSizeMB int
	// MaxBackups is the amount of rotated log files kept around.
	MaxBackups int
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement.PhysicsEnabled = true
	s.Movement.CatchupTicks = game.DefaultCatchupTicks
	s.Movement.HeartbeatInterval = game.DefaultHeartbeatInterval
	s.Movement.DeadGraceTicks = game.DeadGraceTicks
	s.Movement.TurnSpeed = game.DefaultTurnSpeed

	s.Log.Level = "info"
	s.Log.MaxSizeMB = 16
	s.Log.MaxBackups = 3
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %v", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if settings.Movement.CatchupTicks < 1 {
		return Settings{}, fmt.Errorf("catch-up ticks must be at least 1, got %d", settings.Movement.CatchupTicks)
	}
	return settings, nil
}
