package config

import "github.com/urfave/cli/v3"

// Flag names shared with the command line.
const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagWidth     = "width"
	FlagHeight    = "height"
	FlagSpeed     = "speed"
	FlagParticles = "particles"
	FlagSeed      = "seed"
	FlagScript    = "script"
	FlagLogFile   = "log-file"
	FlagCompact   = "compact"
)

// Flags returns the command-line flags that override file settings.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Usage: "Path to config file"},
		&cli.BoolFlag{Name: FlagDebug, Usage: "Enable debug logging and frame stats"},
		&cli.IntFlag{Name: FlagWidth, Usage: "Window width"},
		&cli.IntFlag{Name: FlagHeight, Usage: "Window height"},
		&cli.FloatFlag{Name: FlagSpeed, Usage: "Tunnel travel speed"},
		&cli.IntFlag{Name: FlagParticles, Usage: "Tunnel particle count"},
		&cli.UintFlag{Name: FlagSeed, Usage: "Particle scatter seed"},
		&cli.StringFlag{Name: FlagScript, Usage: "Input script to replay"},
		&cli.StringFlag{Name: FlagLogFile, Usage: "Rotating log file path"},
		&cli.BoolFlag{Name: FlagCompact, Usage: "Use the compact timeline layout"},
	}
}

// LoadCommand loads the file named by --config (or the standard locations)
// and applies the flags set on cmd.
func LoadCommand(cmd *cli.Command) (*Config, error) {
	cfg, err := Load(cmd.String(FlagConfig))
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, cmd)
	return cfg, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, cmd *cli.Command) {
	if cmd.Bool(FlagDebug) {
		cfg.Logging.Level = "debug"
		cfg.Debug.Enabled = true
		cfg.Window.ShowFPS = true
	}
	if w := cmd.Int(FlagWidth); w > 0 {
		cfg.Window.Width = int(w)
	}
	if h := cmd.Int(FlagHeight); h > 0 {
		cfg.Window.Height = int(h)
	}
	if cmd.IsSet(FlagSpeed) {
		cfg.Tunnel.TravelSpeed = cmd.Float(FlagSpeed)
	}
	if cmd.IsSet(FlagParticles) {
		cfg.Tunnel.ParticleCount = int(cmd.Int(FlagParticles))
	}
	if cmd.IsSet(FlagSeed) {
		cfg.Tunnel.Seed = uint64(cmd.Uint(FlagSeed))
	}
	if s := cmd.String(FlagScript); s != "" {
		cfg.Debug.Script = s
	}
	if s := cmd.String(FlagLogFile); s != "" {
		cfg.Logging.LogFile = s
	}
	if cmd.Bool(FlagCompact) {
		cfg.Timeline.Compact = true
	}
}
