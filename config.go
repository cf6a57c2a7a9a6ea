package reentry

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultEpoch is the start date used when the configuration does not set one.
var DefaultEpoch = time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)

// Config drives the engine and the serving binary. It is explicit state owned
// by whoever builds the engine; there is no package-level configuration cache.
type Config struct {
	StartDate time.Time
	Workers   int // 0 means one per CPU
	Perts     Perturbations
	OutputDir string

	// Serving concerns. TimeWarp is the playback factor of the telemetry
	// feed: it scales how much simulated time elapses per wall-clock tick and
	// is never visible to the force model or the integrator.
	ListenAddr  string
	StepSeconds float64
	TimeWarp    float64
}

// DefaultConfig returns the configuration used absent any file.
func DefaultConfig() Config {
	return Config{
		StartDate:   DefaultEpoch,
		Perts:       FullPerturbations(),
		OutputDir:   ".",
		ListenAddr:  ":8877",
		StepSeconds: 60,
		TimeWarp:    1,
	}
}

// LoadConfig reads conf.toml from the directory named by the REENTRY_CONFIG
// environment variable (falling back to the working directory). A missing
// file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	confPath := os.Getenv("REENTRY_CONFIG")
	if confPath == "" {
		confPath = "."
	}
	v := viper.New()
	v.SetConfigName("conf")
	v.AddConfigPath(confPath)
	v.SetDefault("general.start_date", cfg.StartDate.Format(time.RFC3339))
	v.SetDefault("general.output_path", cfg.OutputDir)
	v.SetDefault("engine.workers", cfg.Workers)
	v.SetDefault("engine.jn", int(cfg.Perts.Jn))
	v.SetDefault("engine.third_body", cfg.Perts.ThirdBody)
	v.SetDefault("engine.drag", cfg.Perts.Drag)
	v.SetDefault("server.listen", cfg.ListenAddr)
	v.SetDefault("server.step_seconds", cfg.StepSeconds)
	v.SetDefault("server.time_warp", cfg.TimeWarp)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, fmt.Errorf("reading %s/conf.toml: %s", confPath, err)
		}
	}
	start, err := time.Parse(time.RFC3339, v.GetString("general.start_date"))
	if err != nil {
		return cfg, fmt.Errorf("invalid general.start_date: %s", err)
	}
	cfg.StartDate = start.UTC()
	cfg.OutputDir = v.GetString("general.output_path")
	cfg.Workers = v.GetInt("engine.workers")
	cfg.Perts = Perturbations{
		Jn:        uint8(v.GetInt("engine.jn")),
		ThirdBody: v.GetBool("engine.third_body"),
		Drag:      v.GetBool("engine.drag"),
	}
	cfg.ListenAddr = v.GetString("server.listen")
	cfg.StepSeconds = v.GetFloat64("server.step_seconds")
	cfg.TimeWarp = v.GetFloat64("server.time_warp")
	if cfg.StepSeconds <= 0 {
		return cfg, fmt.Errorf("server.step_seconds must be positive")
	}
	return cfg, nil
}
