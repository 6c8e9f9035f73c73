package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Poli-Reddy/insightmeet/analysis"
)

const EnvPrefix = "INSIGHTMEET"

type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}

type Services struct {
	Diarization   Service `yaml:"diarization" mapstructure:"diarization"`
	ASR           Service `yaml:"asr" mapstructure:"asr"`
	Sentiment     Service `yaml:"sentiment" mapstructure:"sentiment"`
	Emotion       Service `yaml:"emotion" mapstructure:"emotion"`
	Summary       Service `yaml:"summary" mapstructure:"summary"`
	Visualization Service `yaml:"visualization" mapstructure:"visualization"`

	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	ClassifyWorkers int           `yaml:"classify_workers" mapstructure:"classify_workers"`
}

type Generator struct {
	MaxDisplaySeconds int    `yaml:"max_display_seconds" mapstructure:"max_display_seconds"`
	TimelinePoints    int    `yaml:"timeline_points" mapstructure:"timeline_points"`
	PaletteSize       int    `yaml:"palette_size" mapstructure:"palette_size"`
	ExtraLinks        int    `yaml:"extra_links" mapstructure:"extra_links"`
	SummaryPoints     int    `yaml:"summary_points" mapstructure:"summary_points"`
	ConflictMin       int    `yaml:"conflict_min" mapstructure:"conflict_min"`
	ConflictMax       int    `yaml:"conflict_max" mapstructure:"conflict_max"`
	Seed              uint64 `yaml:"seed" mapstructure:"seed"`
	SampleWhenEmpty   bool   `yaml:"sample_when_empty" mapstructure:"sample_when_empty"`
}

type Server struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Services  Services  `yaml:"services" mapstructure:"services"`
	Generator Generator `yaml:"generator" mapstructure:"generator"`
	Server    Server    `yaml:"server" mapstructure:"server"`
	Paths     struct {
		Data    string `yaml:"data" mapstructure:"data"`
		Outputs string `yaml:"outputs" mapstructure:"outputs"`
	} `yaml:"paths" mapstructure:"paths"`

	// Source is the file the values were read from, empty for defaults only.
	Source string `yaml:"-" mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	def := analysis.DefaultConfig()

	v.SetDefault("pipeline.name", "insightmeet")
	v.SetDefault("pipeline.version", "0.1.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")

	for _, svc := range []string{"diarization", "asr", "sentiment", "emotion", "summary", "visualization"} {
		v.SetDefault("services."+svc+".url", "")
	}
	v.SetDefault("services.timeout", 60*time.Second)
	v.SetDefault("services.classify_workers", 4)

	v.SetDefault("generator.max_display_seconds", def.MaxDisplaySeconds)
	v.SetDefault("generator.timeline_points", def.TimelinePoints)
	v.SetDefault("generator.palette_size", def.PaletteSize)
	v.SetDefault("generator.extra_links", def.ExtraLinks)
	v.SetDefault("generator.summary_points", def.SummaryPoints)
	v.SetDefault("generator.conflict_min", 5)
	v.SetDefault("generator.conflict_max", 75)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.sample_when_empty", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 20*1024*1024)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("paths.data", "data")
	v.SetDefault("paths.outputs", "")
}

// Candidates lists the files Load tries when no explicit path is given.
func Candidates() []string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
}

// Load reads path, or the first existing candidate when path is empty, on
// top of the defaults. INSIGHTMEET_<SECTION>_<KEY> variables override files.
// Finding no candidate is not an error.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := ""
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		source = path
	} else {
		for _, p := range Candidates() {
			if _, err := os.Stat(p); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, err
			}
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", p, err)
			}
			source = p
			break
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = source
	return &cfg, nil
}

// Analysis maps the generator section onto the analysis package.
func (r *Root) Analysis() analysis.Config {
	return analysis.Config{
		MaxDisplaySeconds: r.Generator.MaxDisplaySeconds,
		TimelinePoints:    r.Generator.TimelinePoints,
		PaletteSize:       r.Generator.PaletteSize,
		ExtraLinks:        r.Generator.ExtraLinks,
		SummaryPoints:     r.Generator.SummaryPoints,
	}
}
