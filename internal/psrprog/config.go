// Public domain.

package psrprog

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/soniakeys/psrcat/internal/psrcat"
	"github.com/soniakeys/psrcat/internal/psrload"
	"github.com/soniakeys/psrcat/internal/psrnorm"
	"github.com/soniakeys/psrcat/internal/psrproj"
	"github.com/soniakeys/psrcat/internal/psrsel"
)

// CatalogConfig locates one campaign file.
type CatalogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
	URL  string `mapstructure:"url" yaml:"url,omitempty"`
}

// ProjectionConfig holds the scene radius transform.
type ProjectionConfig struct {
	BaseOffset  float64 `mapstructure:"base_offset" yaml:"base_offset"`
	ScaleFactor float64 `mapstructure:"scale_factor" yaml:"scale_factor"`
}

// SelectionConfig holds the background tap debounce for replay.
type SelectionConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LogConfig selects JSON log output.
type LogConfig struct {
	JSON bool `mapstructure:"json" yaml:"json"`
}

// Config holds all runtime configuration.  Values come from .psrcat.yaml,
// PSRCAT_* environment variables and flags.
//
// Catalog and Bands are keyed by lower case campaign name.  Bands also
// has key "default".
type Config struct {
	Catalog    map[string]CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
	Bands      map[string]psrcat.Partition `mapstructure:"bands" yaml:"bands"`
	Projection ProjectionConfig            `mapstructure:"projection" yaml:"projection"`
	Selection  SelectionConfig             `mapstructure:"selection" yaml:"selection"`
	Log        LogConfig                   `mapstructure:"log" yaml:"log"`
	Verbose    bool                        `mapstructure:"verbose" yaml:"verbose"`
}

// default catalog file names, as published with the data release.
var defaultFiles = map[psrnorm.Campaign]string{
	psrnorm.CampaignA: "data/pulsars.json",
	psrnorm.CampaignB: "data/mspsrpi2Pulsars.json",
	psrnorm.CampaignC: "data/psrpiPulsars.json",
}

func setDefaults(v *viper.Viper) {
	for _, c := range psrnorm.Campaigns {
		k := "catalog." + key(c)
		v.SetDefault(k+".file", defaultFiles[c])
		v.SetDefault(k+".url", "")
	}
	v.SetDefault("bands.default.low", psrcat.DefaultPartition.Low)
	v.SetDefault("bands.default.high", psrcat.DefaultPartition.High)
	v.SetDefault("projection.base_offset", psrproj.Default.BaseOffset)
	v.SetDefault("projection.scale_factor", psrproj.Default.ScaleFactor)
	v.SetDefault("selection.debounce", psrsel.DefaultDebounce)
	v.SetDefault("log.json", false)
	v.SetDefault("verbose", false)
}

func key(c psrnorm.Campaign) string {
	return strings.ToLower(c.String())
}

// LoadConfig reads configuration from v, applying built-in defaults for
// any values not otherwise set, and validates it.
func LoadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "reading configuration")
	}
	for k := range cfg.Catalog {
		if _, ok := psrnorm.ParseCampaign(k); !ok {
			return cfg, errors.Newf("catalog: unknown campaign %q", k)
		}
	}
	for k, p := range cfg.Bands {
		if _, ok := psrnorm.ParseCampaign(k); !ok && k != "default" {
			return cfg, errors.Newf("bands: unknown campaign %q", k)
		}
		if err := p.Validate(); err != nil {
			return cfg, errors.Wrapf(err, "bands.%s", k)
		}
	}
	if cfg.Selection.Debounce < 0 {
		return cfg, errors.Newf("selection.debounce %s is negative", cfg.Selection.Debounce)
	}
	return cfg, nil
}

// Sources returns the catalog sources in campaign order.  A missing
// PSRπ file is tolerated; that campaign's release is optional.
func (cfg Config) Sources() []psrload.Source {
	s := make([]psrload.Source, len(psrnorm.Campaigns))
	for i, c := range psrnorm.Campaigns {
		cc := cfg.Catalog[key(c)]
		s[i] = psrload.Source{
			Campaign: c,
			File:     cc.File,
			URL:      cc.URL,
			Optional: c == psrnorm.CampaignC,
		}
	}
	return s
}

// DistanceBands returns the band partitions.  A campaign partition
// replaces the default one entirely.
func (cfg Config) DistanceBands() psrcat.Bands {
	b := psrcat.Bands{
		Default:  psrcat.DefaultPartition,
		Campaign: make(map[psrnorm.Campaign]psrcat.Partition),
	}
	if p, ok := cfg.Bands["default"]; ok {
		b.Default = p
	}
	for k, p := range cfg.Bands {
		if c, ok := psrnorm.ParseCampaign(k); ok {
			b.Campaign[c] = p
		}
	}
	return b
}

// Projector returns the configured scene projection.
func (cfg Config) Projector() psrproj.Projector {
	return psrproj.Projector{
		BaseOffset:  cfg.Projection.BaseOffset,
		ScaleFactor: cfg.Projection.ScaleFactor,
	}
}
