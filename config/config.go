// Package config assembles runtime settings from defaults, a TOML file and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/scotomap/audio"
	"github.com/lixenwraith/scotomap/input"
	"github.com/lixenwraith/scotomap/parameter"
	"github.com/lixenwraith/scotomap/projection"
	"github.com/lixenwraith/scotomap/render"
	"github.com/lixenwraith/scotomap/sweep"
)

// ErrInvalidConfig wraps every load and validation failure
var ErrInvalidConfig = errors.New("invalid config")

// SweepConfig is the [sweep] section, degrees throughout
type SweepConfig struct {
	MaxPhi    float64 `toml:"max_phi"`
	PhiInc    float64 `toml:"phi_inc"`
	MaxTheta  float64 `toml:"max_theta"`
	ThetaInc  float64 `toml:"theta_inc"`
	StartPhi  float64 `toml:"start_phi"`
	Wrap      string  `toml:"wrap"`      // inclusive | exclusive
	Terminate string  `toml:"terminate"` // inclusive | exclusive
	Undo      string  `toml:"undo"`      // step | raw-degree
}

// DisplayConfig is the [display] section
type DisplayConfig struct {
	EyeDistance   float64   `toml:"eye_distance"`
	TabulateScale float64   `toml:"tabulate_scale"`
	PixelRatio    float64   `toml:"pixel_ratio"`
	TerminalPPU   float64   `toml:"terminal_ppu"`
	ImagePPU      float64   `toml:"image_ppu"`
	MajorPhi      []float64 `toml:"major_phi"`
	MajorTheta    []float64 `toml:"major_theta"`
}

// AdvanceConfig is the [advance] section
type AdvanceConfig struct {
	Mode      string  `toml:"mode"` // timer | keys
	FrameRate float64 `toml:"frame_rate"`
}

// AudioSection is the [audio] section
type AudioSection struct {
	Enabled      bool               `toml:"enabled"`
	MasterVolume float64            `toml:"master_volume"`
	Volumes      map[string]float64 `toml:"volumes"`
	SampleRate   int                `toml:"sample_rate"`
}

// ExportConfig is the [export] section
type ExportConfig struct {
	// Path receives the tabulated map on completion; empty disables
	Path        string  `toml:"path"`
	SnapshotDir string  `toml:"snapshot_dir"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	LineWidth   float64 `toml:"line_width"`
}

// Config is the complete runtime configuration
type Config struct {
	Sweep   SweepConfig     `toml:"sweep"`
	Display DisplayConfig   `toml:"display"`
	Advance AdvanceConfig   `toml:"advance"`
	Audio   AudioSection    `toml:"audio"`
	Export  ExportConfig    `toml:"export"`
	Keymap  input.KeyConfig `toml:"keymap"`
}

// Default returns the built-in configuration
func Default() *Config {
	ac := audio.DefaultAudioConfig()
	volumes := make(map[string]float64, len(ac.EffectVolumes))
	for st, v := range ac.EffectVolumes {
		volumes[st.String()] = v
	}

	return &Config{
		Sweep: SweepConfig{
			MaxPhi:    parameter.MaxPhi,
			PhiInc:    parameter.PhiInc,
			MaxTheta:  parameter.MaxTheta,
			ThetaInc:  parameter.ThetaInc,
			StartPhi:  parameter.StartPhi,
			Wrap:      sweep.Inclusive.String(),
			Terminate: sweep.Inclusive.String(),
			Undo:      sweep.UndoStep.String(),
		},
		Display: DisplayConfig{
			EyeDistance:   parameter.EyeScreenDistance,
			TabulateScale: parameter.TabulateScale,
			PixelRatio:    parameter.PixelRatio,
			TerminalPPU:   parameter.TerminalPixelsPerUnit,
			ImagePPU:      parameter.ImagePixelsPerUnit,
			MajorPhi:      slices.Clone(parameter.MajorAnglesPhi),
			MajorTheta:    slices.Clone(parameter.MajorAnglesTheta),
		},
		Advance: AdvanceConfig{
			Mode:      input.ModeTimer.String(),
			FrameRate: parameter.FrameRate,
		},
		Audio: AudioSection{
			Enabled:      ac.Enabled,
			MasterVolume: ac.MasterVolume,
			Volumes:      volumes,
			SampleRate:   ac.SampleRate,
		},
		Export: ExportConfig{
			SnapshotDir: parameter.SnapshotDir,
			Width:       parameter.ImageWidth,
			Height:      parameter.ImageHeight,
			LineWidth:   parameter.ImageLineWidth,
		},
	}
}

// Load reads defaults overlaid by the TOML file at path, then the environment
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays TOML text onto cfg
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %s", ErrInvalidConfig, undecoded[0])
	}
	return nil
}

// Environment variables read by ApplyEnv, audio variables are handled by audio.ApplyEnv
const (
	EnvMode          = "SCOTOMAP_MODE"
	EnvFrameRate     = "SCOTOMAP_FRAME_RATE"
	EnvEyeDistance   = "SCOTOMAP_EYE_DISTANCE"
	EnvMaxPhi        = "SCOTOMAP_MAX_PHI"
	EnvPhiInc        = "SCOTOMAP_PHI_INC"
	EnvMaxTheta      = "SCOTOMAP_MAX_THETA"
	EnvThetaInc      = "SCOTOMAP_THETA_INC"
	EnvStartPhi      = "SCOTOMAP_START_PHI"
	EnvTabulateScale = "SCOTOMAP_TABULATE_SCALE"
	EnvPixelRatio    = "SCOTOMAP_PIXEL_RATIO"
	EnvExport        = "SCOTOMAP_EXPORT"
)

// ApplyEnv overlays SCOTOMAP_* environment variables
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{EnvFrameRate, &c.Advance.FrameRate},
		{EnvEyeDistance, &c.Display.EyeDistance},
		{EnvMaxPhi, &c.Sweep.MaxPhi},
		{EnvPhiInc, &c.Sweep.PhiInc},
		{EnvMaxTheta, &c.Sweep.MaxTheta},
		{EnvThetaInc, &c.Sweep.ThetaInc},
		{EnvStartPhi, &c.Sweep.StartPhi},
		{EnvTabulateScale, &c.Display.TabulateScale},
		{EnvPixelRatio, &c.Display.PixelRatio},
	}
	for _, f := range floats {
		v := getenv(f.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, f.name, err)
		}
		*f.dst = parsed
	}

	if v := getenv(EnvMode); v != "" {
		c.Advance.Mode = v
	}
	if v := getenv(EnvExport); v != "" {
		c.Export.Path = v
	}

	ac := c.AudioConfig()
	if err := audio.ApplyEnv(ac, getenv); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.Audio.Enabled = ac.Enabled
	c.Audio.MasterVolume = ac.MasterVolume
	c.Audio.SampleRate = ac.SampleRate
	if c.Audio.Volumes == nil {
		c.Audio.Volumes = make(map[string]float64, len(ac.EffectVolumes))
	}
	for st, v := range ac.EffectVolumes {
		c.Audio.Volumes[st.String()] = v
	}
	return nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if _, err := c.SweepParams(); err != nil {
		return err
	}

	d := c.Display
	switch {
	case !(d.EyeDistance > 0):
		return fmt.Errorf("%w: eye_distance must be positive, got %v", ErrInvalidConfig, d.EyeDistance)
	case !(d.TabulateScale > 0):
		return fmt.Errorf("%w: tabulate_scale must be positive, got %v", ErrInvalidConfig, d.TabulateScale)
	case !(d.TerminalPPU > 0) || !(d.ImagePPU > 0):
		return fmt.Errorf("%w: pixels per unit must be positive", ErrInvalidConfig)
	case d.PixelRatio < 0:
		return fmt.Errorf("%w: pixel_ratio must not be negative, got %v", ErrInvalidConfig, d.PixelRatio)
	}
	for _, m := range d.MajorPhi {
		if m < 0 {
			return fmt.Errorf("%w: major_phi entries must not be negative, got %v", ErrInvalidConfig, m)
		}
	}

	if _, err := c.AdvanceMode(); err != nil {
		return err
	}
	if _, err := input.FrameInterval(c.Advance.FrameRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: master_volume outside [0, 1], got %v", ErrInvalidConfig, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfig, c.Audio.SampleRate)
	}

	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("%w: export size must be positive, got %dx%d", ErrInvalidConfig, c.Export.Width, c.Export.Height)
	}

	if _, err := c.KeyTable(); err != nil {
		return err
	}
	return nil
}

// SweepParams converts the [sweep] section
func (c *Config) SweepParams() (sweep.Params, error) {
	s := c.Sweep
	wrap, err := sweep.ParseThreshold(s.Wrap)
	if err != nil {
		return sweep.Params{}, fmt.Errorf("%w: wrap: %w", ErrInvalidConfig, err)
	}
	term, err := sweep.ParseThreshold(s.Terminate)
	if err != nil {
		return sweep.Params{}, fmt.Errorf("%w: terminate: %w", ErrInvalidConfig, err)
	}
	undo, err := sweep.ParseUndoPolicy(s.Undo)
	if err != nil {
		return sweep.Params{}, fmt.Errorf("%w: undo: %w", ErrInvalidConfig, err)
	}

	p := sweep.Params{
		MaxPhi:    s.MaxPhi,
		PhiInc:    s.PhiInc,
		MaxTheta:  s.MaxTheta,
		ThetaInc:  s.ThetaInc,
		StartPhi:  s.StartPhi,
		Wrap:      wrap,
		Terminate: term,
		Undo:      undo,
	}
	if err := p.Validate(); err != nil {
		return sweep.Params{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}

// TerminalGeometry returns the projection model of the half-block canvas
func (c *Config) TerminalGeometry() render.Geometry {
	return c.geometry(c.Display.TerminalPPU)
}

// ImageGeometry returns the projection model of exported images
func (c *Config) ImageGeometry() render.Geometry {
	return c.geometry(c.Display.ImagePPU)
}

func (c *Config) geometry(ppu float64) render.Geometry {
	return render.Geometry{
		EyeDistance:    c.Display.EyeDistance,
		PixelsPerUnit:  projection.EffectivePPU(ppu, c.Display.PixelRatio),
		TabulateScale:  c.Display.TabulateScale,
		MajorPhi:       slices.Clone(c.Display.MajorPhi),
		MajorTheta:     slices.Clone(c.Display.MajorTheta),
		RadialOverhang: parameter.TabulateRadialOverhang,
	}
}

// AudioConfig converts the [audio] section
func (c *Config) AudioConfig() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	ac.SampleRate = c.Audio.SampleRate
	audio.SetEffectVolumes(ac, c.Audio.Volumes)
	return ac
}

// AdvanceMode parses the [advance] mode
func (c *Config) AdvanceMode() (input.Mode, error) {
	m, err := input.ParseMode(c.Advance.Mode)
	if err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

// KeyTable returns the default bindings with [keymap] overrides merged
func (c *Config) KeyTable() (*input.KeyTable, error) {
	kt := input.DefaultKeyTable()
	override, err := input.LoadKeyConfig(c.Keymap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	kt.Merge(override)
	return kt, nil
}
