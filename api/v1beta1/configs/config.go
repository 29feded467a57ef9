// Package configs defines the adastra Configuration kind.
package configs

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/macropower/adastra/api"
	"github.com/macropower/adastra/api/v1beta1"
	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/reveal"
	"github.com/macropower/adastra/pkg/screen"
	"github.com/macropower/adastra/pkg/term"
	"github.com/macropower/adastra/pkg/ui/theme"
	"github.com/macropower/adastra/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -o configs.v1beta1.json

// Kind is the kind of a [Config] document.
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// DefaultValidator checks documents against the embedded JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	_ v1beta1.Object = (*Config)(nil)
)

// Config is the adastra configuration file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Screen *Screen `json:"screen,omitempty" jsonschema:"title=Screen"`
	Reveal *Reveal `json:"reveal,omitempty" jsonschema:"title=Reveal"`
	UI     *UI     `json:"ui,omitempty" jsonschema:"title=UI"`
	// Texts is the path of a text sheet. When empty the built-in sheet is used.
	Texts string `json:"texts,omitempty" jsonschema:"title=Texts"`

	v1beta1.TypeMeta `json:",inline"`
}

// Screen configures the geometry and decoration of the screen. The width is
// always [screen.DefaultWidth].
type Screen struct {
	// LogoMargin is the left margin of logo lines.
	LogoMargin *int `json:"logo-margin,omitempty" jsonschema:"title=Logo Margin,minimum=0"`
	// Border is the frame glyph. It must be one terminal cell wide.
	Border string `json:"border,omitempty" jsonschema:"title=Border"`
	// Overflow is what happens to lines that are too wide: reject or clip.
	Overflow string `json:"overflow,omitempty" jsonschema:"title=Overflow,enum=reject,enum=clip"`
	// MenuPrefix and MenuSuffix decorate the menu row.
	MenuPrefix string `json:"menu-prefix,omitempty" jsonschema:"title=Menu Prefix"`
	MenuSuffix string `json:"menu-suffix,omitempty" jsonschema:"title=Menu Suffix"`
	// Prompt is printed below the screen, before the prompt text.
	Prompt string `json:"prompt,omitempty" jsonschema:"title=Prompt"`
	// Height is the number of rows, including both border rows.
	Height   int `json:"height,omitempty" jsonschema:"title=Height,minimum=4"`
	MenuRow  int `json:"menu-row,omitempty" jsonschema:"title=Menu Row,minimum=2"`
	ErrorRow int `json:"error-row,omitempty" jsonschema:"title=Error Row,minimum=1"`
}

// Reveal configures the splash logo animation.
type Reveal struct {
	// Enabled turns the animation on for the first splash.
	Enabled *bool `json:"enabled,omitempty" jsonschema:"title=Enabled"`
	// Step is added to the batch size after every frame.
	Step *int `json:"step,omitempty" jsonschema:"title=Step,minimum=0"`
	// IntervalMS is the pause between frames, in milliseconds.
	IntervalMS *int `json:"interval-ms,omitempty" jsonschema:"title=Interval,minimum=0"`
	// DelayMS is the pause before the first frame, in milliseconds.
	DelayMS *int `json:"delay-ms,omitempty" jsonschema:"title=Delay,minimum=0"`
	// Seed makes the reveal order reproducible. When unset each run differs.
	Seed *uint64 `json:"seed,omitempty" jsonschema:"title=Seed"`
	// BaseBatch is the number of cells revealed in the first frame.
	BaseBatch int `json:"base-batch,omitempty" jsonschema:"title=Base Batch,minimum=1"`
}

// UI configures styling.
type UI struct {
	// Theme is a chroma style name, or auto, dark or light.
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
}

// New returns a [Config] with every default filled in.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills unset sections and fields.
func (c *Config) EnsureDefaults() {
	if c.Screen == nil {
		c.Screen = &Screen{}
	}

	c.Screen.ensureDefaults()

	if c.Reveal == nil {
		c.Reveal = &Reveal{}
	}

	c.Reveal.ensureDefaults()

	if c.UI == nil {
		c.UI = &UI{}
	}

	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}
}

// Validate checks the values that the schema cannot.
func (c *Config) Validate() error {
	if c.Screen != nil {
		_, err := c.Screen.Layout()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}

		_, err = c.Screen.OverflowPolicy()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	jss.Title = Kind

	err := v1beta1.ConstrainTypeMeta(jss, Kind)
	if err != nil {
		panic(err)
	}
}

// MarshalYAML encodes the config.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Theme returns the configured theme.
func (c *Config) Theme() *theme.Theme {
	if c.UI == nil {
		return theme.Default
	}

	return theme.New(c.UI.Theme)
}

func (s *Screen) ensureDefaults() {
	def := screen.DefaultLayout()

	if s.Height == 0 {
		s.Height = def.Height
	}

	if s.Border == "" {
		s.Border = def.Border
	}

	if s.MenuRow == 0 {
		s.MenuRow = s.Height - 2
	}

	if s.ErrorRow == 0 {
		s.ErrorRow = s.Height - 1
	}

	if s.LogoMargin == nil {
		s.LogoMargin = ptr(def.LogoMargin)
	}

	if s.Overflow == "" {
		s.Overflow = compose.OverflowReject.String()
	}

	if s.MenuPrefix == "" {
		s.MenuPrefix = compose.DefaultMenuPrefix
	}

	if s.MenuSuffix == "" {
		s.MenuSuffix = compose.DefaultMenuSuffix
	}

	if s.Prompt == "" {
		s.Prompt = term.DefaultPromptPrefix
	}
}

// Layout converts s to a validated [screen.Layout].
func (s *Screen) Layout() (screen.Layout, error) {
	l := screen.DefaultLayout()
	l.Height = s.Height
	l.Border = s.Border
	l.MenuRow = s.MenuRow
	l.ErrorRow = s.ErrorRow

	if s.LogoMargin != nil {
		l.LogoMargin = *s.LogoMargin
	}

	err := l.Validate()
	if err != nil {
		return screen.Layout{}, err //nolint:wrapcheck // Already descriptive.
	}

	return l, nil
}

// OverflowPolicy parses the Overflow field.
func (s *Screen) OverflowPolicy() (compose.Overflow, error) {
	if s.Overflow == "" {
		return compose.OverflowReject, nil
	}

	return compose.ParseOverflow(s.Overflow)
}

func (r *Reveal) ensureDefaults() {
	if r.Enabled == nil {
		r.Enabled = ptr(true)
	}

	if r.BaseBatch == 0 {
		r.BaseBatch = reveal.DefaultBase
	}

	if r.Step == nil {
		r.Step = ptr(reveal.DefaultStep)
	}

	if r.IntervalMS == nil {
		r.IntervalMS = ptr(int(reveal.DefaultInterval / time.Millisecond))
	}

	if r.DelayMS == nil {
		r.DelayMS = ptr(int(reveal.DefaultDelay / time.Millisecond))
	}
}

// IsEnabled reports whether the splash logo is animated.
func (r *Reveal) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Opts converts r to [reveal.Opt]s. Unset fields keep the animator's
// defaults.
func (r *Reveal) Opts() []reveal.Opt {
	var opts []reveal.Opt

	if r.BaseBatch > 0 || r.Step != nil {
		base, step := reveal.DefaultBase, reveal.DefaultStep
		if r.BaseBatch > 0 {
			base = r.BaseBatch
		}

		if r.Step != nil {
			step = *r.Step
		}

		opts = append(opts, reveal.WithBatch(base, step))
	}

	if r.IntervalMS != nil {
		opts = append(opts, reveal.WithInterval(time.Duration(*r.IntervalMS)*time.Millisecond))
	}

	if r.DelayMS != nil {
		opts = append(opts, reveal.WithDelay(time.Duration(*r.DelayMS)*time.Millisecond))
	}

	if r.Seed != nil {
		opts = append(opts, reveal.WithSeed(*r.Seed))
	}

	return opts
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

// WriteDefault writes the default configuration file to path. With force an
// existing file is backed up and replaced.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the default configuration file path.
func GetPath() string {
	return api.ConfigPath("config.yaml")
}

func ptr[T any](v T) *T {
	return &v
}
