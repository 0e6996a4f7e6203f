package progression

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var defaultTiersYAML []byte

// tierValidate checks the struct tags on the tier table types.
var tierValidate = validator.New()

// ValueSet is a pool of candidate values: either the explicit Values or,
// when Values is empty, every integer in [Min, Max].
type ValueSet struct {
	Min    int       `yaml:"min"`
	Max    int       `yaml:"max" validate:"gtefield=Min"`
	Values []float64 `yaml:"values,omitempty"`
}

// Size returns the number of candidates in the set.
func (v ValueSet) Size() int {
	if len(v.Values) > 0 {
		return len(v.Values)
	}
	return v.Max - v.Min + 1
}

// At returns the i-th candidate, 0 <= i < Size().
func (v ValueSet) At(i int) float64 {
	if len(v.Values) > 0 {
		return v.Values[i]
	}
	return float64(v.Min + i)
}

// StartRange draws the first term: an integer in [Min, Max] times Scale.
type StartRange struct {
	Min   int `yaml:"min"`
	Max   int `yaml:"max" validate:"gtefield=Min"`
	Scale int `yaml:"scale,omitempty" validate:"gte=0"`
}

func (s StartRange) scale() int {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// ReasonBand pairs candidate reasons with the start range used for them.
type ReasonBand struct {
	Reasons ValueSet   `yaml:"reasons"`
	Start   StartRange `yaml:"start"`
}

// TierConfig holds every generation bound for one tier.
type TierConfig struct {
	Tier        Tier   `yaml:"tier" validate:"required"`
	Label       string `yaml:"label" validate:"required"`
	Description string `yaml:"description"`

	// Length is the number of terms in the sequence.
	Length int `yaml:"length" validate:"min=3,max=12"`

	// Hidden lists the possible hidden counts; one is picked uniformly.
	Hidden []int `yaml:"hidden" validate:"required,min=1,dive,min=1"`

	Arithmetic []ReasonBand `yaml:"arithmetic" validate:"required,min=1,dive"`
	Geometric  []ReasonBand `yaml:"geometric" validate:"required,min=1,dive"`
}

// Bands returns the reason bands for kind.
func (c *TierConfig) Bands(kind Kind) []ReasonBand {
	if kind == KindGeometric {
		return c.Geometric
	}
	return c.Arithmetic
}

// TierTable maps each tier to its generation bounds.
type TierTable struct {
	Tiers []TierConfig `yaml:"tiers" validate:"required,min=1,dive"`

	index map[Tier]*TierConfig
}

// TierTableError reports a tier table that failed to load.
type TierTableError struct {
	Source string
	Err    error
}

func (e *TierTableError) Error() string {
	return fmt.Sprintf("tier table %s: %v", e.Source, e.Err)
}

func (e *TierTableError) Unwrap() error {
	return e.Err
}

var (
	defaultTableOnce sync.Once
	defaultTable     *TierTable
)

// DefaultTierTable returns the table embedded in the binary.
// It panics if the embedded YAML is broken, which tests catch.
func DefaultTierTable() *TierTable {
	defaultTableOnce.Do(func() {
		t, err := ParseTierTable(defaultTiersYAML, "embedded")
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadTierTable reads and validates a tier table file.
func LoadTierTable(path string) (*TierTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TierTableError{Source: path, Err: err}
	}
	return ParseTierTable(data, path)
}

// ParseTierTable decodes and validates a tier table. source names the
// origin in error messages.
func ParseTierTable(data []byte, source string) (*TierTable, error) {
	var t TierTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &TierTableError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := tierValidate.Struct(&t); err != nil {
		return nil, &TierTableError{Source: source, Err: err}
	}

	t.index = make(map[Tier]*TierConfig, len(t.Tiers))
	for i := range t.Tiers {
		cfg := &t.Tiers[i]
		cfg.Tier = normalizeTier(string(cfg.Tier))
		if _, dup := t.index[cfg.Tier]; dup {
			return nil, &TierTableError{Source: source, Err: fmt.Errorf("duplicate tier %q", cfg.Tier)}
		}
		if err := checkTier(cfg); err != nil {
			return nil, &TierTableError{Source: source, Err: fmt.Errorf("tier %q: %w", cfg.Tier, err)}
		}
		t.index[cfg.Tier] = cfg
	}
	return &t, nil
}

// checkTier enforces the rules struct tags cannot express.
func checkTier(cfg *TierConfig) error {
	for _, n := range cfg.Hidden {
		if n > cfg.Length-1 {
			return fmt.Errorf("hidden count %d exceeds length-1 (%d)", n, cfg.Length-1)
		}
	}
	for _, kind := range []Kind{KindArithmetic, KindGeometric} {
		for i, band := range cfg.Bands(kind) {
			if err := checkReasons(band.Reasons); err != nil {
				return fmt.Errorf("%s band %d: %w", kind.DisplayName(), i, err)
			}
		}
	}
	return nil
}

func checkReasons(v ValueSet) error {
	if len(v.Values) > 0 {
		for _, r := range v.Values {
			if r == 0 {
				return errors.New("reason 0 is not allowed")
			}
		}
		return nil
	}
	if v.Min <= 0 && v.Max >= 0 {
		return fmt.Errorf("reason range [%d, %d] contains 0", v.Min, v.Max)
	}
	return nil
}

// Config returns the bounds for tier.
func (t *TierTable) Config(tier Tier) (*TierConfig, error) {
	cfg, ok := t.index[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return cfg, nil
}

// Parse resolves a user-supplied tier name (case-insensitive).
func (t *TierTable) Parse(s string) (Tier, error) {
	tier := normalizeTier(s)
	if _, err := t.Config(tier); err != nil {
		return "", err
	}
	return tier, nil
}

// Order returns the tiers in table order.
func (t *TierTable) Order() []Tier {
	out := make([]Tier, len(t.Tiers))
	for i, cfg := range t.Tiers {
		out[i] = cfg.Tier
	}
	return out
}

// Label returns the display name of tier, or the raw name if unknown.
func (t *TierTable) Label(tier Tier) string {
	if cfg, ok := t.index[tier]; ok {
		return cfg.Label
	}
	return string(tier)
}

// ParseTier resolves s against the embedded default table.
func ParseTier(s string) (Tier, error) {
	return DefaultTierTable().Parse(s)
}
