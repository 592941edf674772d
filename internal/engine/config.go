package engine

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"lumen/internal/consteval"
	"lumen/internal/importresolve"
)

// Config carries the two hard budgets spec.md §5 names plus the host
// fallback surface spec.md §6 describes (prelude, crate set), loadable
// from an optional lumen.toml. Grounded on the teacher's
// internal/project/modules.go use of github.com/BurntSushi/toml decoding
// a config struct with `toml` tags.
type Config struct {
	ConstBudget          int `toml:"const_budget"`
	ImportRecursionLimit int `toml:"import_recursion_limit"`

	// Prelude maps an implicitly-imported short name to the dotted path of
	// the item it resolves to, e.g. "Option" = "core::option::Option".
	Prelude map[string]string `toml:"prelude"`

	// CrateSet maps an external crate name to the dotted path of its root
	// item, consulted by the path converter after the prelude (spec.md §4.4
	// step 2's final fallback before treating a name as a new submodule).
	CrateSet map[string]string `toml:"crate_set"`
}

// DefaultConfig returns a Config carrying spec.md's documented defaults:
// a 1,000,000-step constant budget and a 128-hop import recursion limit.
func DefaultConfig() Config {
	return Config{
		ConstBudget:          consteval.DefaultBudget,
		ImportRecursionLimit: importresolve.RecursionLimit,
	}
}

// LoadConfig decodes a lumen.toml at path over DefaultConfig, so an
// omitted field keeps its documented default rather than zeroing out.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse config: %w", path, err)
	}
	if cfg.ConstBudget <= 0 {
		cfg.ConstBudget = consteval.DefaultBudget
	}
	if cfg.ImportRecursionLimit <= 0 {
		cfg.ImportRecursionLimit = importresolve.RecursionLimit
	}
	return cfg, nil
}
