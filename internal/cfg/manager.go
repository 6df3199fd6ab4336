package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kerdl/wifu-go/internal/paths"
)

// ErrFirstRun is returned by Load when no config file existed yet: defaults
// have been written and the caller should print the informative message and
// exit 0, matching original_source's Config::default_and_save startup path.
var ErrFirstRun = errors.New("cfg: wrote default configuration, edit it and restart")

var validate = validator.New()

// Manager owns the loaded Config and makes it safe to read from multiple
// goroutines (operators each hold a reference to the same Manager).
type Manager struct {
	mu  sync.RWMutex
	cur Config
}

// NewManager constructs an empty Manager; call Load before Get.
func NewManager() *Manager {
	return &Manager{}
}

// Load reads ./wifu-data/cfg.json, validates it, and stores it on the
// Manager. If the file is missing, it writes Default() pretty-printed and
// returns ErrFirstRun.
func (m *Manager) Load() error {
	if err := os.MkdirAll(paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("cfg: create data dir: %w", err)
	}

	if _, err := os.Stat(paths.ConfigPath()); err != nil {
		if os.IsNotExist(err) {
			def := Default()
			if werr := save(def); werr != nil {
				return fmt.Errorf("cfg: write default config: %w", werr)
			}
			return ErrFirstRun
		}
		return fmt.Errorf("cfg: stat config file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(paths.ConfigPath()), kjson.Parser()); err != nil {
		return fmt.Errorf("cfg: read config file: %w", err)
	}

	var parsed Config
	if err := k.UnmarshalWithConf("", &parsed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("cfg: deserialize config file: %w", err)
	}

	if err := validate.Struct(parsed); err != nil {
		return fmt.Errorf("cfg: invalid config: %w", err)
	}

	m.mu.Lock()
	m.cur = parsed
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the currently loaded configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Reload re-reads the config file in place, used by the fsnotify watcher.
// Errors are the caller's responsibility to log; the previously loaded
// config is left untouched on failure so a bad edit never knocks the
// supervisor over.
func (m *Manager) Reload() error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(paths.ConfigPath()), kjson.Parser()); err != nil {
		return fmt.Errorf("cfg: reload: read config file: %w", err)
	}

	var parsed Config
	if err := k.UnmarshalWithConf("", &parsed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("cfg: reload: deserialize config file: %w", err)
	}

	if err := validate.Struct(parsed); err != nil {
		return fmt.Errorf("cfg: reload: invalid config: %w", err)
	}

	m.mu.Lock()
	m.cur = parsed
	m.mu.Unlock()
	return nil
}

// save pretty-prints cfg to ./wifu-data/cfg.json, two-space indent, matching
// the original implementation's serde_json::to_vec_pretty byte layout
// closely enough that a load-then-save round trip is stable.
func save(cfg Config) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(paths.ConfigPath(), b, 0o644)
}

// Save writes the currently loaded configuration back to disk.
func (m *Manager) Save() error {
	return save(m.Get())
}
