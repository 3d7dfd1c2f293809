package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("settings")

// world read/write so the co-located monitor and dashboard processes can both use the file
const settingsFileMode = 0o666

// ArgsFileStore defines the file store arguments
type ArgsFileStore struct {
	Path string
	// EmailPassOverride, when not empty, replaces the email_pass value from the file on every
	// Load. It lets the SMTP secret live in the environment instead of the shared json file.
	EmailPassOverride string
}

type fileStore struct {
	path         string
	passOverride string
	mut          sync.Mutex
}

// NewFileStore creates a settings store backed by the shared settings.json file
func NewFileStore(args ArgsFileStore) (*fileStore, error) {
	if len(args.Path) == 0 {
		return nil, errors.New("empty settings file path")
	}

	return &fileStore{
		path:         args.Path,
		passOverride: args.EmailPassOverride,
	}, nil
}

// Load reads the current settings snapshot. A missing file is self-healed: it is created
// with default values and permissive access, and the defaults are returned.
func (store *fileStore) Load() (Settings, error) {
	store.mut.Lock()
	defer store.mut.Unlock()

	data, err := os.ReadFile(store.path)
	if os.IsNotExist(err) {
		defaults := Default()
		writeErr := store.writeUnprotected(defaults)
		if writeErr != nil {
			return Settings{}, writeErr
		}

		log.Info("settings file created with default values", "path", store.path)
		return store.applyOverrides(defaults), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file '%s': %w", store.path, err)
	}

	cfg := Default()
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings file '%s': %w", store.path, err)
	}

	return store.applyOverrides(cfg), nil
}

// SaveBounds updates only the four threshold values, keeping every other key in the file
// intact, including keys this service does not know about
func (store *fileStore) SaveBounds(b Bounds) error {
	store.mut.Lock()
	defer store.mut.Unlock()

	current := make(map[string]interface{})
	data, err := os.ReadFile(store.path)
	if err == nil {
		// a corrupted file is replaced instead of blocking the update
		_ = json.Unmarshal(data, &current)
	}

	current["min_temp"] = b.MinTemp
	current["max_temp"] = b.MaxTemp
	current["min_hum"] = b.MinHum
	current["max_hum"] = b.MaxHum

	return store.writeRawUnprotected(current)
}

func (store *fileStore) applyOverrides(cfg Settings) Settings {
	if len(store.passOverride) > 0 {
		cfg.EmailPass = store.passOverride
	}

	return cfg
}

func (store *fileStore) writeUnprotected(cfg Settings) error {
	raw := make(map[string]interface{})
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	return store.writeRawUnprotected(raw)
}

// writeRawUnprotected replaces the file atomically so a concurrent reader never observes a
// half-written snapshot
func (store *fileStore) writeRawUnprotected(raw map[string]interface{}) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(store.path)
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create settings directory '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write settings: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	err = os.Chmod(tmp.Name(), settingsFileMode)
	if err != nil {
		log.Warn("could not set permissions on settings file", "path", store.path, "error", err)
	}

	return os.Rename(tmp.Name(), store.path)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (store *fileStore) IsInterfaceNil() bool {
	return store == nil
}
