package cfg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"media-dupes/internal/domain/command"
	"media-dupes/internal/domain/consts"
	"media-dupes/internal/domain/keys"
	"media-dupes/internal/domain/paths"
	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"
	"media-dupes/internal/validation"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindList
)

// settableKeys lists every key "settings set" accepts, with its value type.
var settableKeys = map[string]valueKind{
	keys.AudioFormat:                  kindString,
	keys.EnableVerboseMode:            kindBool,
	keys.AdditionalYoutubeDlParameter: kindString,
	keys.DownloadDir:                  kindString,
	keys.YoutubeDlPath:                kindString,
	keys.FFmpegPath:                   kindString,
	keys.MaxConcurrentDownloads:       kindInt,
	keys.NotifyURLs:                   kindList,
	keys.DesktopNotifications:         kindBool,
	keys.ServerPort:                   kindInt,
}

// flagKeys maps global flag names to the settings they override.
var flagKeys = map[string]string{
	"verbose":        keys.EnableVerboseMode,
	"max-concurrent": keys.MaxConcurrentDownloads,
	"download-dir":   keys.DownloadDir,
	"audio-format":   keys.AudioFormat,
}

// SettingsStore reads and persists program settings.
//
// file holds only what is written to the config file. v layers env vars and flags over it.
type SettingsStore struct {
	path string
	file *viper.Viper
	v    *viper.Viper
}

// persistedDefaults returns the settings written back to the config file when missing.
func persistedDefaults() map[string]any {
	return map[string]any{
		keys.AudioFormat:                  "mp3",
		keys.EnableVerboseMode:            false,
		keys.AdditionalYoutubeDlParameter: "",
		keys.DownloadDir:                  paths.DefaultDownload,
	}
}

// programDefaults are used when a key is unset, but never written back.
var programDefaults = map[string]any{
	keys.YoutubeDlPath:          command.YoutubeDL,
	keys.FFmpegPath:             "",
	keys.MaxConcurrentDownloads: 0,
	keys.NotifyURLs:             []string{},
	keys.DesktopNotifications:   true,
	keys.ServerPort:             consts.DefaultServerPort,
}

// LoadSettingsStore reads the config file at path, creating it if needed.
//
// Any of the persisted settings missing from the file is filled with its default and written back.
func LoadSettingsStore(path string) (*SettingsStore, error) {
	st := &SettingsStore{
		path: path,
		file: viper.New(),
		v:    viper.New(),
	}

	st.file.SetConfigFile(path)
	st.file.SetConfigPermissions(consts.PermsConfigFile)
	st.v.SetConfigFile(path)

	exists := true
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %q: %w", path, err)
		}
		exists = false
	}

	if exists {
		if err := st.file.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := st.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	st.v.SetEnvPrefix(consts.EnvPrefix)
	st.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	st.v.AutomaticEnv()

	defaults := persistedDefaults()
	for k, val := range defaults {
		st.v.SetDefault(k, val)
	}
	for k, val := range programDefaults {
		st.v.SetDefault(k, val)
	}

	if err := st.writeBackDefaults(defaults); err != nil {
		return nil, err
	}
	return st, nil
}

// writeBackDefaults persists each default the config file does not set yet.
func (st *SettingsStore) writeBackDefaults(defaults map[string]any) error {
	var missing []string
	for k, val := range defaults {
		if st.file.IsSet(k) {
			continue
		}
		st.file.Set(k, val)
		missing = append(missing, k)
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	logging.D(1, "Writing default settings %v to %q", missing, st.path)
	return st.persist()
}

// persist writes the file layer to disk.
func (st *SettingsStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(st.path), consts.PermsHomeProgDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := st.file.WriteConfigAs(st.path); err != nil {
		return fmt.Errorf("failed to write config file %q: %w", st.path, err)
	}
	return nil
}

// BindFlags lets changed global flags override their settings for this run.
func (st *SettingsStore) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := st.v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Settings resolves and validates the settings for a batch.
func (st *SettingsStore) Settings() (*models.Settings, error) {
	s := &models.Settings{
		AudioFormat:          st.v.GetString(keys.AudioFormat),
		Verbose:              st.v.GetBool(keys.EnableVerboseMode),
		ExtraArgs:            st.v.GetString(keys.AdditionalYoutubeDlParameter),
		DownloadDir:          st.v.GetString(keys.DownloadDir),
		YoutubeDlPath:        st.v.GetString(keys.YoutubeDlPath),
		FFmpegPath:           st.v.GetString(keys.FFmpegPath),
		MaxConcurrent:        st.v.GetInt(keys.MaxConcurrentDownloads),
		NotifyURLs:           st.v.GetStringSlice(keys.NotifyURLs),
		DesktopNotifications: st.v.GetBool(keys.DesktopNotifications),
	}

	if resolved, err := exec.LookPath(s.YoutubeDlPath); err == nil {
		s.YoutubeDlPath = resolved
	} else {
		logging.D(1, "Download tool %q not found in $PATH, using as given", s.YoutubeDlPath)
	}
	if s.FFmpegPath == "" {
		if resolved, err := exec.LookPath(command.FFmpeg); err == nil {
			s.FFmpegPath = resolved
		}
	}

	if err := validation.ValidateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ServerPort returns the port for the web API.
func (st *SettingsStore) ServerPort() int {
	return st.v.GetInt(keys.ServerPort)
}

// Set parses value for key and persists it.
func (st *SettingsStore) Set(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q, valid settings: %s", key, strings.Join(SettableKeys(), ", "))
	}

	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("invalid value %q for setting %q: %w", value, key, err)
	}
	if port, ok := parsed.(int); ok && key == keys.ServerPort && (port < 1 || port > 65535) {
		return fmt.Errorf("invalid port %d", port)
	}

	prev := st.file.Get(key)
	st.file.Set(key, parsed)
	st.v.Set(key, parsed)
	if _, err := st.Settings(); err != nil {
		st.file.Set(key, prev)
		st.v.Set(key, prev)
		return err
	}
	return st.persist()
}

// All returns every known setting with its effective value.
func (st *SettingsStore) All() map[string]any {
	out := make(map[string]any, len(settableKeys))
	for k := range settableKeys {
		out[k] = st.v.Get(k)
	}
	return out
}

// SettableKeys returns the keys accepted by Set, sorted.
func SettableKeys() []string {
	out := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindList:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return value, nil
	}
}
