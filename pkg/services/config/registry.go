package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/spf13/viper"
)

const (
	// EnvBaseURL overrides the configured base URL for every profile.
	EnvBaseURL = "FINOVA_API_URL"
	// DefaultBaseURL is the well-known deployment used when nothing else
	// is configured.
	DefaultBaseURL = "https://finova-backend.onrender.com"

	DefaultProfile = "default"
)

// Settings is the resolved configuration for one profile.
type Settings struct {
	BaseURL         string
	Mode            client.CredentialMode
	CredentialsPath string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSettings(ctx context.Context, profile string) (*Settings, error)
}

type profileConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Mode    string `mapstructure:"credential_mode"`
}

type cfgRegistry struct {
	v   *viper.Viper
	dir string
}

// NewRegistry loads the config file at path (missing file is fine: every
// profile then resolves to defaults). Credentials live next to the config
// file.
func NewRegistry(path string) (Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &cfgRegistry{v: v, dir: filepath.Dir(path)}, nil
}

// DefaultConfigPath is ~/.finova/config.yaml, falling back to a relative
// path when no home directory is resolvable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".finova", "config.yaml")
	}
	return filepath.Join(home, ".finova", "config.yaml")
}

func (r *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	profiles := make(map[string]profileConfig)
	if err := r.v.UnmarshalKey("profiles", &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	return names, nil
}

func (r *cfgRegistry) GetSettings(_ context.Context, profile string) (*Settings, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	var pc profileConfig
	if r.v.IsSet("profiles." + profile) {
		if err := r.v.UnmarshalKey("profiles."+profile, &pc); err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", profile, err)
		}
	} else if profile != DefaultProfile {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	baseURL := pc.BaseURL
	if env := os.Getenv(EnvBaseURL); env != "" {
		baseURL = env
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	mode, ok := client.ParseCredentialMode(pc.Mode)
	if !ok {
		return nil, fmt.Errorf("profile %s has unknown credential_mode %q", profile, pc.Mode)
	}

	return &Settings{
		BaseURL:         baseURL,
		Mode:            mode,
		CredentialsPath: filepath.Join(r.dir, "credentials"),
	}, nil
}
