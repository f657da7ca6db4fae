package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/finova-data/finova-client/pkg/runtime/terminal/export"
	"github.com/finova-data/finova-client/pkg/services/config"
	"github.com/finova-data/finova-client/pkg/services/session"
)

// Env carries the dependencies shared by every command: the profile
// registry, the report renderer, and the output stream. Profile is bound
// to the root command's persistent flag.
type Env struct {
	Registry config.Registry
	Reporter *export.Reporter
	Output   io.Writer
	Profile  string

	settings *config.Settings
}

// Connect resolves the active profile and builds the gateway client and
// session manager around a file-backed credential store.
func (e *Env) Connect(ctx context.Context) (*client.Client, *session.Manager, error) {
	settings, err := e.Registry.GetSettings(ctx, e.Profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	e.settings = settings

	store := client.NewFileStore(settings.CredentialsPath, settings.Mode)
	c, err := client.New(client.Config{
		BaseURL:   settings.BaseURL,
		Mode:      settings.Mode,
		Store:     store,
		Navigator: &terminalNavigator{out: e.Output},
	})
	if err != nil {
		return nil, nil, err
	}

	return c, session.NewManager(c, settings.Mode, store), nil
}

// contextPath is where the most recent analysis context bundle lives, so
// a later chat command can echo it back to the engine.
func (e *Env) contextPath() string {
	if e.settings == nil {
		return filepath.Join(".finova", "last_context.json")
	}
	return filepath.Join(filepath.Dir(e.settings.CredentialsPath), "last_context.json")
}

func (e *Env) SaveContext(bundle map[string]interface{}) error {
	if len(bundle) == 0 {
		return nil
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode context bundle: %w", err)
	}

	path := e.contextPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (e *Env) LoadContext() map[string]interface{} {
	data, err := os.ReadFile(e.contextPath())
	if err != nil {
		return nil
	}

	var bundle map[string]interface{}
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil
	}
	return bundle
}

// terminalNavigator is the CLI's sign-in surface: navigating to it prints
// a hint instead of changing pages.
type terminalNavigator struct {
	out io.Writer
}

func (n *terminalNavigator) Location() string {
	return ""
}

func (n *terminalNavigator) Navigate(path string) {
	if path == client.SignInPath {
		fmt.Fprintln(n.out, "Session expired. Run `finova login` to sign in again.")
	}
}
