package main

import (
	"fmt"
	"net"
	"os"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/finova-data/finova-client/pkg/server"
	"github.com/finova-data/finova-client/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the local Finova dashboard gateway",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigPath(),
		"Path to the Finova config file (default is $HOME/.finova/config.yaml)")
	rootCmd.Flags().StringVar(&profile, "profile", config.DefaultProfile,
		"Configuration profile to use")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	settings, err := registry.GetSettings(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	store := client.NewFileStore(settings.CredentialsPath, settings.Mode)
	surface, err := client.New(client.Config{
		BaseURL: settings.BaseURL,
		Mode:    settings.Mode,
		Store:   store,
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	logger.Info().
		Str("base_url", surface.BaseURL()).
		Str("mode", string(settings.Mode)).
		Msg("gateway configured")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "8090"
	}

	addr := net.JoinHostPort(host, port)
	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Surface: surface,
		},
	})

	return api.Start()
}
