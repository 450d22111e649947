package cmd

import (
	"fmt"
	"strings"

	"outlay/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	RunE:  runConfigShow,
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Set the backend base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetServer,
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme <dark|light>",
	Short: "Set the color theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetTheme,
}

func init() {
	configCmd.AddCommand(configSetServerCmd, configSetThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token := "(not set)"
	if cfg.Session.Token != "" {
		token = maskToken(cfg.Session.Token)
	}

	fmt.Printf("  Config file: %s\n\n", config.ConfigPath())
	fmt.Printf("  server.base_url   %s\n", cfg.Server.BaseURL)
	fmt.Printf("  session.token     %s\n", token)
	fmt.Printf("  appearance.theme  %s\n", cfg.Appearance.Theme)
	return nil
}

func runConfigSetServer(_ *cobra.Command, args []string) error {
	baseURL := strings.TrimRight(args[0], "/")
	if err := config.SaveServer(baseURL); err != nil {
		return err
	}
	fmt.Printf("  Server set to %s\n", baseURL)
	return nil
}

func runConfigSetTheme(_ *cobra.Command, args []string) error {
	name := args[0]
	if name != "dark" && name != "light" {
		return fmt.Errorf("unknown theme %q, use dark or light", name)
	}
	if err := config.SaveTheme(name); err != nil {
		return err
	}
	fmt.Printf("  Theme set to %s\n", name)
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
