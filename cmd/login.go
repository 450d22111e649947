package cmd

import (
	"context"
	"errors"
	"fmt"

	"outlay/internal/auth"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store its session token",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Username")
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	return authenticate(false)
}

func runRegister(_ *cobra.Command, _ []string) error {
	return authenticate(true)
}

func authenticate(register bool) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	username := flagUsername
	password := ""
	if err := promptCredentials(&username, &password); err != nil {
		return err
	}

	ctx := context.Background()
	if register {
		err = d.auth.Register(ctx, username, password)
	} else {
		err = d.auth.Login(ctx, username, password)
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return fmt.Errorf("invalid username or password")
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Logged in as %s.\n", username)
	return nil
}

// promptCredentials asks for whatever wasn't supplied via flags.
func promptCredentials(username, password *string) error {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(password))

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func runLogout(_ *cobra.Command, _ []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("  Logged out.")
	return nil
}
