package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/finova-data/finova-client/pkg/services/password"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

type LoginCmd struct {
	username string
	password string
	env      *Env
}

func NewLoginCmd(env *Env) *cobra.Command {
	lc := &LoginCmd{env: env}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Finova engine",
		RunE:  lc.run,
	}

	cmd.Flags().StringVarP(&lc.username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&lc.password, "password", "p", "", "Account password")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (lc *LoginCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	_, mgr, err := lc.env.Connect(ctx)
	if err != nil {
		return err
	}

	if err := mgr.Login(ctx, lc.username, lc.password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := mgr.User()
	fmt.Fprintf(lc.env.Output, "Signed in as %s.\n", user.Username)
	return nil
}

type RegisterCmd struct {
	username string
	password string
	email    string
	env      *Env
}

func NewRegisterCmd(env *Env) *cobra.Command {
	rc := &RegisterCmd{env: env}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a Finova account",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&rc.password, "password", "p", "", "Account password")
	cmd.Flags().StringVarP(&rc.email, "email", "e", "", "Account email (optional)")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (rc *RegisterCmd) run(cmd *cobra.Command, _ []string) error {
	// Same policy the server enforces; failing here saves a round trip.
	if err := password.Validate(rc.password); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	_, mgr, err := rc.env.Connect(ctx)
	if err != nil {
		return err
	}

	if err := mgr.Register(ctx, rc.username, rc.password, rc.email); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	user := mgr.User()
	fmt.Fprintf(rc.env.Output, "Account created. Signed in as %s.\n", user.Username)
	return nil
}

type LogoutCmd struct {
	env *Env
}

func NewLogoutCmd(env *Env) *cobra.Command {
	lc := &LogoutCmd{env: env}
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored credential",
		RunE:  lc.run,
	}
}

func (lc *LogoutCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	_, mgr, err := lc.env.Connect(ctx)
	if err != nil {
		return err
	}

	mgr.Logout(ctx)
	fmt.Fprintln(lc.env.Output, "Signed out.")
	return nil
}

type WhoamiCmd struct {
	env *Env
}

func NewWhoamiCmd(env *Env) *cobra.Command {
	wc := &WhoamiCmd{env: env}
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently signed-in account",
		RunE:  wc.run,
	}
}

func (wc *WhoamiCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	_, mgr, err := wc.env.Connect(ctx)
	if err != nil {
		return err
	}

	mgr.Refresh(ctx)
	status := mgr.Status()
	if !status.Authenticated {
		fmt.Fprintln(wc.env.Output, "Not signed in.")
		return nil
	}

	if status.User.Email != "" {
		fmt.Fprintf(wc.env.Output, "%s <%s>\n", status.User.Username, status.User.Email)
		return nil
	}
	fmt.Fprintf(wc.env.Output, "%s\n", status.User.Username)
	return nil
}
