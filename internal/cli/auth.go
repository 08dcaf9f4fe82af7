package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adhithya-electronics/storefront-client/internal/session/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if err := app.Session.SignIn(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, _ := app.Session.User()
	app.Printer.Success("logged in as %s", user.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reg := domain.Registration{Name: name, Email: email, Password: password}
	if err := app.Session.SignUp(cmd.Context(), reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	user, _ := app.Session.User()
	app.Printer.Success("account created, logged in as %s", user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app.Session.Logout()
	app.Printer.Success("logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !app.Session.IsAuthenticated() {
		app.Printer.Info("not logged in (guest cart active)")
		return nil
	}

	user, ok := app.Session.User()
	if !ok {
		app.Printer.Info("logged in (no profile stored)")
		return nil
	}
	app.Printer.Info("%s <%s> role=%s", user.Name, user.Email, user.Role)
	return nil
}
