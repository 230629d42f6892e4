package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(env *environment) *cobra.Command {
	var payload models.RegistrationPayload

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Create an account with the ADMIN role. Self-registration always creates
STUDENT accounts, so this is the only way to add administrators.

The password is read from the terminal twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptNewPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			payload.Password = password

			user, err := env.services.UserService.CreateAdmin(cmd.Context(), payload)
			if err != nil {
				return describe(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (id %d)\n", okFmt("Created administrator"), user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload.Username, "username", "", "login name")
	cmd.Flags().StringVar(&payload.Email, "email", "", "email address")
	cmd.Flags().StringVar(&payload.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&payload.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")

	return cmd
}

func newResetPasswordCmd(env *environment) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptNewPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err = env.services.UserService.ResetPassword(cmd.Context(), username, password); err != nil {
				return describe(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okFmt("Password updated for"), username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// describe prints field errors one per line and returns a short error.
func describe(w io.Writer, err error) error {
	var fieldErrs validators.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		fmt.Fprintf(w, "  %s %s\n", errFmt(fe.Field+":"), fe.Message)
	}
	return errInvalidInput
}
