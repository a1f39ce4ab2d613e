package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/admin/client"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored backend token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the bearer token in the token file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store := a.tokenStore()
			if err := store.Save(client.DefaultTokenKey, strings.TrimSpace(args[0])); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			a.printer.Success("token saved to %s", store.Path)

			return nil
		},
	}, &cobra.Command{
		Use:   "show",
		Short: "Show the stored token, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.tokenStore()

			token, err := store.Token(cmd.Context())
			if err != nil {
				return err
			}
			if token == "" {
				a.printer.Info("no token in %s", store.Path)

				return nil
			}

			a.printer.Field("Token", mask(token))

			return nil
		},
	})

	return cmd
}

func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}

	return token[:4] + strings.Repeat("*", len(token)-4)
}
