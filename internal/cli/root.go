// Package cli implements adminctl, the command line companion of the admin
// panel. It talks to the same content backend and validates input files
// with the same rules as the panel forms.
package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/richtext"
	"github.com/SergeyParamoshkin/admin/internal/validation"
)

var ErrNoBackend = errors.New("backend url is required: set api-url in .adminctl.yaml, ADMINCTL_API_URL or --api-url")

type app struct {
	v         *viper.Viper
	api       *client.Client
	printer   *Printer
	validator *validation.Validator
	sanitizer *richtext.Sanitizer
}

// NewRootCmd builds the command tree. Every call gets its own viper
// instance, so commands can be executed repeatedly in one process.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:         viper.New(),
		validator: validation.New(),
		sanitizer: richtext.NewSanitizer(),
	}

	var cfgFile string

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Manage articles and job positions of the content backend",
		Long: `adminctl lists, inspects and edits the records shown by the admin panel.

Example usage:
  adminctl articles list --published=false
  adminctl articles toggle hello-world
  adminctl positions list --department Design
  adminctl positions create -f position.yaml
  adminctl token set <token>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .adminctl.yaml)")
	flags.String("api-url", "", "content backend base url")
	flags.String("token", "", "bearer token for the backend")
	flags.String("token-file", defaultTokenFile(), "yaml file holding "+client.DefaultTokenKey)
	flags.Duration("timeout", 10*time.Second, "backend request timeout")
	flags.Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newArticlesCmd(a),
		newPositionsCmd(a),
		newTokenCmd(a),
	)

	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command, cfgFile string) error {
	v := a.v

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".adminctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("ADMINCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	a.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !v.GetBool("no-color"))

	if url := v.GetString("api-url"); url != "" {
		a.api = client.New(url,
			client.WithHTTPClient(http.Client{Timeout: v.GetDuration("timeout")}),
			client.WithCredentials(client.ChainProvider{
				client.StaticToken(v.GetString("token")),
				client.EnvToken("ADMIN_AUTH_TOKEN"),
				a.tokenStore(),
			}),
		)
	}

	return nil
}

// backend is the configured client, or ErrNoBackend.
func (a *app) backend() (*client.Client, error) {
	if a.api == nil {
		return nil, ErrNoBackend
	}

	return a.api, nil
}

func (a *app) tokenStore() client.FileStore {
	return client.FileStore{Path: a.v.GetString("token-file")}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adminctl-token.yaml"
	}

	return filepath.Join(home, ".adminctl-token.yaml")
}
