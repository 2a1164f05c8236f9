package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/petfriends-qa/petfriends-api-tests/internal/config"
	"github.com/petfriends-qa/petfriends-api-tests/internal/logger"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient"
	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg    *config.Config
	client *petfriends.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "petfriends",
		Short:         "Call the PetFriends API one endpoint at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(v, cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.String("base-url", "", "service root (env PETFRIENDS_BASE_URL)")
	pf.StringP("output", "o", "", "body output format: json or yaml (env OUTPUT_FORMAT)")
	pf.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	root.AddCommand(
		newKeyCmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newPhotoCmd(a),
		newDeleteCmd(a),
	)

	return root
}

var flagKeys = map[string]string{
	"base-url":  "petfriends_base_url",
	"output":    "output_format",
	"log-level": "log_level",
}

func (a *app) init(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := bindFlags(v, flags, flagKeys); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.client = petfriends.NewClient(cfg.BaseURL,
		petfriends.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout, httpclient.WithLogger(sugar))),
		petfriends.WithLogger(logger.FromSugar(sugar)),
	)
	return nil
}

// bindFlags binds only flags the user actually set, so unset flags never
// shadow environment values or defaults.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}
