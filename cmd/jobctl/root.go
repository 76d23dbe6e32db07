package main

import (
	"strings"

	"job-board/internal/client"
	"job-board/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultAPIURL = "http://localhost:3000"

type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix("JOBCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "jobctl",
		Short:         "Post and browse job postings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("api-url", defaultAPIURL, "job board API base URL")
	flags.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flags.String("log-level", "warn", "diagnostic log level")
	_ = c.v.BindPFlags(flags)

	root.AddCommand(c.newCreateCmd(), c.newListCmd(), c.newBrowseCmd())
	return root
}

func (c *cli) client() *client.Client {
	return client.New(c.v.GetString("api-url"), c.v.GetDuration("timeout"))
}

func (c *cli) logger() *zap.Logger {
	l, err := logger.New(false, c.v.GetString("log-level"))
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("jobctl")
}
