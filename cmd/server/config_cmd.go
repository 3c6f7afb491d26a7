package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/exemplo/appserver/internal/server"
)

type configView struct {
	HTTP struct {
		Host              string   `yaml:"host"`
		Port              int      `yaml:"port"`
		CertFile          string   `yaml:"cert_file,omitempty"`
		KeyFile           string   `yaml:"key_file,omitempty"`
		ReadHeaderTimeout string   `yaml:"read_header_timeout"`
		IdleTimeout       string   `yaml:"idle_timeout"`
		ShutdownTimeout   string   `yaml:"shutdown_timeout"`
		TrustedProxies    []string `yaml:"trusted_proxies,omitempty"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file,omitempty"`
	} `yaml:"log"`
	RateLimit string `yaml:"rate_limit,omitempty"`
}

func newConfigView(cfg *server.Config) *configView {
	view := &configView{RateLimit: cfg.RateLimit}
	view.HTTP.Host = cfg.HTTP.Host
	view.HTTP.Port = cfg.HTTP.Port
	view.HTTP.CertFile = cfg.HTTP.CertFile
	view.HTTP.KeyFile = cfg.HTTP.KeyFile
	view.HTTP.ReadHeaderTimeout = cfg.HTTP.ReadHeaderTimeout.String()
	view.HTTP.IdleTimeout = cfg.HTTP.IdleTimeout.String()
	view.HTTP.ShutdownTimeout = cfg.HTTP.ShutdownTimeout.String()
	view.HTTP.TrustedProxies = cfg.HTTP.TrustedProxies
	view.Log.Level = cfg.Log.Level
	view.Log.File = cfg.Log.File
	return view
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(newConfigView(cfg))
		},
	}
}
