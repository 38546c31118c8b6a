package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BloggingApp/community-service/internal/deploy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool

	logger *zap.Logger
	config deploy.Config
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "deploy",
		Short:        "Provision and release the application over SSH",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return err
			}
			opts.logger = logger

			cfg, err := LoadConfig(opts.ConfigFile)
			if err != nil {
				return err
			}
			opts.config = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "deploy.yaml", "deploy config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every remote command")

	cmd.AddCommand(NewSetupCommand(opts))
	cmd.AddCommand(NewReleaseCommand(opts))
	cmd.AddCommand(NewCreateDatabaseCommand(opts))
	cmd.AddCommand(NewCopySSHKeyCommand(opts))

	return cmd
}

// LoadConfig reads the deploy config file, letting DEPLOY_* environment
// variables override it.
func LoadConfig(file string) (deploy.Config, error) {
	v := viper.New()
	setDefaults(v, deploy.DefaultConfig())

	v.SetEnvPrefix("DEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return deploy.Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
			}
		}
	}

	var cfg deploy.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return deploy.Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return deploy.Config{}, err
	}
	return cfg, nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg deploy.Config) {
	v.SetDefault("application", cfg.Application)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("user", cfg.User)
	v.SetDefault("deploy_to", cfg.DeployTo)
	v.SetDefault("repository", cfg.Repository)
	v.SetDefault("branch", cfg.Branch)
	v.SetDefault("key_path", cfg.KeyPath)
	v.SetDefault("known_hosts_file", cfg.KnownHostsFile)
	v.SetDefault("db_name", cfg.DBName)
	v.SetDefault("db_user", cfg.DBUser)
	v.SetDefault("db_password", cfg.DBPassword)
	v.SetDefault("db_host", cfg.DBHost)
	v.SetDefault("local_root", cfg.LocalRoot)
	v.SetDefault("site_host", cfg.SiteHost)
	v.SetDefault("use_ssl", cfg.UseSSL)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// withTasks dials the host and hands a task set to fn. The connection is
// closed when fn returns.
func (o *RootOptions) withTasks(ctx context.Context, fn func(ctx context.Context, tasks *deploy.Tasks) error) error {
	runner, err := deploy.DialSSH(o.config, o.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			o.logger.Sugar().Warnf("failed to close ssh connection: %s", err.Error())
		}
	}()

	prompter := deploy.TermPrompter{In: os.Stdin, Out: os.Stderr}
	return fn(ctx, deploy.NewTasks(o.config, runner, prompter, o.logger))
}
