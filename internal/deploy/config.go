// Package deploy provisions a host and releases the application over SSH.
package deploy

import (
	"errors"
	"path"
	"strings"
)

type Config struct {
	Application string `mapstructure:"application"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	DeployTo    string `mapstructure:"deploy_to"`

	// Repository and Branch are checked out into every new release.
	Repository string `mapstructure:"repository"`
	Branch     string `mapstructure:"branch"`

	KeyPath        string `mapstructure:"key_path"`
	KnownHostsFile string `mapstructure:"known_hosts_file"`

	DBName     string `mapstructure:"db_name"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBHost     string `mapstructure:"db_host"`

	// LocalRoot is the local checkout whose db/ tree is mirrored into the
	// shared directory.
	LocalRoot string `mapstructure:"local_root"`

	// SiteHost is the public host name rendered into links.rb.
	SiteHost string `mapstructure:"site_host"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

func DefaultConfig() Config {
	return Config{
		Application: "onebody",
		Port:        22,
		Branch:      "master",
		DBName:      "onebody",
		DBUser:      "onebody",
		DBHost:      "localhost",
		LocalRoot:   ".",
	}
}

func (c Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.DeployTo == "" {
		missing = append(missing, "deploy_to")
	}
	if c.DBName == "" {
		missing = append(missing, "db_name")
	}
	if c.DBUser == "" {
		missing = append(missing, "db_user")
	}
	if len(missing) > 0 {
		return errors.New("deploy config: missing " + strings.Join(missing, ", "))
	}
	if !path.IsAbs(c.DeployTo) {
		return errors.New("deploy config: deploy_to must be absolute")
	}
	return nil
}

func (c Config) SharedPath() string {
	return path.Join(c.DeployTo, "shared")
}

func (c Config) ReleasesPath() string {
	return path.Join(c.DeployTo, "releases")
}

func (c Config) ReleasePath(release string) string {
	return path.Join(c.ReleasesPath(), release)
}

func (c Config) CurrentPath() string {
	return path.Join(c.DeployTo, "current")
}
