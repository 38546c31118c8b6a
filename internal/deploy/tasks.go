package deploy

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	TaskBeforeSetup     = "deploy:before_setup"
	TaskSetup           = "deploy:setup"
	TaskSharedSetup     = "deploy:shared:setup"
	TaskCreateDatabase  = "deploy:create_database"
	TaskUpdateCode      = "deploy:update_code"
	TaskAfterUpdateCode = "deploy:after_update_code"
	TaskSymlink         = "deploy:symlink"
	TaskCopySSHKey      = "deploy:copy_ssh_key"
)

const releaseFormat = "20060102150405"

var sharedDirs = []string{"config", "public", "themes", "plugins", "initializers"}

type Tasks struct {
	cfg      Config
	runner   Runner
	prompter Prompter
	logger   *zap.Logger
	hooks    *Hooks

	// localFS is rooted at cfg.LocalRoot.
	localFS  fs.FS
	home     string
	readFile func(name string) ([]byte, error)
	now      func() time.Time

	dbPassword string
}

func NewTasks(cfg Config, runner Runner, prompter Prompter, logger *zap.Logger) *Tasks {
	t := &Tasks{
		cfg:        cfg,
		runner:     runner,
		prompter:   prompter,
		logger:     logger,
		hooks:      NewHooks(logger),
		localFS:    os.DirFS(cfg.LocalRoot),
		home:       os.Getenv("HOME"),
		readFile:   os.ReadFile,
		now:        time.Now,
		dbPassword: cfg.DBPassword,
	}

	t.hooks.Before(TaskSetup, TaskBeforeSetup, t.BeforeSetup)
	t.hooks.After(TaskSetup, TaskSharedSetup, t.SharedSetup)
	t.hooks.After(TaskSetup, TaskCreateDatabase, t.CreateDatabase)

	return t
}

func (t *Tasks) sudo(ctx context.Context, cmd string) error {
	return t.runner.Run(ctx, "sudo "+cmd)
}

// Setup prepares a fresh host: the deploy directory, the shared tree and
// the database.
func (t *Tasks) Setup(ctx context.Context) error {
	return t.hooks.Invoke(ctx, TaskSetup, func(ctx context.Context) error {
		return t.runner.Run(ctx, fmt.Sprintf(
			"mkdir -p %s %s",
			shellQuote(t.cfg.ReleasesPath()),
			shellQuote(t.cfg.SharedPath()),
		))
	})
}

func (t *Tasks) BeforeSetup(ctx context.Context) error {
	deployTo := shellQuote(t.cfg.DeployTo)
	if err := t.sudo(ctx, "mkdir -p "+deployTo); err != nil {
		return err
	}
	return t.sudo(ctx, fmt.Sprintf("chown %s:%s %s", t.cfg.User, t.cfg.User, deployTo))
}

// SharedSetup mirrors the local db/ directory tree, minus migrations, into the
// shared path and creates the other shared directories.
func (t *Tasks) SharedSetup(ctx context.Context) error {
	dbDirs, err := t.localDBDirs()
	if err != nil {
		return err
	}

	shared := t.cfg.SharedPath()
	for _, dir := range dbDirs {
		if err := t.runner.Run(ctx, "mkdir -p "+shellQuote(path.Join(shared, "db", dir))); err != nil {
			return err
		}
	}
	for _, dir := range sharedDirs {
		if err := t.runner.Run(ctx, "mkdir -p "+shellQuote(path.Join(shared, dir))); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tasks) localDBDirs() ([]string, error) {
	var dirs []string
	err := fs.WalkDir(t.localFS, "db", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "db" || !d.IsDir() || strings.Contains(p, "migrate") {
			return nil
		}
		dirs = append(dirs, strings.TrimPrefix(p, "db/"))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan local db directory: %w", err)
	}
	return dirs, nil
}

// CreateDatabase creates the application database and user with the MySQL
// root account, then uploads the matching database.yml.
func (t *Tasks) CreateDatabase(ctx context.Context) error {
	rootPassword, err := t.prompter.Password("MySQL ROOT password: ")
	if err != nil {
		return err
	}

	password, err := t.databasePassword()
	if err != nil {
		return err
	}

	cmd := createDatabaseCommand(t.cfg, rootPassword, password)
	logged := createDatabaseCommand(t.cfg, redacted, redacted)
	if err := t.runner.RunRedacted(ctx, cmd, logged); err != nil {
		return err
	}

	yml, err := RenderDatabaseYML(t.cfg, password)
	if err != nil {
		return err
	}
	return t.runner.Put(ctx, yml, path.Join(t.cfg.SharedPath(), "config", "database.yml"))
}

func createDatabaseCommand(cfg Config, rootPassword, password string) string {
	sql := fmt.Sprintf(
		"create database %s; grant all on %s.* to %s@localhost identified by '%s'",
		cfg.DBName,
		cfg.DBName,
		cfg.DBUser,
		strings.ReplaceAll(password, "'", "''"),
	)
	return fmt.Sprintf("mysql -uroot -p%s -e %s", shellQuote(rootPassword), shellQuote(sql))
}

func (t *Tasks) databasePassword() (string, error) {
	if t.dbPassword != "" {
		return t.dbPassword, nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate database password: %w", err)
	}
	t.dbPassword = hex.EncodeToString(buf)
	return t.dbPassword, nil
}

// Deploy checks out a new release, links shared files into it and points
// current at it. It returns the release name.
func (t *Tasks) Deploy(ctx context.Context) (string, error) {
	release := t.now().UTC().Format(releaseFormat)

	if err := t.hooks.Invoke(ctx, TaskUpdateCode, func(ctx context.Context) error {
		return t.UpdateCode(ctx, release)
	}); err != nil {
		return "", err
	}
	if err := t.hooks.Invoke(ctx, TaskAfterUpdateCode, func(ctx context.Context) error {
		return t.AfterUpdateCode(ctx, release)
	}); err != nil {
		return "", err
	}
	if err := t.hooks.Invoke(ctx, TaskSymlink, func(ctx context.Context) error {
		return t.Symlink(ctx, release)
	}); err != nil {
		return "", err
	}

	return release, nil
}

func (t *Tasks) UpdateCode(ctx context.Context, release string) error {
	if t.cfg.Repository == "" {
		return errors.New("deploy config: repository is required to update code")
	}
	return t.runner.Run(ctx, fmt.Sprintf(
		"git clone -q --depth 1 -b %s %s %s",
		shellQuote(t.cfg.Branch),
		shellQuote(t.cfg.Repository),
		shellQuote(t.cfg.ReleasePath(release)),
	))
}

// AfterUpdateCode writes links.rb into the release and links or copies the
// shared config, assets, plugins and initializers into it.
func (t *Tasks) AfterUpdateCode(ctx context.Context, release string) error {
	releasePath := t.cfg.ReleasePath(release)
	shared := t.cfg.SharedPath()

	rb, err := RenderLinks(t.cfg)
	if err != nil {
		return err
	}
	if err := t.runner.Put(ctx, rb, path.Join(releasePath, "config", "initializers", "links.rb")); err != nil {
		return err
	}

	q := func(parts ...string) string {
		return shellQuote(path.Join(parts...))
	}
	commands := []string{
		fmt.Sprintf("ln -sf %s %s", q(shared, "config", "database.yml"), q(releasePath, "config", "database.yml")),
		fmt.Sprintf("if [ -e %s ]; then ln -sf %s %s; fi", q(shared, "config", "email.yml"), q(shared, "config", "email.yml"), q(releasePath, "config", "email.yml")),
		fmt.Sprintf("rm -rf %s && ln -s %s %s", q(releasePath, "public", "assets"), q(shared, "public", "assets"), q(releasePath, "public", "assets")),
		fmt.Sprintf(`cd %s; if [ "$(ls -A)" ]; then rsync -a * %s/; fi`, q(shared, "plugins"), q(releasePath, "plugins")),
		fmt.Sprintf(`cd %s; if [ "$(ls -A)" ]; then rsync -a * %s/; fi`, q(shared, "initializers"), q(releasePath, "config", "initializers")),
		fmt.Sprintf("cd %s && whenever -w RAILS_ENV=production", shellQuote(releasePath)),
	}
	return t.runner.Run(ctx, strings.Join(commands, "; "))
}

func (t *Tasks) Symlink(ctx context.Context, release string) error {
	return t.runner.Run(ctx, fmt.Sprintf(
		"ln -sfn %s %s",
		shellQuote(t.cfg.ReleasePath(release)),
		shellQuote(t.cfg.CurrentPath()),
	))
}

// CopySSHKey authorizes the local public key for the deploy user.
func (t *Tasks) CopySSHKey(ctx context.Context) error {
	return t.hooks.Invoke(ctx, TaskCopySSHKey, func(ctx context.Context) error {
		if err := t.runner.Run(ctx, "mkdir -p ~/.ssh"); err != nil {
			return err
		}

		pubkey, err := t.readFile(filepath.Join(t.home, ".ssh", "id_rsa.pub"))
		if err != nil {
			return fmt.Errorf("read public key: %w", err)
		}
		return t.runner.Run(ctx, fmt.Sprintf(
			"echo %s >> ~/.ssh/authorized_keys",
			shellQuote(strings.TrimSpace(string(pubkey))),
		))
	})
}

// CreateDatabaseOnly runs deploy:create_database without the rest of setup.
func (t *Tasks) CreateDatabaseOnly(ctx context.Context) error {
	return t.hooks.Invoke(ctx, TaskCreateDatabase, t.CreateDatabase)
}
