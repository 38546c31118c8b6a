package deploy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHRunner runs every command in its own session on one SSH connection.
type SSHRunner struct {
	client *ssh.Client
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func DialSSH(cfg Config, logger *zap.Logger) (*SSHRunner, error) {
	home := os.Getenv("HOME")

	keyPath := cfg.KeyPath
	if keyPath == "" {
		keyPath = filepath.Join(home, ".ssh", "id_rsa")
	}
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	knownHostsFile := cfg.KnownHostsFile
	if knownHostsFile == "" {
		knownHostsFile = filepath.Join(home, ".ssh", "known_hosts")
	}
	hostKeyCallback, err := knownhosts.New(knownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("load known_hosts: %w", err)
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(port))

	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &SSHRunner{
		client: client,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}, nil
}

func (r *SSHRunner) Run(ctx context.Context, cmd string) error {
	return r.exec(ctx, cmd, cmd, nil)
}

func (r *SSHRunner) RunRedacted(ctx context.Context, cmd string, logged string) error {
	return r.exec(ctx, cmd, logged, nil)
}

func (r *SSHRunner) Put(ctx context.Context, content []byte, remotePath string) error {
	cmd := "cat > " + shellQuote(remotePath)
	return r.exec(ctx, cmd, cmd, bytes.NewReader(content))
}

func (r *SSHRunner) exec(ctx context.Context, cmd string, logged string, stdin io.Reader) error {
	session, err := r.client.NewSession()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	session.Stdin = stdin
	session.Stdout = r.stdout
	session.Stderr = r.stderr

	r.logger.Debug("executing remote command", zap.String("cmd", logged))

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGTERM)
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("remote command failed: %w", err)
		}
		return nil
	}
}

func (r *SSHRunner) Close() error {
	return r.client.Close()
}
