package deploy

import (
	"context"
	"strings"
)

// Runner executes commands on the target host.
type Runner interface {
	Run(ctx context.Context, cmd string) error
	// RunRedacted runs cmd but only ever logs logged, for commands that
	// carry secrets.
	RunRedacted(ctx context.Context, cmd string, logged string) error
	Put(ctx context.Context, content []byte, remotePath string) error
}

const redacted = "[REDACTED]"

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
