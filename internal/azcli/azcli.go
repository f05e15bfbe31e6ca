// Package azcli wraps invocation of the Azure CLI (the az binary). It is the
// only part of azctx that talks to the external tool: querying the currently
// active account, setting the active account by subscription id, and probing
// whether the CLI is installed at all.
//
// Every invocation is bounded by a timeout; a call that exceeds it surfaces
// as a timeout error rather than an unbounded hang. The package performs no
// retries — a single failed attempt is returned to the caller as-is.
package azcli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/Iron-Ham/azctx/internal/errors"
)

// Default timeouts for az invocations. The install probe gets a longer
// deadline because a cold az process can take tens of seconds to start on
// some machines.
const (
	DefaultCommandTimeout = 5 * time.Second
	DefaultProbeTimeout   = 30 * time.Second
)

// windowsInstallPaths are well-known az install locations checked when the
// binary is not on PATH.
var windowsInstallPaths = []string{
	`C:\Program Files\Microsoft SDKs\Azure\CLI2\wbin\az.cmd`,
	`C:\Program Files (x86)\Microsoft SDKs\Azure\CLI2\wbin\az.cmd`,
}

// Account is the active account as reported by `az account show`.
type Account struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	TenantID          string      `json:"tenantId"`
	TenantDisplayName string      `json:"tenantDisplayName"`
	User              AccountUser `json:"user"`
}

// AccountUser is the signed-in identity portion of an Account.
type AccountUser struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// runner executes an az invocation and returns captured stdout/stderr.
// A non-nil error is returned for non-zero exits and execution failures.
// Injectable so tests can simulate the az binary without a subprocess.
type runner func(ctx context.Context, binary string, args ...string) (stdout, stderr string, err error)

// CLI invokes the az binary with bounded timeouts.
type CLI struct {
	binary       string // explicit binary path; discovered lazily when empty
	timeout      time.Duration
	probeTimeout time.Duration
	run          runner
}

// Option configures a CLI.
type Option func(*CLI)

// WithBinary sets an explicit az binary path, skipping PATH discovery.
func WithBinary(path string) Option {
	return func(c *CLI) { c.binary = path }
}

// WithTimeout sets the per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *CLI) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithProbeTimeout sets the timeout for the install probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *CLI) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// New creates a CLI with the given options.
func New(opts ...Option) *CLI {
	c := &CLI{
		timeout:      DefaultCommandTimeout,
		probeTimeout: DefaultProbeTimeout,
		run:          execute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// findBinary resolves the az executable: explicit configuration first, then
// PATH, then well-known Windows install locations.
func (c *CLI) findBinary() (string, error) {
	if c.binary != "" {
		return c.binary, nil
	}

	if path, err := exec.LookPath("az"); err == nil {
		return path, nil
	}

	if runtime.GOOS == "windows" {
		for _, path := range windowsInstallPaths {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", errors.NewAzureError("Azure CLI is not installed or not in PATH", errors.ErrAzureCLINotFound)
}

// IsAvailable reports whether the az binary can be invoked at all.
func (c *CLI) IsAvailable(ctx context.Context) bool {
	binary, err := c.findBinary()
	if err != nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	_, _, err = c.run(probeCtx, binary, "version", "--output", "json")
	return err == nil
}

// CurrentAccount queries the currently active account via `az account show`.
// It returns ErrNoActiveSession when the CLI reports that no account is
// logged in, and ErrCommandFailed (or a timeout error) for other failures.
func (c *CLI) CurrentAccount(ctx context.Context) (*Account, error) {
	binary, err := c.findBinary()
	if err != nil {
		return nil, err
	}

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.run(cmdCtx, binary, "account", "show", "--output", "json")
	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeoutError("az account show", c.timeout).WithCause(errors.ErrTimeout)
		}
		// The CLI prints a "please run 'az login'" hint when no session exists.
		if strings.Contains(strings.ToLower(stderr), "az login") {
			return nil, errors.NewAzureError("no active Azure session; run 'az login' first", errors.ErrNoActiveSession).
				WithCommand("account show")
		}
		return nil, errors.NewAzureError("failed to query the active account", errors.ErrCommandFailed).
			WithCommand("account show").
			WithStderr(stderr)
	}

	var account Account
	if err := json.Unmarshal([]byte(stdout), &account); err != nil {
		return nil, errors.NewAzureError("failed to parse az output", errors.ErrCommandFailed).
			WithCommand("account show")
	}
	return &account, nil
}

// SetAccount makes the given subscription the CLI's active account via
// `az account set`. The result is not verified here; the orchestrator
// re-queries the active account to confirm the switch took effect.
func (c *CLI) SetAccount(ctx context.Context, subscriptionID string) error {
	binary, err := c.findBinary()
	if err != nil {
		return err
	}

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, stderr, err := c.run(cmdCtx, binary, "account", "set", "--subscription", subscriptionID)
	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return errors.NewTimeoutError("az account set", c.timeout).WithCause(errors.ErrTimeout)
		}
		return errors.NewAzureError("failed to set the active account", errors.ErrCommandFailed).
			WithCommand("account set").
			WithStderr(stderr)
	}
	return nil
}

// execute runs the az binary, capturing stdout and stderr.
func execute(ctx context.Context, binary string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
