package azcli

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Iron-Ham/azctx/internal/errors"
)

// =============================================================================
// Test Helpers
// =============================================================================

const accountJSON = `{
  "id": "aaaa1111-0000-0000-0000-000000000001",
  "name": "Development Subscription",
  "tenantId": "tttt1111-0000-0000-0000-000000000001",
  "user": {
    "name": "me@contoso.com",
    "type": "user"
  }
}`

// fakeRunner builds a CLI whose az invocations are served by fn.
func fakeRunner(fn runner) *CLI {
	c := New(WithBinary("/usr/bin/az"))
	c.run = fn
	return c
}

// =============================================================================
// CurrentAccount Tests
// =============================================================================

func TestCurrentAccount_ParsesAccount(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return accountJSON, "", nil
	})

	account, err := cli.CurrentAccount(context.Background())
	if err != nil {
		t.Fatalf("CurrentAccount() error = %v", err)
	}

	if account.ID != "aaaa1111-0000-0000-0000-000000000001" {
		t.Errorf("ID = %q", account.ID)
	}
	if account.Name != "Development Subscription" {
		t.Errorf("Name = %q", account.Name)
	}
	if account.TenantID != "tttt1111-0000-0000-0000-000000000001" {
		t.Errorf("TenantID = %q", account.TenantID)
	}
	if account.User.Name != "me@contoso.com" {
		t.Errorf("User.Name = %q", account.User.Name)
	}
}

func TestCurrentAccount_NoActiveSession(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return "", "ERROR: Please run 'az login' to setup account.", fmt.Errorf("exit status 1")
	})

	_, err := cli.CurrentAccount(context.Background())
	if !errors.Is(err, errors.ErrNoActiveSession) {
		t.Errorf("CurrentAccount() error = %v, want ErrNoActiveSession", err)
	}
}

func TestCurrentAccount_CommandFailure(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return "", "ERROR: unexpected failure", fmt.Errorf("exit status 1")
	})

	_, err := cli.CurrentAccount(context.Background())
	if !errors.Is(err, errors.ErrCommandFailed) {
		t.Errorf("CurrentAccount() error = %v, want ErrCommandFailed", err)
	}
}

func TestCurrentAccount_MalformedJSON(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return "this is not json", "", nil
	})

	_, err := cli.CurrentAccount(context.Background())
	if !errors.Is(err, errors.ErrCommandFailed) {
		t.Errorf("CurrentAccount() error = %v, want ErrCommandFailed", err)
	}
}

func TestCurrentAccount_Timeout(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		<-ctx.Done()
		return "", "", ctx.Err()
	})
	cli.timeout = 10 * time.Millisecond

	_, err := cli.CurrentAccount(context.Background())
	if !errors.Is(err, errors.ErrTimeout) {
		t.Errorf("CurrentAccount() error = %v, want ErrTimeout", err)
	}
}

// =============================================================================
// SetAccount Tests
// =============================================================================

func TestSetAccount_Success(t *testing.T) {
	var gotArgs []string
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		gotArgs = args
		return "", "", nil
	})

	if err := cli.SetAccount(context.Background(), "sub-42"); err != nil {
		t.Fatalf("SetAccount() error = %v", err)
	}

	want := []string{"account", "set", "--subscription", "sub-42"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args = %v, want %v", gotArgs, want)
		}
	}
}

func TestSetAccount_Failure(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return "", "ERROR: subscription not found", fmt.Errorf("exit status 1")
	})

	err := cli.SetAccount(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCommandFailed) {
		t.Errorf("SetAccount() error = %v, want ErrCommandFailed", err)
	}

	var azErr *errors.AzureError
	if !errors.As(err, &azErr) || azErr.Stderr == "" {
		t.Errorf("SetAccount() error missing captured stderr: %v", err)
	}
}

func TestSetAccount_Timeout(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		<-ctx.Done()
		return "", "", ctx.Err()
	})
	cli.timeout = 10 * time.Millisecond

	err := cli.SetAccount(context.Background(), "sub-42")
	if !errors.Is(err, errors.ErrTimeout) {
		t.Errorf("SetAccount() error = %v, want ErrTimeout", err)
	}
}

// =============================================================================
// IsAvailable Tests
// =============================================================================

func TestIsAvailable(t *testing.T) {
	cli := fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return `{"azure-cli": "2.67.0"}`, "", nil
	})
	if !cli.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false, want true")
	}

	cli = fakeRunner(func(ctx context.Context, binary string, args ...string) (string, string, error) {
		return "", "", fmt.Errorf("exec: not found")
	})
	if cli.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true, want false")
	}
}

func TestFindBinary_MissingEverywhere(t *testing.T) {
	cli := New()
	cli.binary = ""
	// Force discovery to fail regardless of the host by clearing PATH.
	t.Setenv("PATH", t.TempDir())

	_, err := cli.findBinary()
	if !errors.Is(err, errors.ErrAzureCLINotFound) {
		t.Errorf("findBinary() error = %v, want ErrAzureCLINotFound", err)
	}
}
