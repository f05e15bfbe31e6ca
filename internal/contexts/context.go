// Package contexts defines the saved context record and its file-backed
// store. A context is a user-named reference to one Azure CLI account
// (subscription, tenant, and signed-in user), persisted as YAML in the
// azctx storage directory.
package contexts

import (
	"regexp"
	"time"

	"github.com/Iron-Ham/azctx/internal/errors"
)

// Context id format: 1-20 characters, alphanumeric plus hyphen/underscore.
const (
	ContextIDMaxLen   = 20
	ContextNameMaxLen = 100
)

var contextIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

// Context represents one saved reference to an Azure CLI account.
// Records are immutable once created; the only lifecycle transition
// is deletion from the store.
type Context struct {
	ContextID        string    `yaml:"context_id"`
	ContextName      string    `yaml:"context_name"`
	SubscriptionID   string    `yaml:"subscription_id"`
	SubscriptionName string    `yaml:"subscription_name"`
	TenantID         string    `yaml:"tenant_id"`
	TenantName       string    `yaml:"tenant_name"`
	Username         string    `yaml:"username"`
	CreatedAt        time.Time `yaml:"created_at"`
}

// New creates a Context with CreatedAt set to the current time.
// It does not validate its arguments; callers validate id and name
// with ValidateContextID and ValidateContextName first.
func New(id, name, subscriptionID, subscriptionName, tenantID, tenantName, username string) Context {
	return Context{
		ContextID:        id,
		ContextName:      name,
		SubscriptionID:   subscriptionID,
		SubscriptionName: subscriptionName,
		TenantID:         tenantID,
		TenantName:       tenantName,
		Username:         username,
		CreatedAt:        time.Now(),
	}
}

// ValidateContextID checks that id is 1-20 characters containing only
// alphanumerics, hyphens, and underscores. Comparison elsewhere is always
// case-sensitive: "DEV" and "dev" are distinct ids.
func ValidateContextID(id string) error {
	if id == "" {
		return errors.NewValidationError("context id cannot be empty").WithField("context_id")
	}
	if len(id) > ContextIDMaxLen {
		return errors.NewValidationError("context id must be at most 20 characters").
			WithField("context_id").WithValue(id)
	}
	if !contextIDPattern.MatchString(id) {
		return errors.NewValidationError("context id may only contain letters, digits, hyphens, and underscores").
			WithField("context_id").WithValue(id)
	}
	return nil
}

// ValidateContextName checks that name is 1-100 characters. Any characters
// are allowed; the name is display-only.
func ValidateContextName(name string) error {
	if name == "" {
		return errors.NewValidationError("context name cannot be empty").WithField("context_name")
	}
	if len(name) > ContextNameMaxLen {
		return errors.NewValidationError("context name must be at most 100 characters").
			WithField("context_name")
	}
	return nil
}

// valid reports whether a loaded record carries the fields every well-formed
// entry must have. Used by the store to skip malformed file entries.
func (c Context) valid() bool {
	return c.ContextID != "" && c.ContextName != "" && c.SubscriptionID != "" && !c.CreatedAt.IsZero()
}
