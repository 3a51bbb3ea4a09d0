package storage

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/promptops/console/internal/platform/errors"
)

// Role is a console access level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

// ParseRole returns the role named by value.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Roles() {
		if role == known {
			return role, true
		}
	}
	return "", false
}

// User is a person with console access.
type User struct {
	ID        string
	Username  string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Validate checks the user fields a caller supplies.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return apperrors.New(apperrors.CodeUserNameEmpty, "username is required")
	}
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return apperrors.WithMetadata(apperrors.CodeUserEmailInvalid, "email is invalid", map[string]string{"Email": u.Email})
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return apperrors.WithMetadata(apperrors.CodeUserRoleInvalid, "role is invalid", map[string]string{"Role": string(u.Role)})
	}
	return nil
}

var versionPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// ValidVersion reports whether version looks like vMAJOR.MINOR.PATCH.
func ValidVersion(version string) bool {
	return versionPattern.MatchString(version)
}

// Prompt is a versioned prompt template.
type Prompt struct {
	ID            string
	Name          string
	LatestVersion string
	LatestCommit  string
	Owner         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the prompt fields a caller supplies.
func (p Prompt) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.New(apperrors.CodePromptNameEmpty, "prompt name is required")
	}
	if !ValidVersion(p.LatestVersion) {
		return apperrors.WithMetadata(apperrors.CodePromptVersionInvalid, "prompt version is invalid", map[string]string{"Version": p.LatestVersion})
	}
	return nil
}

// UserStore persists console users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]User, error)
	PutUser(ctx context.Context, user User) error
}

// PromptStore persists prompts.
type PromptStore interface {
	ListPrompts(ctx context.Context) ([]Prompt, error)
	PutPrompt(ctx context.Context, prompt Prompt) error
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	UserStore
	PromptStore
	Close() error
}
