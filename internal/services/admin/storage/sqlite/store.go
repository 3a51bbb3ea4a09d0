package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/platform/id"
	"github.com/promptops/console/internal/platform/storage/sqlitemigrate"
	"github.com/promptops/console/internal/services/admin/storage"
	"github.com/promptops/console/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing admin storage interfaces.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return nil
}

// ListUsers returns every user in creation order.
func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, username, email, role, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []storage.User
	for rows.Next() {
		var (
			user      storage.User
			role      string
			createdAt string
		)
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &role, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Role = storage.Role(role)
		if user.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("user %s created_at: %w", user.ID, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// PutUser validates and inserts a user. A missing ID or CreatedAt is filled in.
func (s *Store) PutUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		newID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("generate user id: %w", err)
		}
		user.ID = newID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, username, email, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, string(user.Role), user.CreatedAt.UTC().Format(timeFormat),
	)
	if isUniqueViolation(err) {
		return apperrors.WithMetadata(apperrors.CodeUserExists, "user already exists", map[string]string{"Username": user.Username})
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ListPrompts returns every prompt in creation order.
func (s *Store) ListPrompts(ctx context.Context) ([]storage.Prompt, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, latest_version, latest_commit, owner, created_at, updated_at FROM prompts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	defer rows.Close()

	var prompts []storage.Prompt
	for rows.Next() {
		var (
			prompt               storage.Prompt
			createdAt, updatedAt string
		)
		if err := rows.Scan(&prompt.ID, &prompt.Name, &prompt.LatestVersion, &prompt.LatestCommit, &prompt.Owner, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		if prompt.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("prompt %s created_at: %w", prompt.ID, err)
		}
		if prompt.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("prompt %s updated_at: %w", prompt.ID, err)
		}
		prompts = append(prompts, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}
	return prompts, nil
}

// PutPrompt validates and inserts a prompt. A missing ID or timestamp is
// filled in; UpdatedAt defaults to CreatedAt.
func (s *Store) PutPrompt(ctx context.Context, prompt storage.Prompt) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := prompt.Validate(); err != nil {
		return err
	}
	if prompt.ID == "" {
		newID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("generate prompt id: %w", err)
		}
		prompt.ID = newID
	}
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = s.now().UTC()
	}
	if prompt.UpdatedAt.IsZero() {
		prompt.UpdatedAt = prompt.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO prompts (id, name, latest_version, latest_commit, owner, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID, prompt.Name, prompt.LatestVersion, prompt.LatestCommit, prompt.Owner,
		prompt.CreatedAt.UTC().Format(timeFormat), prompt.UpdatedAt.UTC().Format(timeFormat),
	)
	if isUniqueViolation(err) {
		return apperrors.WithMetadata(apperrors.CodePromptExists, "prompt already exists", map[string]string{"Name": prompt.Name})
	}
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(timeFormat, value)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
