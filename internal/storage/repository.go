// Package storage persists movements and users in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edu-delahoz/finanzas/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout keeps a fixed-width fraction so stored UTC timestamps
// compare lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMovementNotFound = errors.New("movement not found")
)

// ListFilter bounds a movements page query. Search matches the concept
// case-insensitively; Type additionally matches the movement type when
// the caller derived one from the search term.
type ListFilter struct {
	Search string
	Type   core.MovementType
	Limit  int
	Offset int
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateMovement(ctx context.Context, m core.Movement) (core.Movement, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movements (id, type, amount_cents, concept, date, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, string(m.Type), m.AmountCents, m.Concept,
		m.Date.UTC().Format(timeLayout), m.CreatedAt.UTC().Format(timeLayout), m.User.ID)
	if err != nil {
		return core.Movement{}, fmt.Errorf("insert movement: %w", err)
	}
	return r.GetMovement(ctx, m.ID)
}

func (r *SQLiteRepository) GetMovement(ctx context.Context, id string) (core.Movement, error) {
	row := r.db.QueryRowContext(ctx, selectMovement+` WHERE m.id = ?`, id)
	m, err := scanMovement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Movement{}, ErrMovementNotFound
	}
	if err != nil {
		return core.Movement{}, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) CountMovements(ctx context.Context, f ListFilter) (int64, error) {
	where, args := movementFilter(f)

	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movements m`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

func (r *SQLiteRepository) ListMovements(ctx context.Context, f ListFilter) ([]core.Movement, error) {
	where, args := movementFilter(f)
	query := selectMovement + where + ` ORDER BY m.date DESC, m.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// MovementsInRange returns every movement dated inside the inclusive
// range, ordered ascending, for the summary and CSV endpoints.
func (r *SQLiteRepository) MovementsInRange(ctx context.Context, from, to time.Time) ([]core.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		selectMovement+` WHERE m.date >= ? AND m.date <= ? ORDER BY m.date ASC, m.created_at ASC`,
		from.UTC().Format(timeLayout), to.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("list movements in range: %w", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Phone, string(u.Role), u.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return r.GetUser(ctx, u.ID)
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, role, created_at FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, role, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, id string, patch core.UserPatch) (core.User, error) {
	var (
		sets []string
		args []any
	)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*patch.Name))
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*patch.Role))
	}
	if patch.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, strings.TrimSpace(*patch.Phone))
	}
	if len(sets) == 0 {
		return core.User{}, core.ErrEmptyPatch
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return core.User{}, fmt.Errorf("update user: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return core.User{}, ErrUserNotFound
	}

	return r.GetUser(ctx, id)
}

const selectMovement = `SELECT m.id, m.type, m.amount_cents, m.concept, m.date, m.created_at,
	u.id, u.name, u.email
	FROM movements m JOIN users u ON u.id = m.user_id`

func movementFilter(f ListFilter) (string, []any) {
	if f.Search == "" {
		return "", nil
	}
	cond := `m.concept LIKE '%' || ? || '%' ESCAPE '\' COLLATE NOCASE`
	args := []any{escapeLike(f.Search)}
	if f.Type != "" {
		cond += ` OR m.type = ?`
		args = append(args, string(f.Type))
	}
	return ` WHERE (` + cond + `)`, args
}

// escapeLike makes the search term match literally inside a LIKE
// pattern, so "100%" does not act as a prefix wildcard.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovement(s scanner) (core.Movement, error) {
	var (
		m                core.Movement
		typ              string
		dateRaw, created string
	)
	if err := s.Scan(&m.ID, &typ, &m.AmountCents, &m.Concept, &dateRaw, &created,
		&m.User.ID, &m.User.Name, &m.User.Email); err != nil {
		return core.Movement{}, err
	}
	m.Type = core.MovementType(typ)

	var err error
	if m.Date, err = time.Parse(timeLayout, dateRaw); err != nil {
		return core.Movement{}, fmt.Errorf("parse movement date: %w", err)
	}
	if m.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return core.Movement{}, fmt.Errorf("parse movement created_at: %w", err)
	}
	return m, nil
}

func collectMovements(rows *sql.Rows) ([]core.Movement, error) {
	var movements []core.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func scanUser(s scanner) (core.User, error) {
	var (
		u       core.User
		role    string
		created string
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &created); err != nil {
		return core.User{}, err
	}
	u.Role = core.Role(role)

	var err error
	if u.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return core.User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	return u, nil
}
