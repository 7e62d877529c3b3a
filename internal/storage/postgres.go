package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"contactbook/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// PostgresContactStore persists contacts in PostgreSQL. The duplicate-name
// check in the validator is only a fast path; the contacts_name_key unique
// index is the authoritative guard, and constraint violations surface as
// ErrDuplicateName.
type PostgresContactStore struct {
	db *sql.DB
}

// OpenPostgres opens a database/sql pool on the pgx driver and verifies
// connectivity.
func OpenPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewPostgresContactStore(db *sql.DB) *PostgresContactStore {
	return &PostgresContactStore{db: db}
}

// EnsureSchema creates the contacts table and its unique name index if they
// do not exist yet.
func (s *PostgresContactStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure contacts schema: %w", err)
	}
	return nil
}

func (s *PostgresContactStore) ListAll(ctx context.Context) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM contacts
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *PostgresContactStore) FindByID(ctx context.Context, id uuid.UUID) (domain.Contact, error) {
	return s.findOne(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM contacts WHERE id = $1
	`, id)
}

func (s *PostgresContactStore) FindByName(ctx context.Context, name string) (domain.Contact, error) {
	return s.findOne(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM contacts WHERE name = $1
	`, name)
}

func (s *PostgresContactStore) findOne(ctx context.Context, query string, arg any) (domain.Contact, error) {
	var c domain.Contact
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Contact{}, ErrNotFound
	}
	if err != nil {
		return domain.Contact{}, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

func (s *PostgresContactStore) Insert(ctx context.Context, fields domain.ContactFields) (domain.Contact, error) {
	now := time.Now()
	c := domain.Contact{
		ID:        uuid.New(),
		Name:      fields.Name,
		Phone:     fields.Phone,
		Email:     fields.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Contact{}, ErrDuplicateName
		}
		return domain.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

func (s *PostgresContactStore) Update(ctx context.Context, id uuid.UUID, fields domain.ContactFields) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts
		SET name = $2, phone = $3, email = $4, updated_at = $5
		WHERE id = $1
	`, id, fields.Name, fields.Phone, fields.Email, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresContactStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
