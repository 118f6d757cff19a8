package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	"github.com/oksasatya/mycontacts-api/internal/domain/repository"
)

const contactColumns = `id, first_name, last_name, phone, owner_email, photo_url, created_at, updated_at`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	c := &entity.Contact{}
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.OwnerEmail, &c.PhotoURL,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func collectContacts(rows pgx.Rows) ([]entity.Contact, error) {
	defer rows.Close()
	out := make([]entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// validID rejects ids that could never match, so callers see ErrNotFound instead of a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (id, first_name, last_name, phone, owner_email, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, c.ID, c.FirstName, c.LastName, c.Phone, c.OwnerEmail, c.PhotoURL)

	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ContactRepository) ListByOwner(ctx context.Context, owner string) ([]entity.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE owner_email = $1
		ORDER BY created_at DESC, id
	`, owner)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

func (r *ContactRepository) GetByID(ctx context.Context, owner, id string) (*entity.Contact, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanContact(r.pool.QueryRow(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND owner_email = $2
	`, id, owner))
}

func (r *ContactRepository) Update(ctx context.Context, owner, id string, patch entity.ContactPatch) (*entity.Contact, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	if patch.Empty() {
		return r.GetByID(ctx, owner, id)
	}
	return scanContact(r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET first_name = COALESCE($3, first_name),
		    last_name  = COALESCE($4, last_name),
		    phone      = COALESCE($5, phone),
		    photo_url  = COALESCE($6, photo_url),
		    updated_at = now()
		WHERE id = $1 AND owner_email = $2
		RETURNING `+contactColumns,
		id, owner, patch.FirstName, patch.LastName, patch.Phone, patch.PhotoURL))
}

func (r *ContactRepository) Delete(ctx context.Context, owner, id string) (*entity.Contact, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanContact(r.pool.QueryRow(ctx, `
		DELETE FROM contacts
		WHERE id = $1 AND owner_email = $2
		RETURNING `+contactColumns,
		id, owner))
}

// Search matches query case-insensitively against names and phone.
func (r *ContactRepository) Search(ctx context.Context, owner, query string) ([]entity.Contact, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE owner_email = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone ILIKE $2
		       OR (first_name || ' ' || last_name) ILIKE $2)
		ORDER BY last_name, first_name, id
	`, owner, pattern)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
