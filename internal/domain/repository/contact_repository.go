package repository

import (
	"context"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
)

// ContactRepository persists contacts. Every method is scoped by owner email;
// a contact owned by someone else is reported as ErrNotFound.
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	ListByOwner(ctx context.Context, owner string) ([]entity.Contact, error)
	GetByID(ctx context.Context, owner, id string) (*entity.Contact, error)
	Update(ctx context.Context, owner, id string, patch entity.ContactPatch) (*entity.Contact, error)
	Delete(ctx context.Context, owner, id string) (*entity.Contact, error)
	Search(ctx context.Context, owner, query string) ([]entity.Contact, error)
}
