package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	repo "github.com/oksasatya/mycontacts-api/internal/domain/repository"
	"github.com/oksasatya/mycontacts-api/pkg/validation"
)

// ContactCache stores each owner's contact list; misses report ok=false.
type ContactCache interface {
	Get(ctx context.Context, owner string) ([]entity.Contact, bool, error)
	Set(ctx context.Context, owner string, list []entity.Contact) error
	Invalidate(ctx context.Context, owner string) error
}

// ContactIndex is a full-text mirror of the contacts table.
type ContactIndex interface {
	Index(ctx context.Context, c *entity.Contact) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, owner, q string) ([]entity.Contact, error)
}

// PhotoStore persists uploaded photos and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// ContactService implements owner-scoped contact operations.
// Cache, Index and Photos are optional.
type ContactService struct {
	Repo   repo.ContactRepository
	Cache  ContactCache
	Index  ContactIndex
	Photos PhotoStore
	Logger *logrus.Logger

	writes sync.Map // owner -> *atomic.Uint64, bumped on every invalidation
}

func NewContactService(contacts repo.ContactRepository, logger *logrus.Logger) *ContactService {
	return &ContactService{Repo: contacts, Logger: logger}
}

type CreateContactInput struct {
	FirstName string
	LastName  string
	Phone     string
}

type UpdateContactInput struct {
	FirstName string
	LastName  string
	Phone     string
}

var photoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// MaxPhotoBytes bounds a single photo upload.
const MaxPhotoBytes = 5 << 20

func (s *ContactService) List(ctx context.Context, owner string) ([]entity.Contact, error) {
	if s.Cache != nil {
		list, ok, err := s.Cache.Get(ctx, owner)
		if err != nil {
			s.warn("contact cache read failed", err, owner)
		} else if ok {
			return list, nil
		}
	}
	seq := s.writeSeq(owner).Load()
	list, err := s.Repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, owner, list); err != nil {
			s.warn("contact cache write failed", err, owner)
		}
		// a write landed between the read and Set
		if s.writeSeq(owner).Load() != seq {
			s.invalidate(ctx, owner)
		}
	}
	return list, nil
}

func (s *ContactService) Get(ctx context.Context, owner, id string) (*entity.Contact, error) {
	c, err := s.Repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, s.notFound(err, "get contact")
	}
	return c, nil
}

func (s *ContactService) Create(ctx context.Context, owner string, in CreateContactInput) (*entity.Contact, error) {
	c := &entity.Contact{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		OwnerEmail: owner,
	}
	if c.FirstName == "" || c.LastName == "" || c.Phone == "" {
		return nil, &ValidationError{Fields: missingFields(c)}
	}
	if !validation.PhoneLengthOK(c.Phone) {
		return nil, invalid("phone", phoneMessage())
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.afterWrite(ctx, owner, c)
	return c, nil
}

// Update applies the non-empty fields of in.
func (s *ContactService) Update(ctx context.Context, owner, id string, in UpdateContactInput) (*entity.Contact, error) {
	var patch entity.ContactPatch
	if v := strings.TrimSpace(in.FirstName); v != "" {
		patch.FirstName = &v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		patch.LastName = &v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		if !validation.PhoneLengthOK(v) {
			return nil, invalid("phone", phoneMessage())
		}
		patch.Phone = &v
	}
	c, err := s.Repo.Update(ctx, owner, id, patch)
	if err != nil {
		return nil, s.notFound(err, "update contact")
	}
	if !patch.Empty() {
		s.afterWrite(ctx, owner, c)
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, owner, id string) (*entity.Contact, error) {
	c, err := s.Repo.Delete(ctx, owner, id)
	if err != nil {
		return nil, s.notFound(err, "delete contact")
	}
	s.invalidate(ctx, owner)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, c.ID); err != nil {
			s.warn("contact index remove failed", err, owner)
		}
	}
	s.deletePhoto(ctx, owner, c.PhotoURL)
	return c, nil
}

// Search prefers the full-text index and falls back to the database.
func (s *ContactService) Search(ctx context.Context, owner, q string) ([]entity.Contact, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("q", "is required")
	}
	if s.Index != nil {
		list, err := s.Index.Search(ctx, owner, q)
		if err == nil {
			return list, nil
		}
		s.warn("contact index search failed, using database", err, owner)
	}
	list, err := s.Repo.Search(ctx, owner, q)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return list, nil
}

// PhotosEnabled reports whether a photo store is configured.
func (s *ContactService) PhotosEnabled() bool { return s.Photos != nil }

// UploadPhoto stores the photo and records its URL on the contact.
func (s *ContactService) UploadPhoto(ctx context.Context, owner, id, contentType string, size int64, r io.Reader) (*entity.Contact, error) {
	if s.Photos == nil {
		return nil, ErrStorageDisabled
	}
	ext, ok := photoTypes[contentType]
	if !ok {
		return nil, invalid("photo", "must be a jpeg, png or webp image")
	}
	if size <= 0 || size > MaxPhotoBytes {
		return nil, invalid("photo", "must be at most 5 MiB")
	}
	prev, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	// owner emails stay out of object names
	objectPath := path.Join("contacts", uuid.NewSHA1(uuid.NameSpaceURL, []byte(owner)).String(), id, uuid.NewString()+ext)
	url, err := s.Photos.Upload(ctx, objectPath, contentType, io.LimitReader(r, MaxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	c, err := s.Repo.Update(ctx, owner, id, entity.ContactPatch{PhotoURL: &url})
	if err != nil {
		return nil, s.notFound(err, "save photo url")
	}
	s.afterWrite(ctx, owner, c)
	s.deletePhoto(ctx, owner, prev.PhotoURL)
	return c, nil
}

func (s *ContactService) deletePhoto(ctx context.Context, owner, url string) {
	if s.Photos == nil || url == "" {
		return
	}
	if err := s.Photos.Delete(ctx, url); err != nil {
		s.warn("photo delete failed", err, owner)
	}
}

func (s *ContactService) afterWrite(ctx context.Context, owner string, c *entity.Contact) {
	s.invalidate(ctx, owner)
	if s.Index != nil {
		if err := s.Index.Index(ctx, c); err != nil {
			s.warn("contact index write failed", err, owner)
		}
	}
}

func (s *ContactService) invalidate(ctx context.Context, owner string) {
	if s.Cache == nil {
		return
	}
	s.writeSeq(owner).Add(1)
	if err := s.Cache.Invalidate(ctx, owner); err != nil {
		s.warn("contact cache invalidate failed", err, owner)
	}
}

func (s *ContactService) writeSeq(owner string) *atomic.Uint64 {
	v, _ := s.writes.LoadOrStore(owner, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

func (s *ContactService) notFound(err error, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrContactNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ContactService) warn(msg string, err error, owner string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("owner", owner).Warn(msg)
}

func missingFields(c *entity.Contact) map[string]string {
	out := map[string]string{}
	if c.FirstName == "" {
		out["firstName"] = "is required"
	}
	if c.LastName == "" {
		out["lastName"] = "is required"
	}
	if c.Phone == "" {
		out["phone"] = "is required"
	}
	return out
}

func phoneMessage() string {
	return fmt.Sprintf("must contain between %d and %d characters", validation.PhoneMinLen, validation.PhoneMaxLen)
}
