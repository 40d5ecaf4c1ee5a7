package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/repository"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service is the content store client used by the HTTP layer and the CLI.
// Every call resolves or fails once; there are no retries or caches.
type Service struct {
	content  repository.ContentRepository
	services repository.ServiceRepository
	messages repository.MessageRepository
	v        *validate.Validator

	vcardPrefix string
	now         func() time.Time
	newID       func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithVCardPrefix sets the honorific placed before the name on the vCard.
func WithVCardPrefix(p string) Option { return func(s *Service) { s.vcardPrefix = p } }

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(c repository.ContentRepository, sv repository.ServiceRepository, m repository.MessageRepository, v *validate.Validator, opts ...Option) *Service {
	s := &Service{
		content:  c,
		services: sv,
		messages: m,
		v:        v,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repositories.
func NewMemoryService(v *validate.Validator, opts ...Option) *Service {
	return New(repository.NewMemoryContentRepo(), repository.NewMemoryServiceRepo(), repository.NewMemoryMessageRepo(), v, opts...)
}

// NewMongoService returns a Service backed by collections of db.
func NewMongoService(db *mongo.Database, v *validate.Validator, opts ...Option) *Service {
	return New(repository.NewMongoContentRepo(db), repository.NewMongoServiceRepo(db), repository.NewMongoMessageRepo(db), v, opts...)
}

// Validator exposes the form validator so callers share its locale.
func (s *Service) Validator() *validate.Validator { return s.v }

// observe records the outcome of a store call and logs failures.
func (s *Service) observe(collection, op string, err error) error {
	outcome := "ok"
	var ve *validate.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		outcome = "invalid"
	case errors.Is(err, content.ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
		logger.With("collection", collection, "op", op).Errorf("store call failed: %v", err)
	}
	metrics.StoreOperations.WithLabelValues(collection, op, outcome).Inc()
	return err
}

// ---- singleton documents ----

// GetContent returns the document for key, or (nil, nil) when it was never written.
func (s *Service) GetContent(ctx context.Context, key content.Key) (*content.Document, error) {
	if _, err := content.ParseKey(string(key)); err != nil {
		return nil, err
	}
	d, err := s.content.Get(ctx, key)
	if err != nil {
		return nil, s.observe(repository.ContentCollection, "get", content.Wrap("get content", err))
	}
	s.observe(repository.ContentCollection, "get", nil)
	return d, nil
}

// UpdateContent upserts key and shallow-merges fields into it, stamping updatedAt.
func (s *Service) UpdateContent(ctx context.Context, key content.Key, fields content.Fields) error {
	if _, err := content.ParseKey(string(key)); err != nil {
		return err
	}
	if err := s.v.SafeNames(fields); err != nil {
		return s.observe(repository.ContentCollection, "update", err)
	}
	err := s.content.Merge(ctx, key, fields, s.now())
	return s.observe(repository.ContentCollection, "update", content.Wrap("update content", err))
}

// Typed returns the typed view of key; an absent document yields empty fields.
func (s *Service) Typed(ctx context.Context, key content.Key) (content.Typed, error) {
	d, err := s.GetContent(ctx, key)
	if err != nil {
		return nil, err
	}
	return content.Decode(key, d), nil
}

func (s *Service) GetHero(ctx context.Context) (content.HeroDocument, error) {
	d, err := s.GetContent(ctx, content.KeyHero)
	return content.HeroFrom(d), err
}

func (s *Service) GetAbout(ctx context.Context) (content.AboutDocument, error) {
	d, err := s.GetContent(ctx, content.KeyAbout)
	return content.AboutFrom(d), err
}

func (s *Service) GetContact(ctx context.Context) (content.ContactDocument, error) {
	d, err := s.GetContent(ctx, content.KeyContact)
	return content.ContactFrom(d), err
}

// Save validates a full editor form and merges its fields.
func (s *Service) Save(ctx context.Context, doc content.Typed) error {
	if err := s.v.Struct(doc); err != nil {
		return s.observe(repository.ContentCollection, "update", err)
	}
	return s.UpdateContent(ctx, doc.Key(), doc.Fields())
}

func (s *Service) SaveHero(ctx context.Context, d content.HeroDocument) error {
	return s.Save(ctx, d)
}

func (s *Service) SaveAbout(ctx context.Context, d content.AboutDocument) error {
	return s.Save(ctx, d)
}

func (s *Service) SaveContact(ctx context.Context, d content.ContactDocument) error {
	return s.Save(ctx, d)
}

// PatchContent merges a subset of the typed fields of key. The merged
// result must still satisfy the typed view before anything is written.
func (s *Service) PatchContent(ctx context.Context, key content.Key, fields content.Fields) error {
	if _, err := content.ParseKey(string(key)); err != nil {
		return err
	}
	if err := s.v.FieldNames(key, fields); err != nil {
		return s.observe(repository.ContentCollection, "update", err)
	}
	cur, err := s.GetContent(ctx, key)
	if err != nil {
		return err
	}
	base := content.Fields{}
	if cur != nil {
		base = cur.Fields
	}
	merged := content.Decode(key, &content.Document{Key: key, Fields: base.Merge(fields)})
	if err := s.v.Struct(merged); err != nil {
		return s.observe(repository.ContentCollection, "update", err)
	}
	return s.UpdateContent(ctx, key, fields)
}

// ---- services ----

// ListServices returns every service entry ascending by order.
func (s *Service) ListServices(ctx context.Context) ([]content.ServiceEntry, error) {
	list, err := s.services.List(ctx)
	if err != nil {
		return nil, s.observe(repository.ServiceCollection, "list", content.Wrap("list services", err))
	}
	s.observe(repository.ServiceCollection, "list", nil)
	return list, nil
}

// AddService validates in and stores it under a generated id.
func (s *Service) AddService(ctx context.Context, in content.ServiceInput) (string, error) {
	if err := s.v.Struct(in); err != nil {
		return "", s.observe(repository.ServiceCollection, "add", err)
	}
	return s.addService(ctx, in)
}

func (s *Service) addService(ctx context.Context, in content.ServiceInput) (string, error) {
	now := s.now()
	e := &content.ServiceEntry{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.services.Create(ctx, e); err != nil {
		return "", s.observe(repository.ServiceCollection, "add", content.Wrap("add service", err))
	}
	s.observe(repository.ServiceCollection, "add", nil)
	return e.ID, nil
}

// UpdateService merges the non-nil fields of patch; content.ErrNotFound when id is absent.
func (s *Service) UpdateService(ctx context.Context, id string, patch content.ServicePatch) error {
	if err := s.v.Struct(patch); err != nil {
		return s.observe(repository.ServiceCollection, "update", err)
	}
	err := s.services.Update(ctx, id, patch, s.now())
	return s.observe(repository.ServiceCollection, "update", content.Wrap("update service", err))
}

// DeleteService removes id; deleting an absent id succeeds.
func (s *Service) DeleteService(ctx context.Context, id string) error {
	err := s.services.Delete(ctx, id)
	return s.observe(repository.ServiceCollection, "delete", content.Wrap("delete service", err))
}

// ---- messages ----

// ListMessages returns the inbox newest first.
func (s *Service) ListMessages(ctx context.Context) ([]content.MessageEntry, error) {
	list, err := s.messages.List(ctx)
	if err != nil {
		return nil, s.observe(repository.MessageCollection, "list", content.Wrap("list messages", err))
	}
	s.observe(repository.MessageCollection, "list", nil)
	return list, nil
}

// AddMessage validates a contact form submission and stores it.
func (s *Service) AddMessage(ctx context.Context, in content.MessageInput) (string, error) {
	if err := s.v.Struct(in); err != nil {
		return "", s.observe(repository.MessageCollection, "add", err)
	}
	m := &content.MessageEntry{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return "", s.observe(repository.MessageCollection, "add", content.Wrap("add message", err))
	}
	s.observe(repository.MessageCollection, "add", nil)
	metrics.MessagesReceived.Inc()
	return m.ID, nil
}

// DeleteMessage removes id; deleting an absent id succeeds.
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	err := s.messages.Delete(ctx, id)
	return s.observe(repository.MessageCollection, "delete", content.Wrap("delete message", err))
}
