package admins

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/models"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds admin accounts.
const Collection = "admins"

var ErrEmailTaken = errors.New("email already registered")

// AdminRepository defines persistence operations for admins
type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
}

// MongoAdminRepository implements AdminRepository using MongoDB
type MongoAdminRepository struct {
	col *mongo.Collection
}

// NewMongoAdminRepository creates a repository over db.admins with a unique email index.
func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	col := db.Collection(Collection)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warnf("admins: ensure email index: %v", err)
	}
	return &MongoAdminRepository{col: col}
}

func (r *MongoAdminRepository) Create(ctx context.Context, a *models.Admin) error {
	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *MongoAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoAdminRepository) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var a models.Admin
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// MemoryAdminRepository keeps admins in a map keyed by id.
type MemoryAdminRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Admin
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{byID: make(map[string]models.Admin)}
}

func (m *MemoryAdminRepository) Create(_ context.Context, a *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, a.Email) {
			return ErrEmailTaken
		}
	}
	m.byID[a.ID] = *a
	return nil
}

func (m *MemoryAdminRepository) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.byID {
		if a.Email == email {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryAdminRepository) GetByID(_ context.Context, id string) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}
