package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const accountsCollection = "users"

var _ domain.AccountRepository = (*MongoAccountRepository)(nil)

// MongoAccountRepository implements domain.AccountRepository on a MongoDB collection
type MongoAccountRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

type mongoOTP struct {
	Code    int       `bson:"code"`
	Expired time.Time `bson:"expired"`
}

type mongoAccount struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Token     string             `bson:"token,omitempty"`
	OTP       *mongoOTP          `bson:"otp,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// NewMongoAccountRepository creates a new MongoDB account repository
func NewMongoAccountRepository(db *mongo.Database, timeout time.Duration) *MongoAccountRepository {
	return &MongoAccountRepository{
		collection: db.Collection(accountsCollection),
		timeout:    timeout,
	}
}

// EnsureIndexes creates the unique email index
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return upstream(err)
	}
	return nil
}

// Create implements domain.AccountRepository
func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	doc := toMongoAccount(account)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return upstream(err)
	}

	account.ID = doc.ID.Hex()
	account.CreatedAt = now
	account.UpdatedAt = now
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID implements domain.AccountRepository
func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoAccount
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, upstream(err)
	}
	return doc.toDomain(), nil
}

// Save implements domain.AccountRepository. The whole document is replaced so cleared
// token and otp fields disappear.
func (r *MongoAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toMongoAccount(account)
	doc.ID = oid
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return upstream(err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	account.UpdatedAt = doc.UpdatedAt
	return nil
}

// List implements domain.AccountRepository
func (r *MongoAccountRepository) List(ctx context.Context, emailQuery string) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if emailQuery != "" {
		filter["email"] = primitive.Regex{Pattern: regexp.QuoteMeta(emailQuery), Options: "i"}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, upstream(err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAccount
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, upstream(err)
	}

	accounts := make([]*domain.Account, 0, len(docs))
	for i := range docs {
		accounts = append(accounts, docs[i].toDomain())
	}
	return accounts, nil
}

// Delete implements domain.AccountRepository
func (r *MongoAccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return upstream(err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toMongoAccount(account *domain.Account) *mongoAccount {
	doc := &mongoAccount{
		Email:     account.Email,
		Password:  account.PasswordHash,
		Token:     account.ActiveToken,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if account.OTP != nil {
		doc.OTP = &mongoOTP{Code: account.OTP.Code, Expired: account.OTP.ExpiresAt}
	}
	return doc
}

func (d *mongoAccount) toDomain() *domain.Account {
	account := &domain.Account{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		ActiveToken:  d.Token,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.OTP != nil {
		account.OTP = &domain.OTPChallenge{Code: d.OTP.Code, ExpiresAt: d.OTP.Expired}
	}
	return account
}
