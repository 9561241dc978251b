package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

const usersCollection = "users"

// userDocument keeps the field names of the users collection written by the previous
// Node.js backend, so both backends can share it. Documents created here are keyed by a
// UUID string. Legacy documents keep their ObjectID _id; the id they are known by here
// is LegacyUserID of it, recorded in userId the first time the account logs in.
type userDocument struct {
	ID            any             `bson:"_id"`
	UserID        string          `bson:"userId,omitempty"`
	Name          string          `bson:"name"`
	Email         string          `bson:"email"`
	Phone         string          `bson:"phone"`
	Address       string          `bson:"address"`
	AadhaarNumber string          `bson:"aadhaarNumber"`
	Village       string          `bson:"village"`
	Password      string          `bson:"password,omitempty"`
	Role          string          `bson:"role"`
	FarmData      domain.FarmData `bson:"farmData"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

func toUserDocument(user *domain.User) userDocument {
	return userDocument{
		ID:            user.ID.String(),
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Address:       user.Address,
		AadhaarNumber: user.NationalID,
		Village:       user.Village,
		Password:      user.PasswordHash,
		Role:          string(user.Role),
		FarmData:      user.FarmData,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// legacyObjectID reports the ObjectID of a document written by the previous backend.
func (d userDocument) legacyObjectID() (bson.ObjectID, bool) {
	oid, ok := d.ID.(bson.ObjectID)
	return oid, ok
}

func (d userDocument) userID() (uuid.UUID, error) {
	if d.UserID != "" {
		return uuid.Parse(d.UserID)
	}
	switch id := d.ID.(type) {
	case string:
		return uuid.Parse(id)
	case bson.ObjectID:
		return LegacyUserID(id), nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported _id type %T", d.ID)
	}
}

func (d userDocument) toDomain() (*domain.User, error) {
	id, err := d.userID()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleUser
	}
	createdAt := d.CreatedAt
	if oid, ok := d.legacyObjectID(); ok && createdAt.IsZero() {
		createdAt = oid.Timestamp()
	}
	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return &domain.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		NationalID:   d.AadhaarNumber,
		Village:      d.Village,
		PasswordHash: d.Password,
		Role:         role,
		FarmData:     d.FarmData,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}, nil
}

// byUserID matches a document by its UUID _id or, for legacy documents, by userId.
func byUserID(id uuid.UUID) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "userId", Value: id.String()}},
	}}}
}

// MongoDBUserRepository handles user persistence for MongoDB. The farm profile is
// embedded in the user document.
type MongoDBUserRepository struct {
	coll *mongo.Collection
}

// NewMongoDBUserRepository creates a new MongoDBUserRepository on the users collection.
func NewMongoDBUserRepository(db *mongo.Database) *MongoDBUserRepository {
	return &MongoDBUserRepository{
		coll: db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique indexes on email and Aadhaar number under the
// default names the previous backend already used, so an existing collection is left as
// is. userId is sparse since only adopted legacy documents carry it.
func (r *MongoDBUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "aadhaarNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to create user indexes")
	}
	return nil
}

// Create inserts a new user document
func (r *MongoDBUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateError(mongoDuplicateKey(err))
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID without the password hash
func (r *MongoDBUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}})
	doc, err := r.findOne(ctx, byUserID(id), "failed to get user by id", opts)
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

// GetCredentialsByEmail retrieves a user by email including the password hash. A legacy
// document found here is tagged with its derived user id so later lookups by id find it.
func (r *MongoDBUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := r.findOne(ctx, bson.D{{Key: "email", Value: email}}, "failed to get user by email")
	if err != nil {
		return nil, err
	}

	user, err := doc.toDomain()
	if err != nil {
		return nil, err
	}

	if oid, ok := doc.legacyObjectID(); ok && doc.UserID == "" {
		_, err := r.coll.UpdateOne(
			ctx,
			bson.D{{Key: "_id", Value: oid}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "userId", Value: user.ID.String()}}}},
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to adopt legacy user")
		}
	}
	return user, nil
}

func (r *MongoDBUserRepository) findOne(
	ctx context.Context,
	filter bson.D,
	msg string,
	opts ...options.Lister[options.FindOneOptions],
) (*userDocument, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, msg)
	}
	return &doc, nil
}

// UpdatePasswordHash replaces the stored password hash
func (r *MongoDBUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.set(ctx, id, bson.D{{Key: "password", Value: hash}}, "failed to update password hash")
}

// UpdateFarmData replaces the embedded farm profile
func (r *MongoDBUserRepository) UpdateFarmData(ctx context.Context, id uuid.UUID, farmData domain.FarmData) error {
	return r.set(ctx, id, bson.D{{Key: "farmData", Value: farmData}}, "failed to update farm data")
}

func (r *MongoDBUserRepository) set(ctx context.Context, id uuid.UUID, fields bson.D, msg string) error {
	fields = append(fields, bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	result, err := r.coll.UpdateOne(ctx, byUserID(id), bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return apperrors.Wrap(err, msg)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// mongoDuplicateKey classifies an E11000 error by the index it names ("aadhaarNumber_1"
// or "email_1").
func mongoDuplicateKey(err error) string {
	if strings.Contains(err.Error(), "aadhaarNumber") {
		return nationalIDUniqueKey
	}
	return emailUniqueKey
}
