package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// legacyIDNamespace derives stable user ids from legacy ObjectIDs, so importing the
// same document twice yields the same id.
var legacyIDNamespace = uuid.MustParse("6f1c2a52-4d0e-4b8e-9a57-2f3c8d1e7b40")

// LegacyUserID maps a legacy ObjectID to the UUID the account gets after import.
func LegacyUserID(oid bson.ObjectID) uuid.UUID {
	return uuid.NewSHA1(legacyIDNamespace, oid[:])
}

// LegacyUserSource reads accounts written by the previous Node.js backend, whose
// documents are keyed by ObjectID and carry bcrypt hashes.
type LegacyUserSource struct {
	coll *mongo.Collection
}

// NewLegacyUserSource reads from the users collection of db.
func NewLegacyUserSource(db *mongo.Database) *LegacyUserSource {
	return &LegacyUserSource{coll: db.Collection(usersCollection)}
}

// All returns every legacy account in creation order, password hashes included.
// Documents whose _id is not an ObjectID are skipped.
func (s *LegacyUserSource) All(ctx context.Context) ([]*domain.User, error) {
	cursor, err := s.coll.Find(
		ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$type", Value: "objectId"}}}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query legacy users")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*domain.User
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode legacy user")
		}
		user, err := legacyUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate legacy users")
	}
	return users, nil
}

// legacyUser converts a legacy document, normalizing the email the way sign-up does.
func legacyUser(doc userDocument) (*domain.User, error) {
	user, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return user, nil
}
