package mongostore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentacar/internal/models"
	"rentacar/internal/store"
)

type UserStore struct {
	users    *mongo.Collection
	logins   *mongo.Collection
	counters *mongo.Collection
}

func NewUserStore(ctx context.Context, db *mongo.Database) (*UserStore, error) {
	s := &UserStore{
		users:    db.Collection("users"),
		logins:   db.Collection("login_events"),
		counters: db.Collection("counters"),
	}

	// username and email uniqueness is enforced at the collection level,
	// so concurrent registrations cannot both land.
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, fmt.Errorf("create user indexes: %w", err)
	}
	return s, nil
}

// nextID hands out sequential user ids from a counters document, so the
// token payload carries the same numeric id regardless of backend.
func (s *UserStore) nextID(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "users"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return doc.Seq, nil
}

func (s *UserStore) Register(ctx context.Context, user *models.User) error {
	usernameTaken, err := s.exists(ctx, bson.M{"username": user.Username})
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	emailTaken, err := s.exists(ctx, bson.M{"email": user.Email})
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if usernameTaken {
		return store.ErrDuplicateUsername
	}
	if emailTaken {
		return store.ErrDuplicateEmail
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedDate = time.Now().UTC()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		// a concurrent registration can still win the race past the
		// pre-checks; the unique index reports which field collided
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "username") {
				return store.ErrDuplicateUsername
			}
			return store.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := s.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username, "email": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	u := &models.User{}
	err := s.users.FindOne(ctx, filter).Decode(u)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) RecordLogin(ctx context.Context, username, email string) error {
	_, err := s.logins.ReplaceOne(ctx,
		bson.M{"username": username, "email": email},
		models.LoginEvent{Username: username, Email: email, LoginDate: time.Now().UTC()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}
