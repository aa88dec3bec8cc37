package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sabtech/whatsgate-backend/internal/models"
)

// Collection names match the original demo database.
const (
	colUsers     = "user"
	colInstances = "instance"
	colMessages  = "message"
	colWebhooks  = "webhook"
)

// Mongo implements all store interfaces on a MongoDB database handle.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// EnsureIndexes configures the unique indexes backing the public-identifier
// invariants. Called on startup after Mongo has connected.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		colInstances: {
			Keys:    bson.D{{Key: "instance_id", Value: 1}},
			Options: options.Index().SetName("idx_instance_id").SetUnique(true),
		},
		colMessages: {
			Keys:    bson.D{{Key: "message_id", Value: 1}},
			Options: options.Index().SetName("idx_message_id").SetUnique(true),
		},
		colWebhooks: {
			Keys:    bson.D{{Key: "instance_id", Value: 1}},
			Options: options.Index().SetName("idx_webhook_instance"),
		},
	}

	for col, model := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}

// CollectionNames returns the collections this store uses, for the diagnostic
// and schema endpoints.
func (s *Mongo) CollectionNames() []string {
	return []string{colUsers, colInstances, colMessages, colWebhooks}
}

func identifierFilter(email, phone string) bson.M {
	if email != "" {
		return bson.M{"email": email}
	}
	return bson.M{"phone": phone}
}

// --- UserStore ---

func (s *Mongo) UpsertOTP(ctx context.Context, email, phone, code string, expiresAt time.Time) error {
	now := time.Now().UTC()
	set := identifierFilter(email, phone)
	set["otp_code"] = code
	set["otp_expires_at"] = expiresAt
	set["updated_at"] = now

	_, err := s.db.Collection(colUsers).UpdateOne(ctx,
		identifierFilter(email, phone),
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": now, "access_tokens": bson.A{}},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Mongo) FindByIdentifier(ctx context.Context, email, phone string) (*models.User, error) {
	return s.findUser(ctx, identifierFilter(email, phone))
}

func (s *Mongo) FindByAccessToken(ctx context.Context, token string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"access_tokens": token})
}

func (s *Mongo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.db.Collection(colUsers).FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Mongo) ConsumeOTP(ctx context.Context, userID primitive.ObjectID, accessToken string) error {
	_, err := s.db.Collection(colUsers).UpdateByID(ctx, userID, bson.M{
		"$unset": bson.M{"otp_code": "", "otp_expires_at": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
		"$push":  bson.M{"access_tokens": accessToken},
	})
	return err
}

// --- InstanceStore ---

func (s *Mongo) InsertInstance(ctx context.Context, inst *models.Instance) error {
	if inst.CreatedAt.IsZero() {
		inst.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Collection(colInstances).InsertOne(ctx, inst)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		inst.ID = id
	}
	return nil
}

func (s *Mongo) FindByInstanceID(ctx context.Context, instanceID string) (*models.Instance, error) {
	return s.findInstance(ctx, bson.M{"instance_id": instanceID})
}

func (s *Mongo) FindOwned(ctx context.Context, instanceID, userID string) (*models.Instance, error) {
	return s.findInstance(ctx, bson.M{"instance_id": instanceID, "user_id": userID})
}

func (s *Mongo) findInstance(ctx context.Context, filter bson.M) (*models.Instance, error) {
	var inst models.Instance
	err := s.db.Collection(colInstances).FindOne(ctx, filter).Decode(&inst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (s *Mongo) ListByUser(ctx context.Context, userID string) ([]models.Instance, error) {
	cur, err := s.db.Collection(colInstances).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var instances []models.Instance
	if err := cur.All(ctx, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}

func (s *Mongo) MarkAuthenticated(ctx context.Context, instanceID string) error {
	_, err := s.db.Collection(colInstances).UpdateOne(ctx,
		bson.M{"instance_id": instanceID},
		bson.M{"$set": bson.M{"is_authenticated": true}},
	)
	return err
}

// --- MessageStore ---

func (s *Mongo) InsertMessage(ctx context.Context, msg *models.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Collection(colMessages).InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	return nil
}

func (s *Mongo) FindByMessageID(ctx context.Context, messageID string) (*models.Message, error) {
	var msg models.Message
	err := s.db.Collection(colMessages).FindOne(ctx, bson.M{"message_id": messageID}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// --- WebhookStore ---

func (s *Mongo) InsertWebhook(ctx context.Context, hook *models.Webhook) error {
	if hook.CreatedAt.IsZero() {
		hook.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Collection(colWebhooks).InsertOne(ctx, hook)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		hook.ID = id
	}
	return nil
}

func (s *Mongo) FindSubscribed(ctx context.Context, instanceID, event string) ([]models.Webhook, error) {
	cur, err := s.db.Collection(colWebhooks).Find(ctx, bson.M{
		"instance_id": instanceID,
		"events":      bson.M{"$in": bson.A{event}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var hooks []models.Webhook
	if err := cur.All(ctx, &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}
