package contactRepo

import (
	"context"
	"fmt"
	"time"

	"baturite/database"
	"baturite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContactRepo implements ContactRepository using MongoDB.
type MongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo creates a new instance of ContactRepository using MongoDB.
func NewMongoContactRepo() ContactRepository {
	coll := database.MongoClient.Database("baturite").Collection("contacts")
	repo := &MongoContactRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoContactRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll returns every contact, sorted by name.
func (r *MongoContactRepo) GetAll() ([]models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}
	return contacts, nil
}

// GetByCategory returns the contacts belonging to one category.
func (r *MongoContactRepo) GetByCategory(category string) ([]models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts for category %s: %w", category, err)
	}
	defer cursor.Close(ctx)

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}
	return contacts, nil
}

// GetByID fetches a single contact by its ID.
func (r *MongoContactRepo) GetByID(id string) (*models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var contact models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&contact); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("contact with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch contact with id %s: %w", id, err)
	}
	return &contact, nil
}

// Upsert inserts or replaces a contact document.
func (r *MongoContactRepo) Upsert(contact *models.Contact) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	filter := bson.M{"id": contact.ID}
	update := bson.M{"$set": contact}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert contact with id %s: %w", contact.ID, err)
	}
	return nil
}
