package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

const collectionWishlistItems = "wishlist_items"

// WishlistRepository is the MongoDB-backed wishlist store.
type WishlistRepository struct {
	col *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{col: db.Collection(collectionWishlistItems)}
}

type mongoWishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID string             `bson:"product_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mi *mongoWishlistItem) toDomain() *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:        mi.ID.Hex(),
		UserID:    mi.UserID,
		ProductID: mi.ProductID,
		CreatedAt: mi.CreatedAt,
	}
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.WishlistItem
	for cur.Next(ctx) {
		var mi mongoWishlistItem
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode wishlist item: %w", err)
		}
		items = append(items, mi.toDomain())
	}
	return items, cur.Err()
}

func (r *WishlistRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoWishlistItem
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID, "product_id": productID}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWishlistItemNotFound
		}
		return nil, fmt.Errorf("find wishlist item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *WishlistRepository) Insert(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoWishlistItem{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		CreatedAt: item.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrWishlistDuplicate
		}
		return nil, fmt.Errorf("insert wishlist item: %w", err)
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrWishlistItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWishlistItemNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the wishlist_items collection.
func (r *WishlistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
