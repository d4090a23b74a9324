package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
)

type cartItemDocument struct {
	Product  entity.Product `bson:"product"`
	Quantity int            `bson:"quantity"`
}

type cartDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	CartItems     []cartItemDocument `bson:"cartItems"`
	PaymentOption string             `bson:"paymentOption"`
}

func toCartItemDocuments(items []entity.CartItem) []cartItemDocument {
	out := make([]cartItemDocument, 0, len(items))
	for _, it := range items {
		out = append(out, cartItemDocument{Product: it.Product, Quantity: it.Quantity})
	}
	return out
}

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func (r *CartRepository) GetByEmail(ctx context.Context, email string) (*entity.Cart, error) {
	var doc cartDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c := &entity.Cart{
		ID:            doc.ID.Hex(),
		Email:         doc.Email,
		CartItems:     make([]entity.CartItem, 0, len(doc.CartItems)),
		PaymentOption: doc.PaymentOption,
	}
	for _, it := range doc.CartItems {
		c.CartItems = append(c.CartItems, entity.CartItem{Product: it.Product, Quantity: it.Quantity})
	}
	return c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *entity.Cart) error {
	res, err := r.coll.InsertOne(ctx, cartDocument{
		Email:         c.Email,
		CartItems:     toCartItemDocuments(c.CartItems),
		PaymentOption: c.PaymentOption,
	})
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

func (r *CartRepository) Save(ctx context.Context, c *entity.Cart) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": c.Email}, bson.M{"$set": bson.M{
		"cartItems":     toCartItemDocuments(c.CartItems),
		"paymentOption": c.PaymentOption,
	}})
	return err
}

var _ repository.CartRepository = (*CartRepository)(nil)
