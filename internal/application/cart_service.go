package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-qkart-backend/internal/domain/repository"
	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
)

var (
	ErrNoCart           = apperror.NotFound("User does not have a cart")
	ErrProductNotInDB   = apperror.BadRequest("Product doesn't exist in database")
	ErrProductInCart    = apperror.BadRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
	ErrProductNotInCart = apperror.BadRequest("Product not in cart")
	ErrCartNotCreated   = apperror.Internal("Cart could not be created.")
	ErrInvalidQuantity  = apperror.BadRequest("Quantity must be a positive integer")
	errNoCartForUpdate  = apperror.BadRequest("User does not have a cart. Use POST to create cart and add a product")
	errNoCartForRemoval = apperror.BadRequest("User does not have a cart")
)

type CartService struct {
	Carts         repo.CartRepository
	Products      repo.ProductRepository
	PaymentOption string
	Logger        *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, paymentOption string, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, PaymentOption: paymentOption, Logger: logger}
}

func (s *CartService) GetCartByUser(ctx context.Context, u *entity.User) (*entity.Cart, error) {
	c, err := s.Carts.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if c == nil {
		return nil, ErrNoCart
	}
	return c, nil
}

// AddProductToCart creates the cart on first use. The product is snapshotted into the line item.
func (s *CartService) AddProductToCart(ctx context.Context, u *entity.User, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.Carts.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	item := entity.CartItem{Product: *p, Quantity: quantity}

	if c == nil {
		c = entity.NewCart(u.Email, s.PaymentOption, item)
		if err := s.Carts.Create(ctx, c); err != nil {
			s.logErr("cart create failed", err, u)
			return nil, ErrCartNotCreated
		}
		cartOps.Add("created", 1)
		return c, nil
	}

	if c.HasProduct(productID) {
		return nil, ErrProductInCart
	}
	c.AddItem(item)
	if err := s.Carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	cartOps.Add("added", 1)
	return c, nil
}

// UpdateProductInCart overwrites the quantity of an existing line item.
func (s *CartService) UpdateProductInCart(ctx context.Context, u *entity.User, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	c, err := s.Carts.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if c == nil {
		return nil, errNoCartForUpdate
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}
	if !c.SetQuantity(productID, quantity) {
		return nil, ErrProductNotInCart
	}
	if err := s.Carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	cartOps.Add("updated", 1)
	return c, nil
}

func (s *CartService) DeleteProductFromCart(ctx context.Context, u *entity.User, productID string) error {
	c, err := s.Carts.GetByEmail(ctx, u.Email)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if c == nil {
		return errNoCartForRemoval
	}
	if !c.RemoveItem(productID) {
		return ErrProductNotInCart
	}
	if err := s.Carts.Save(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	cartOps.Add("removed", 1)
	return nil
}

func (s *CartService) product(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrProductNotInDB
	}
	return p, nil
}

func (s *CartService) logErr(msg string, err error, u *entity.User) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("email", u.Email).Error(msg)
}
