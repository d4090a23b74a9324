// Package seed loads the product catalog and a demo account.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/application"
	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
)

// DemoUser is created by Run unless the email already exists.
var DemoUser = application.CreateUserInput{
	Name:     "crio-user",
	Email:    "crio-user@gmail.com",
	Password: "criouser123",
}

// LoadProducts reads a JSON array of products.
func LoadProducts(path string) ([]entity.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ps []entity.Product
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, p := range ps {
		if p.ID == "" {
			return nil, fmt.Errorf("decode %s: product %d has no _id", path, i)
		}
	}
	return ps, nil
}

// Run upserts every product and makes sure the demo user exists.
// Run is idempotent.
func Run(ctx context.Context, products *application.ProductService, users *application.UserService, ps []entity.Product, logger *logrus.Logger) error {
	for i := range ps {
		if err := products.SaveProduct(ctx, &ps[i]); err != nil {
			return err
		}
	}
	logger.WithField("count", len(ps)).Info("products seeded")

	existing, err := users.GetUserByEmail(ctx, DemoUser.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.WithField("email", existing.Email).Info("demo user already present")
		return nil
	}
	u, err := users.CreateUser(ctx, DemoUser)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("demo user seeded")
	return nil
}
