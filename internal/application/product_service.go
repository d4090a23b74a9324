package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-qkart-backend/internal/domain/repository"
	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
)

var ErrProductNotFound = apperror.NotFound("Product not found")

const searchTimeout = 3 * time.Second

type ProductService struct {
	Repo   repo.ProductRepository
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

// NewProductService wires the catalog. es may be nil, in which case search scans the store.
func NewProductService(r repo.ProductRepository, es *elasticsearch.Client, index string, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: r, ES: es, Index: index, Logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	ps, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ps, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// SearchProducts matches value against name and category.
// Elasticsearch failures degrade to the store scan instead of failing the request.
func (s *ProductService) SearchProducts(ctx context.Context, value string) ([]entity.Product, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.ListProducts(ctx)
	}
	if s.ES != nil {
		ps, err := s.searchIndex(ctx, value)
		if err == nil {
			return ps, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("value", value).Warn("elasticsearch search failed; scanning store")
		}
	}

	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(value)
	out := make([]entity.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// productDoc is the indexed _source; the id lives in the document _id.
type productDoc struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image"`
}

func toDoc(p entity.Product) productDoc {
	return productDoc{Name: p.Name, Category: p.Category, Cost: p.Cost, Rating: p.Rating, Image: p.Image}
}

func (d productDoc) product(id string) entity.Product {
	return entity.Product{ID: id, Name: d.Name, Category: d.Category, Cost: d.Cost, Rating: d.Rating, Image: d.Image}
}

func (s *ProductService) searchIndex(ctx context.Context, value string) ([]entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	query := map[string]any{
		"size": 100,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     value,
				"fields":    []string{"name^2", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&body),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.Index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string     `json:"_id"`
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.product(h.ID))
	}
	return out, nil
}

// SaveProduct upserts p into the store and, when configured, the search index.
func (s *ProductService) SaveProduct(ctx context.Context, p *entity.Product) error {
	if err := s.Repo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	if s.ES == nil {
		return nil
	}
	b, err := json.Marshal(toDoc(*p))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := s.ES.Index(s.Index, bytes.NewReader(b),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(p.ID),
	)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}
