package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

const (
	catalogCacheKey = "products:active"
	catalogCacheTTL = 5 * time.Minute
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidInput       = errors.New("product name, price and a valid category are required")
	ErrStorageUnavailable = errors.New("image storage is unavailable")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Product, error)
	Stats(ctx context.Context) (*domain.ProductStats, error)
}

type service struct {
	productRepo repository.ProductRepository
	minioClient *minio.Client
	redis       *redis.Client
	cfg         *config.Config
}

func NewService(productRepo repository.ProductRepository, minioClient *minio.Client, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		productRepo: productRepo,
		minioClient: minioClient,
		redis:       redisClient,
		cfg:         cfg,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price < 0 || !input.Category.IsValid() {
		return nil, ErrInvalidInput
	}

	p := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		NameEn:      input.NameEn,
		Price:       input.Price,
		Category:    input.Category,
		Stock:       input.Stock,
		StockText:   "In stock",
		Icon:        "📦",
		Description: input.Description,
		Featured:    input.Featured,
		Active:      true,
	}
	if input.StockText != nil {
		p.StockText = *input.StockText
	}
	if input.Icon != nil {
		p.Icon = *input.Icon
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ListActive serves the public catalog. The unfiltered listing is cached in
// Redis for a few minutes; filtered queries always hit the database.
func (s *service) ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	cacheable := filter.Category == nil && filter.Featured == nil

	if cacheable && s.redis != nil {
		if cached, err := s.redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.productRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable && s.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}

	return products, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateProductInput) (*domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		p.Name = name
	}
	if input.NameEn != nil {
		p.NameEn = input.NameEn
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidInput
		}
		p.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidInput
		}
		p.Category = *input.Category
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.StockText != nil {
		p.StockText = *input.StockText
	}
	if input.Icon != nil {
		p.Icon = *input.Icon
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) UploadImage(ctx context.Context, id uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Product, error) {
	// The server boots without MinIO in degraded mode; uploads are the only
	// operation that needs it.
	if s.minioClient == nil {
		return nil, ErrStorageUnavailable
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	storagePath := fmt.Sprintf("products/%s/%s%s", id, uuid.New(), filepath.Ext(fileName))

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	imageURL := s.getPublicURL(storagePath)
	if err := s.productRepo.SetImage(ctx, id, imageURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	p.Image = &imageURL
	s.invalidateCache(ctx)
	return p, nil
}

func (s *service) Stats(ctx context.Context) (*domain.ProductStats, error) {
	return s.productRepo.Stats(ctx)
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, catalogCacheKey)
	}
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
