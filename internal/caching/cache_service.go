package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"dukamart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Admin/storefront product listing caching
	GetProductListing(ctx context.Context, key string) ([]*models.Product, error)
	SetProductListing(ctx context.Context, key string, products []*models.Product, ttl time.Duration) error
	InvalidateProductListing(ctx context.Context) error

	// Cart storage
	GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	SetCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error
	DeleteCart(ctx context.Context, customerID uuid.UUID) error
	ExpireIdleCarts(ctx context.Context, ttl time.Duration) (int, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port URLs as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("dukamart:product:%s", productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("dukamart:product:%s", product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("dukamart:product:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetProductListing(ctx context.Context, key string) ([]*models.Product, error) {
	fullKey := "dukamart:listing:" + key
	data, err := r.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *redisCacheService) SetProductListing(ctx context.Context, key string, products []*models.Product, ttl time.Duration) error {
	fullKey := "dukamart:listing:" + key
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, fullKey, data, ttl).Err()
}

// InvalidateProductListing drops every cached listing page. Called after any
// catalog mutation, bulk imports included.
func (r *redisCacheService) InvalidateProductListing(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "dukamart:listing:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	key := fmt.Sprintf("dukamart:cart:%s", customerID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *redisCacheService) SetCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error {
	key := fmt.Sprintf("dukamart:cart:%s", cart.CustomerID.String())
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCart(ctx context.Context, customerID uuid.UUID) error {
	key := fmt.Sprintf("dukamart:cart:%s", customerID.String())
	return r.client.Del(ctx, key).Err()
}

// ExpireIdleCarts attaches a TTL to any cart key that is missing one, so
// abandoned carts age out instead of accumulating forever. Returns the number
// of carts touched.
func (r *redisCacheService) ExpireIdleCarts(ctx context.Context, ttl time.Duration) (int, error) {
	iter := r.client.Scan(ctx, 0, "dukamart:cart:*", 100).Iterator()
	touched := 0
	for iter.Next(ctx) {
		key := iter.Val()
		remaining, err := r.client.TTL(ctx, key).Result()
		if err != nil {
			return touched, err
		}
		if remaining < 0 {
			if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
				return touched, err
			}
			touched++
		}
	}
	if err := iter.Err(); err != nil {
		return touched, err
	}
	return touched, nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, "dukamart:"+key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, "dukamart:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, "dukamart:"+key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
