package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

const cartKeyPrefix = "cart:"

// CartStore adalah operasi hash minimal yang dibutuhkan cart service.
// Implementasi produksi membungkus *redis.Client; test memakai fake in-memory.
type CartStore interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSet(ctx context.Context, key string, values map[string]string) error
	HExists(ctx context.Context, key, field string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RedisCartStore mengimplementasikan CartStore di atas go-redis.
type RedisCartStore struct {
	Client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{Client: client}
}

func (r *RedisCartStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.Client.HGetAll(ctx, key).Result()
}

func (r *RedisCartStore) HSet(ctx context.Context, key string, values map[string]string) error {
	return r.Client.HSet(ctx, key, values).Err()
}

func (r *RedisCartStore) HExists(ctx context.Context, key, field string) (bool, error) {
	return r.Client.HExists(ctx, key, field).Result()
}

func (r *RedisCartStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.Client.Expire(ctx, key, ttl).Err()
}

// CartService menyimpan cart ephemeral di key-value store dengan tmp code
// sebagai kunci. Tmp code adalah kredensial yang sudah dipegang peserta,
// jadi cart bisa dialamatkan langsung tanpa lookup tambahan.
type CartService struct {
	Sessions *SessionService
	Store    CartStore
}

func NewCartService(sessions *SessionService, store CartStore) *CartService {
	return &CartService{Sessions: sessions, Store: store}
}

func cartKey(tmpCode string) string {
	return cartKeyPrefix + tmpCode
}

// GetCart memvalidasi ulang sesi lewat QR token + tmp code sebelum
// membaca cart dari store.
func (cs *CartService) GetCart(ctx context.Context, qrToken, tmpCode string) (*models.Cart, error) {
	if _, err := cs.Sessions.RequireSessionByQRAndCode(qrToken, tmpCode); err != nil {
		return nil, err
	}

	fields, err := cs.Store.HGetAll(ctx, cartKey(tmpCode))
	if err != nil {
		return nil, err
	}
	if fields["id"] == "" {
		return nil, utils.NewNotFoundError("Cart not found")
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(fields["data"]), &cart); err != nil {
		return nil, utils.NewDatabaseError("stored cart is corrupted")
	}

	return &cart, nil
}

// CreateCart memvalidasi ulang sesi, menolak pembuatan ganda lewat field
// penanda "id" pada hash, lalu menulis cart lengkap ke store.
func (cs *CartService) CreateCart(ctx context.Context, qrToken, tmpCode string, cart *models.Cart) error {
	session, err := cs.Sessions.RequireSessionByQRAndCode(qrToken, tmpCode)
	if err != nil {
		return err
	}

	if err := cart.Validate(); err != nil {
		return utils.NewValidationError(err.Error())
	}

	key := cartKey(tmpCode)
	exists, err := cs.Store.HExists(ctx, key, "id")
	if err != nil {
		return err
	}
	if exists {
		return utils.NewValidationError("Cart already exists for this session")
	}

	cart.TmpCode = tmpCode
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	now := time.Now()
	err = cs.Store.HSet(ctx, key, map[string]string{
		"id":         tmpCode,
		"qr_code":    qrToken,
		"data":       string(data),
		"created_at": now.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	// Umur cart mengikuti umur sesinya
	if session.ExpiresAt != nil {
		if ttl := time.Until(*session.ExpiresAt); ttl > 0 {
			if err := cs.Store.Expire(ctx, key, ttl); err != nil {
				utils.ErrorLogger.Printf("Failed to set cart TTL for %s: %v", key, err)
			}
		}
	}

	return nil
}
