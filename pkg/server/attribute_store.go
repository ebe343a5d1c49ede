package server

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/matst80/slask-filters/pkg/common/jsoncompat"
	"github.com/matst80/slask-filters/pkg/types"
	"github.com/redis/go-redis/v9"
)

const (
	REDIS_ATTRIBUTES_KEY    = "custom_attributes"
	REDIS_ATTRIBUTES_CHANGE = "custom_attributes_change"
)

// AttributeStore keeps a CustomAttributeConfig in sync with a redis key.
// Writers publish on the change channel after updating the key.
type AttributeStore struct {
	client redis.UniversalClient
	config *types.CustomAttributeConfig
}

func NewAttributeStore(addr, password string, db int, config *types.CustomAttributeConfig) *AttributeStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return newAttributeStore(rdb, config)
}

func newAttributeStore(client redis.UniversalClient, config *types.CustomAttributeConfig) *AttributeStore {
	return &AttributeStore{client: client, config: config}
}

func decodeAttributes(data []byte) ([]*types.CustomAttribute, error) {
	attributes := make([]*types.CustomAttribute, 0)
	if err := jsoncompat.Unmarshal(data, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// Load replaces the config with the stored attributes. A missing key or a
// failed read leaves the config untouched.
func (s *AttributeStore) Load(ctx context.Context) error {
	data, err := s.client.Get(ctx, REDIS_ATTRIBUTES_KEY).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read custom attributes: %w", err)
	}
	attributes, err := decodeAttributes(data)
	if err != nil {
		return fmt.Errorf("decode custom attributes: %w", err)
	}
	s.config.Replace(attributes)
	return nil
}

// Save stores attributes, applies them locally and notifies the other
// instances on the change channel.
func (s *AttributeStore) Save(ctx context.Context, attributes []*types.CustomAttribute) error {
	data, err := jsoncompat.Marshal(attributes)
	if err != nil {
		return err
	}
	if err = s.client.Set(ctx, REDIS_ATTRIBUTES_KEY, data, 0).Err(); err != nil {
		return fmt.Errorf("store custom attributes: %w", err)
	}
	s.config.Replace(attributes)
	return s.client.Publish(ctx, REDIS_ATTRIBUTES_CHANGE, "changed").Err()
}

// Listen reloads the config on every change message until ctx is done.
func (s *AttributeStore) Listen(ctx context.Context) {
	sub := s.client.Subscribe(ctx, REDIS_ATTRIBUTES_CHANGE)
	go func() {
		defer sub.Close()
		s.watch(ctx, sub.Channel())
	}()
}

func (s *AttributeStore) watch(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := s.Load(ctx); err != nil {
				log.Printf("Failed to reload custom attributes: %v", err)
			} else {
				log.Printf("Reloaded custom attributes: %v", s.config.Names())
			}
		}
	}
}

func (s *AttributeStore) Close() error {
	return s.client.Close()
}
