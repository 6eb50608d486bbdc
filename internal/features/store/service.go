package store

import (
	"context"
	"errors"

	"go-merchant/internal/kvstore"
	"go-merchant/pkg/utils"
)

// activeStoreKey is the per-user pointer to the currently selected store,
// kept in the shared kv store alongside the dashboard keys.
const activeStoreKey = "@active_store_id"

type StoreService interface {
	ListStores(ctx context.Context, userID string) ([]Store, error)
	CreateStore(ctx context.Context, s *Store) error
	DeleteStore(ctx context.Context, userID, id string) error
	SelectStore(ctx context.Context, userID, id string) error
	ActiveStore(ctx context.Context, userID string) (*Store, error)
}

type StoreServiceImpl struct {
	StoreRepo StoreRepository
	KV        kvstore.Store
}

func NewStoreService(storeRepo StoreRepository, kv kvstore.Store) StoreService {
	return &StoreServiceImpl{
		StoreRepo: storeRepo,
		KV:        kv,
	}
}

func (s *StoreServiceImpl) kvFor(userID string) kvstore.Store {
	return kvstore.Namespaced(s.KV, "user:"+userID)
}

func (s *StoreServiceImpl) ListStores(ctx context.Context, userID string) ([]Store, error) {
	return s.StoreRepo.FindByUserID(ctx, userID)
}

func (s *StoreServiceImpl) CreateStore(ctx context.Context, st *Store) error {
	st.Slug = utils.Slugify(st.Name)
	return s.StoreRepo.Create(ctx, st)
}

func (s *StoreServiceImpl) DeleteStore(ctx context.Context, userID, id string) error {
	existing, err := s.StoreRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID.Hex() != userID {
		return errors.New("access denied: you can only delete your own stores")
	}
	return s.StoreRepo.Delete(ctx, id)
}

// SelectStore records the user's active store. Ownership is checked before
// the pointer is written.
func (s *StoreServiceImpl) SelectStore(ctx context.Context, userID, id string) error {
	existing, err := s.StoreRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID.Hex() != userID {
		return errors.New("access denied: you can only select your own stores")
	}
	return s.kvFor(userID).SetItem(ctx, activeStoreKey, id)
}

// ActiveStore resolves the selected store. When the pointer is unset or
// dangling it falls back to the user's first store.
func (s *StoreServiceImpl) ActiveStore(ctx context.Context, userID string) (*Store, error) {
	id, err := s.kvFor(userID).GetItem(ctx, activeStoreKey)
	if err == nil && id != "" {
		if st, err := s.StoreRepo.Get(ctx, id); err == nil {
			return st, nil
		}
	} else if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return nil, err
	}

	stores, err := s.StoreRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, ErrStoreNotFound
	}
	return &stores[0], nil
}
