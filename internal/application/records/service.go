package records

import (
	"context"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
	"github.com/thorryuk/Sekai---Backend/internal/tablestore"
)

/*
TableStore
----------
Port over the external table API. The record service forwards
payloads without interpreting them; rows stay generic maps.
*/
type TableStore interface {
	Select(ctx context.Context, table string, filters ...tablestore.Filter) ([]tablestore.Row, error)
	Insert(ctx context.Context, table string, payload any) ([]tablestore.Row, error)
	Update(ctx context.Context, table string, payload any, filters ...tablestore.Filter) ([]tablestore.Row, error)
	Delete(ctx context.Context, table string, filters ...tablestore.Filter) ([]tablestore.Row, error)
}

// Resource binds a client-facing display name to a table.
// Name appears in not-found messages ("Store not found").
type Resource struct {
	Name  string
	Table string
}

var (
	Stores = Resource{Name: "Store", Table: "stores"}
	Scans  = Resource{Name: "Scan", Table: "qr_scans"}
)

// Service forwards CRUD operations on a resource to the table store.
type Service struct {
	store TableStore
}

func NewService(store TableStore) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, res Resource) ([]tablestore.Row, error) {
	return s.store.Select(ctx, res.Table)
}

func (s *Service) Create(ctx context.Context, res Resource, payload any) ([]tablestore.Row, error) {
	return s.store.Insert(ctx, res.Table, payload)
}

func (s *Service) GetByID(ctx context.Context, res Resource, id string) (tablestore.Row, error) {
	rows, err := s.store.Select(ctx, res.Table, tablestore.Eq("id", id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrResourceNotFound(res.Name)
	}
	return rows[0], nil
}

func (s *Service) Update(ctx context.Context, res Resource, id string, payload any) (tablestore.Row, error) {
	rows, err := s.store.Update(ctx, res.Table, payload, tablestore.Eq("id", id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrResourceNotFound(res.Name)
	}
	return rows[0], nil
}

func (s *Service) Delete(ctx context.Context, res Resource, id string) error {
	rows, err := s.store.Delete(ctx, res.Table, tablestore.Eq("id", id))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrResourceNotFound(res.Name)
	}
	return nil
}
