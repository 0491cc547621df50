package supabase

import (
	"context"
	"fmt"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
	"github.com/thorryuk/Sekai---Backend/internal/tablestore"
)

// TableStore is the slice of the table client the repo needs.
type TableStore interface {
	Select(ctx context.Context, table string, filters ...tablestore.Filter) ([]tablestore.Row, error)
}

// UserRepo reads users from the external users table.
// Users are managed outside this service, so the repo is read-only.
type UserRepo struct {
	store TableStore
}

func NewUserRepo(store TableStore) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	rows, err := r.store.Select(ctx, "users", tablestore.Eq("username", username))
	if err != nil {
		return domain.User{}, err
	}
	if len(rows) == 0 {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return mapUser(rows[0]), nil
}

func mapUser(row tablestore.Row) domain.User {
	return domain.User{
		ID:           stringField(row, "id"),
		Username:     stringField(row, "username"),
		PasswordHash: stringField(row, "password"),
		Role:         stringField(row, "role"),
	}
}

// stringField tolerates numeric ids: JSON numbers decode as float64.
func stringField(row tablestore.Row, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
