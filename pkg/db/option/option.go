package option

import "gorm.io/gorm"

// QueryOption mutates a gorm query before execution.
type QueryOption func(*gorm.DB) *gorm.DB

func WithOrder(expr string) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(expr)
	}
}

func WithLimit(limit int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit)
	}
}

// WithCondition adds a raw conditional clause with arguments.
func WithCondition(query string, args ...any) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	}
}

func Apply(tx *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		tx = opt(tx)
	}
	return tx
}
