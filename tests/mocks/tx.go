package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// Transactor runs the transaction body with a nil tx so repository mocks can
// ignore the tx argument entirely.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) Transact(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}
