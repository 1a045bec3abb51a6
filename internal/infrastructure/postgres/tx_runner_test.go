package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/inventory"
)

func TestTxRunner_CommitCuandoFnTermina(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM stock_entries`)).
		WithArgs(testItem1, testWh1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	runner := NewTxRunner(mock)
	err = runner.Run(context.Background(), func(repos inventory.Repos) error {
		return repos.Stock.Delete(context.Background(), testItem1, testWh1)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackCuandoFnFalla(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("fallo de validación")
	runner := NewTxRunner(mock)
	err = runner.Run(context.Background(), func(inventory.Repos) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_ErrorEnBegin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("sin conexiones"))

	called := false
	err = NewTxRunner(mock).Run(context.Background(), func(inventory.Repos) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
