package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-relief/internal/domain"
)

func TestMapWriteError(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{codeUniqueViolation, domain.ErrDuplicate},
		{codeForeignKeyViolation, domain.ErrNotFound},
		{codeCheckViolation, domain.ErrInvalidInput},
	}
	for _, c := range cases {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.code})
		assert.ErrorIs(t, mapWriteError("insert", err), c.want, c.code)
	}

	other := errors.New("conexión cerrada")
	got := mapWriteError("insert movement", other)
	assert.ErrorIs(t, got, other)
	assert.Equal(t, "insert movement: conexión cerrada", got.Error())
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	if p := nullable("abc"); assert.NotNil(t, p) {
		assert.Equal(t, "abc", *p)
	}
}
