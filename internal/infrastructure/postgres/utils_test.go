package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFilter_PosicionesYPagina(t *testing.T) {
	var f filter
	assert.Empty(t, f.where())

	f.add("status = ?", "VIG")
	f.add("(code ILIKE ? OR name ILIKE ?)", "%x%")
	pg := f.page(20, 40)

	assert.Equal(t, " WHERE status = $1 AND (code ILIKE $2 OR name ILIKE $2)", f.where())
	assert.Equal(t, " LIMIT $3 OFFSET $4", pg)
	assert.Equal(t, []any{"VIG", "%x%", 20, 40}, f.args)
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}

func TestViolaciones(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(errors.New("otro")))
}
