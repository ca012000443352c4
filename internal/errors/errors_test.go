package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad nif")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("flight %d not found", 42)))
	assert.Equal(t, KindConflict, KindOf(Conflict("already departed")))
	assert.Equal(t, KindStorage, KindOf(fmt.Errorf("dial tcp: refused")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("purchase failed: %w", Conflict("flight departed or sales closed"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "flight departed or sales closed", MessageOf(err))
}

func TestFromStorageUniqueViolation(t *testing.T) {
	err := FromStorage(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"bilhete_voo_id_codigo_reserva_nome_passegeiro_key\""})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestFromStorageForeignKeyViolation(t *testing.T) {
	err := FromStorage(&pq.Error{Code: "23503", Message: "insert or update on table \"bilhete\" violates foreign key constraint"})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestFromStorageTriggerRaise(t *testing.T) {
	err := FromStorage(&pq.Error{Code: "P0001", Message: "seat already taken"})
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "seat already taken", MessageOf(err))
}

func TestFromStorageGenericError(t *testing.T) {
	err := FromStorage(&pq.Error{Code: "57P01", Message: "terminating connection\nDETAIL: admin shutdown"})
	assert.Equal(t, KindStorage, KindOf(err))
	// only the first error line is surfaced
	assert.Equal(t, "Database error: terminating connection", MessageOf(err))
}

func TestFromStorageNoRows(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(FromStorage(sql.ErrNoRows)))
}

func TestFromStoragePassesThroughClassified(t *testing.T) {
	orig := NotFound("ticket 7 not found")
	assert.Same(t, orig, FromStorage(orig).(*Error))
}

func TestFromStorageNil(t *testing.T) {
	assert.Nil(t, FromStorage(nil))
}
