package repository

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

var (
	todoRowColumns     = []string{"id", "title", "completed", "description", "due_date", "priority", "user_id", "created_at", "updated_at"}
	categoryRowColumns = []string{"id", "name", "user_id", "created_at"}
)

func setupMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
		mock.Close()
	})
	return mock
}

func strPtr(s string) *string { return &s }

func todoRow(rows *pgxmock.Rows, id int64, title string, createdAt time.Time) *pgxmock.Rows {
	return rows.AddRow(id, title, false, (*string)(nil), (*time.Time)(nil), (*string)(nil), int64(1), createdAt, createdAt)
}
