package store

// postgres.go loads the record set from a PostgreSQL table at startup.
//
// Expected columns: id bigint, name text, category text, status text,
// updated_at date, amount bigint, field01..field64 text. NULLs become empty
// values; a NULL id is an error.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// ErrNullID is returned when a row has no id.
var ErrNullID = errors.New("record row has null id")

// Querier is the subset of pgxpool.Pool used by the loader.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads every row of table ordered by id.
// table may be schema-qualified ("public.records").
func LoadPostgres(ctx context.Context, db Querier, table string) ([]*core.Record, error) {
	rows, err := db.Query(ctx, selectRecordsSQL(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return records, nil
}

// recordColumns lists the selected columns in scan order.
func recordColumns() []string {
	cols := []string{"id", "name", "category", "status", "updated_at", "amount"}
	for i := 1; i <= core.SupplementaryFieldCount; i++ {
		cols = append(cols, fmt.Sprintf("field%02d", i))
	}
	return cols
}

func selectRecordsSQL(table string) string {
	cols := recordColumns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(quoted, ", "), quoteTable(table), quoteIdentifier("id"))
}

// rowValues holds one scanned row before conversion.
type rowValues struct {
	id        pgtype.Int8
	name      pgtype.Text
	category  pgtype.Text
	status    pgtype.Text
	updatedAt pgtype.Date
	amount    pgtype.Int8
	fields    [core.SupplementaryFieldCount]pgtype.Text
}

func (v *rowValues) dest() []any {
	d := make([]any, 0, 6+core.SupplementaryFieldCount)
	d = append(d, &v.id, &v.name, &v.category, &v.status, &v.updatedAt, &v.amount)
	for i := range v.fields {
		d = append(d, &v.fields[i])
	}
	return d
}

func scanRecord(row pgx.CollectableRow) (*core.Record, error) {
	var v rowValues
	if err := row.Scan(v.dest()...); err != nil {
		return nil, err
	}
	return v.record()
}

func (v *rowValues) record() (*core.Record, error) {
	if !v.id.Valid {
		return nil, ErrNullID
	}

	r := &core.Record{
		ID:       v.id.Int64,
		Name:     textOf(v.name),
		Category: textOf(v.category),
		Status:   textOf(v.status),
	}
	if v.updatedAt.Valid {
		y, m, d := v.updatedAt.Time.Date()
		r.UpdatedAt = core.Date(y, m, d)
	}
	if v.amount.Valid {
		r.Amount = v.amount.Int64
	}
	for i, f := range v.fields {
		r.Fields[i] = textOf(f)
	}
	return r, nil
}

func textOf(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// quoteIdentifier safely quotes a PostgreSQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteTable quotes each dot-separated part of a table name.
func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = quoteIdentifier(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}
