package sqlc

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

func (q *Queries) ListClassifications(ctx context.Context) ([]string, error) {
	sql, args, err := sq.Select("name").
		From("classifications").
		OrderBy("position", "name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReplaceClassifications swaps the stored list for names, keeping their
// order. Run it inside a transaction.
func (q *Queries) ReplaceClassifications(ctx context.Context, names []string) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM classifications"); err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	query := sq.Insert("classifications").Columns("name", "position")
	for i, name := range names {
		query = query.Values(name, i)
	}
	query = query.Suffix("ON CONFLICT(name) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, sql, args...)
	return err
}
