package repository

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var dialect = goqu.Dialect("postgres")

// sqlBuilder is implemented by every goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func queryRow(ctx context.Context, dbtx db.DBTX, b sqlBuilder) (pgx.Row, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build query", err, infra.KindDBFailure)
	}
	return dbtx.QueryRow(ctx, query, args...), nil
}

func queryRows(ctx context.Context, dbtx db.DBTX, b sqlBuilder) (pgx.Rows, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build query", err, infra.KindDBFailure)
	}
	rows, err := dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to run query", err)
	}
	return rows, nil
}

func execute(ctx context.Context, dbtx db.DBTX, b sqlBuilder) (pgconn.CommandTag, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return pgconn.CommandTag{}, infra.WrapRepoErr("failed to build query", err, infra.KindDBFailure)
	}
	tag, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return pgconn.CommandTag{}, infra.WrapRepoErr("failed to execute statement", err)
	}
	return tag, nil
}

// exists runs SELECT 1 ... LIMIT 1 and reports whether a row came back.
func exists(ctx context.Context, dbtx db.DBTX, ds *goqu.SelectDataset) (bool, error) {
	row, err := queryRow(ctx, dbtx, ds.Select(goqu.L("1")).Limit(1))
	if err != nil {
		return false, err
	}
	var one int
	if err := row.Scan(&one); err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check existence", err)
	}
	return true, nil
}

func paged(ds *goqu.SelectDataset, page shared.Page) *goqu.SelectDataset {
	// #nosec G115 -- page bounds are validated by shared.NewPage
	return ds.Offset(uint(page.From)).Limit(uint(page.Size))
}

// likePattern escapes LIKE metacharacters so user text matches literally.
func likePattern(text string) string {
	escaped := make([]rune, 0, len(text)+2)
	escaped = append(escaped, '%')
	for _, r := range text {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	escaped = append(escaped, '%')
	return string(escaped)
}
