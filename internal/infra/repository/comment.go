package repository

import (
	"context"
	"time"

	"shareit/internal/domain/comment"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
)

const commentsTable = "comments"

type CommentRepository struct {
	db db.DBTX
}

func NewCommentRepository(dbtx db.DBTX) *CommentRepository {
	return &CommentRepository{db: dbtx}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) (int64, error) {
	row, err := queryRow(ctx, r.db, dialect.Insert(commentsTable).
		Rows(goqu.Record{
			"text":      c.Text().String(),
			"item_id":   c.ItemID(),
			"author_id": c.Author().ID,
			"created":   c.Created(),
		}).
		Returning("id").
		Prepared(true))
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create comment", err)
	}
	return id, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*comment.Comment, error) {
	row, err := queryRow(ctx, r.db, selectComments().Where(goqu.I("c.id").Eq(id)))
	if err != nil {
		return nil, err
	}
	c, err := scanComment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("comment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find comment by ID", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByItem(ctx context.Context, itemID int64) ([]*comment.Comment, error) {
	rows, err := queryRows(ctx, r.db, selectComments().
		Where(goqu.I("c.item_id").Eq(itemID)).
		Order(goqu.I("c.created").Asc(), goqu.I("c.id").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	return comments, nil
}

func selectComments() *goqu.SelectDataset {
	return dialect.From(goqu.T(commentsTable).As("c")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select("c.id", "c.text", "c.author_id", "u.name", "c.item_id", "c.created").
		Prepared(true)
}

func scanComment(row scanner) (*comment.Comment, error) {
	var (
		id, itemID int64
		text       string
		author     comment.Author
		created    time.Time
	)
	if err := row.Scan(&id, &text, &author.ID, &author.Name, &itemID, &created); err != nil {
		return nil, err
	}
	return comment.ReconstructComment(id, text, author, itemID, created), nil
}
