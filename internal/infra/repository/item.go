package repository

import (
	"context"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemsTable = "items"

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (int64, error) {
	row, err := queryRow(ctx, r.db, dialect.Insert(itemsTable).
		Rows(itemRecord(it)).
		Returning("id").
		Prepared(true))
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create item", err)
	}
	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	tag, err := execute(ctx, r.db, dialect.Update(itemsTable).
		Set(itemRecord(it)).
		Where(goqu.C("id").Eq(it.ID())).
		Prepared(true))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("item not found")
	}
	return nil
}

// Delete removes the item together with its bookings and comments by cascade.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := execute(ctx, r.db, dialect.Delete(itemsTable).Where(goqu.C("id").Eq(id)).Prepared(true))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("item not found")
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	row, err := queryRow(ctx, r.db, selectItems().Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}
	it, err := scanItem(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return it, nil
}

// Lock takes a row lock on the item for the rest of the transaction.
func (r *ItemRepository) Lock(ctx context.Context, id int64) error {
	row, err := queryRow(ctx, r.db, lockItemQuery(id))
	if err != nil {
		return err
	}
	var locked int64
	if err := row.Scan(&locked); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock item", err)
	}
	return nil
}

func lockItemQuery(id int64) *goqu.SelectDataset {
	return dialect.From(itemsTable).
		Select("id").
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true)
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64, page shared.Page) ([]*item.Item, error) {
	return r.list(ctx, paged(selectItems().
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc()), page))
}

func (r *ItemRepository) Search(ctx context.Context, text string, page shared.Page) ([]*item.Item, error) {
	return r.list(ctx, searchItemsQuery(text, page))
}

func (r *ItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, selectItems().
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc()))
}

func (r *ItemRepository) list(ctx context.Context, ds *goqu.SelectDataset) ([]*item.Item, error) {
	rows, err := queryRows(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	return items, nil
}

// searchItemsQuery matches available items whose name or description
// contains text, ignoring case.
func searchItemsQuery(text string, page shared.Page) *goqu.SelectDataset {
	pattern := likePattern(strings.TrimSpace(text))
	return paged(selectItems().
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc()), page)
}

func itemRecord(it *item.Item) goqu.Record {
	return goqu.Record{
		"name":        it.Name(),
		"description": it.Description(),
		"available":   it.Available(),
		"owner_id":    it.OwnerID(),
		"request_id":  pgconv.Int8PtrToPgtype(it.RequestID()),
	}
}

func selectItems() *goqu.SelectDataset {
	return dialect.From(itemsTable).
		Select("id", "owner_id", "name", "description", "available", "request_id").
		Prepared(true)
}

func scanItem(row scanner) (*item.Item, error) {
	var (
		id, ownerID       int64
		name, description string
		available         bool
		requestID         pgtype.Int8
	)
	if err := row.Scan(&id, &ownerID, &name, &description, &available, &requestID); err != nil {
		return nil, err
	}
	return item.ReconstructItem(id, ownerID, name, description, available, pgconv.Int8PtrFromPgtype(requestID)), nil
}
