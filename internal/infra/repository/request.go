package repository

import (
	"context"
	"time"

	"shareit/internal/domain/request"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
)

const requestsTable = "requests"

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) *RequestRepository {
	return &RequestRepository{db: dbtx}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.ItemRequest) (int64, error) {
	row, err := queryRow(ctx, r.db, dialect.Insert(requestsTable).
		Rows(goqu.Record{
			"description":  req.Description(),
			"requester_id": req.RequesterID(),
			"created":      req.Created(),
		}).
		Returning("id").
		Prepared(true))
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create item request", err)
	}
	return id, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*request.ItemRequest, error) {
	row, err := queryRow(ctx, r.db, selectRequests().Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}
	req, err := scanRequest(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item request by ID", err)
	}
	return req, nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*request.ItemRequest, error) {
	return r.list(ctx, newestFirst(selectRequests().Where(goqu.C("requester_id").Eq(requesterID))))
}

func (r *RequestRepository) ListExcept(ctx context.Context, requesterID int64, page shared.Page) ([]*request.ItemRequest, error) {
	return r.list(ctx, paged(newestFirst(selectRequests().Where(goqu.C("requester_id").Neq(requesterID))), page))
}

func (r *RequestRepository) list(ctx context.Context, ds *goqu.SelectDataset) ([]*request.ItemRequest, error) {
	rows, err := queryRows(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*request.ItemRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item request", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list item requests", err)
	}
	return requests, nil
}

func selectRequests() *goqu.SelectDataset {
	return dialect.From(requestsTable).
		Select("id", "requester_id", "description", "created").
		Prepared(true)
}

func newestFirst(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(goqu.C("created").Desc(), goqu.C("id").Desc())
}

func scanRequest(row scanner) (*request.ItemRequest, error) {
	var (
		id, requesterID int64
		description     string
		created         time.Time
	)
	if err := row.Scan(&id, &requesterID, &description, &created); err != nil {
		return nil, err
	}
	return request.ReconstructItemRequest(id, requesterID, description, created), nil
}
