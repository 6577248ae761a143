package repository

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
)

const usersTable = "users"

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	row, err := queryRow(ctx, r.db, insertUserQuery(u))
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := execute(ctx, r.db, dialect.Update(usersTable).
		Set(goqu.Record{"name": u.Name(), "email": u.Email().Value()}).
		Where(goqu.C("id").Eq(u.ID())).
		Prepared(true))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("user not found")
	}
	return nil
}

// Delete removes the user. Items, bookings, comments and requests follow by cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := execute(ctx, r.db, dialect.Delete(usersTable).Where(goqu.C("id").Eq(id)).Prepared(true))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	row, err := queryRow(ctx, r.db, selectUsers().Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := queryRows(ctx, r.db, selectUsers().Order(goqu.C("id").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	return users, nil
}

func (r *UserRepository) ExistsByEmailExcept(ctx context.Context, email string, exceptID int64) (bool, error) {
	return exists(ctx, r.db, dialect.From(usersTable).
		Where(goqu.C("email").Eq(email), goqu.C("id").Neq(exceptID)).
		Prepared(true))
}

func insertUserQuery(u *user.User) *goqu.InsertDataset {
	return dialect.Insert(usersTable).
		Rows(goqu.Record{"name": u.Name(), "email": u.Email().Value()}).
		Returning("id").
		Prepared(true)
}

func selectUsers() *goqu.SelectDataset {
	return dialect.From(usersTable).Select("id", "name", "email").Prepared(true)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id          int64
		name, email string
	)
	if err := row.Scan(&id, &name, &email); err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, name, email), nil
}
