// Package repo provides order persistence for analytics
package repo

import (
	"context"
	"strings"
	"time"

	"gearbox/internal/modkit/repokit"
	perr "gearbox/internal/platform/errors"
)

// OrderRow is the storage shape of one repair order
type OrderRow struct {
	ID         string
	ShopName   string
	Status     string
	DropOff    *time.Time
	StatusDate *time.Time
	CreatedAt  time.Time
	Cost       float64
}

// Repo is the minimal persistence surface for repair orders
type Repo interface {
	ListAll(ctx context.Context) ([]OrderRow, error)
	Get(ctx context.Context, id string) (*OrderRow, error)
	Insert(ctx context.Context, row OrderRow) error
	Update(ctx context.Context, row OrderRow) error
	Delete(ctx context.Context, id string) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ListAll(ctx context.Context) ([]OrderRow, error) {
	const sql = `
select id::text, shop_name, status, drop_off, status_date, created_at, cost
from repair_orders
order by created_at asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.FromPG(err, "orders.list")
	}
	defer rows.Close()
	var out []OrderRow
	for rows.Next() {
		var or OrderRow
		if err := rows.Scan(&or.ID, &or.ShopName, &or.Status, &or.DropOff, &or.StatusDate, &or.CreatedAt, &or.Cost); err != nil {
			return nil, perr.FromPG(err, "orders.list.scan")
		}
		out = append(out, or)
	}
	return out, perr.FromPG(rows.Err(), "orders.list")
}

func (r *queries) Get(ctx context.Context, id string) (*OrderRow, error) {
	const sql = `
select id::text, shop_name, status, drop_off, status_date, created_at, cost
from repair_orders
where id = $1
`
	var or OrderRow
	err := r.q.QueryRow(ctx, sql, id).
		Scan(&or.ID, &or.ShopName, &or.Status, &or.DropOff, &or.StatusDate, &or.CreatedAt, &or.Cost)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return nil, perr.NotFoundf("order %s not found", id)
		}
		return nil, perr.FromPG(err, "orders.get")
	}
	return &or, nil
}

func (r *queries) Insert(ctx context.Context, row OrderRow) error {
	const sql = `
insert into repair_orders (id, shop_name, status, drop_off, status_date, created_at, cost)
values ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.q.Exec(ctx, sql, row.ID, row.ShopName, row.Status, row.DropOff, row.StatusDate, row.CreatedAt, row.Cost)
	return perr.FromPG(err, "orders.insert")
}

func (r *queries) Update(ctx context.Context, row OrderRow) error {
	const sql = `
update repair_orders
set status = $2, status_date = $3, cost = $4
where id = $1
`
	tag, err := r.q.Exec(ctx, sql, row.ID, row.Status, row.StatusDate, row.Cost)
	if err != nil {
		return perr.FromPG(err, "orders.update")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("order %s not found", row.ID)
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, id string) error {
	const sql = `delete from repair_orders where id = $1`
	tag, err := r.q.Exec(ctx, sql, id)
	if err != nil {
		return perr.FromPG(err, "orders.delete")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("order %s not found", id)
	}
	return nil
}
