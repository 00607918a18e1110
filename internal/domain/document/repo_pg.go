package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const nodeCols = `id, code, title, kind, parent_id, blob_key, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Node, error) {
	var n Node
	err := row.Scan(&n.ID, &n.Code, &n.Title, &n.Kind, &n.ParentID, &n.BlobKey,
		&n.CreatedAt, &n.UpdatedAt)
	return &n, err
}

func (r *repoPG) Create(ctx context.Context, n *Node) error {
	n.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accreditation_node (id, code, title, kind, parent_id, blob_key)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.Code, n.Title, n.Kind, n.ParentID, n.BlobKey)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Node, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+nodeCols+` FROM accreditation_node WHERE id = $1`, id))
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Node, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+nodeCols+` FROM accreditation_node WHERE code = $1`, code))
}

func (r *repoPG) Update(ctx context.Context, n *Node) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accreditation_node SET code=$2, title=$3, kind=$4, parent_id=$5,
			blob_key=$6, updated_at=NOW()
		WHERE id = $1`,
		n.ID, n.Code, n.Title, n.Kind, n.ParentID, n.BlobKey)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accreditation_node WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Node, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+nodeCols+` FROM accreditation_node WHERE parent_id = $1 ORDER BY code`, parentID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Node, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+nodeCols+` FROM accreditation_node ORDER BY code`)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repoPG) collect(rows pgx.Rows) ([]*Node, error) {
	defer rows.Close()
	var items []*Node
	for rows.Next() {
		n, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
