package emergency

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const codeCols = `id, name, color, description, response_procedure, team_roles,
	document_id, active, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Code, error) {
	var c Code
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Description, &c.ResponseProcedure,
		&c.TeamRoles, &c.DocumentID, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Code) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO emergency_code (id, name, color, description, response_procedure,
			team_roles, document_id, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.Name, c.Color, c.Description, c.ResponseProcedure,
		c.TeamRoles, c.DocumentID, c.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Code, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+codeCols+` FROM emergency_code WHERE id = $1`, id))
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*Code, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+codeCols+` FROM emergency_code WHERE name = $1`, name))
}

func (r *repoPG) Update(ctx context.Context, c *Code) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE emergency_code SET name=$2, color=$3, description=$4, response_procedure=$5,
			team_roles=$6, document_id=$7, active=$8, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.Color, c.Description, c.ResponseProcedure,
		c.TeamRoles, c.DocumentID, c.Active)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM emergency_code WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, activeOnly bool) ([]*Code, error) {
	query := `SELECT ` + codeCols + ` FROM emergency_code`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Code
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, nil
}
