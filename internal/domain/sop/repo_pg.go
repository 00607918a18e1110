package sop

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const sopCols = `id, code, title, department, category, content, version, status,
	effective_date, review_date, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*SOP, error) {
	var s SOP
	err := row.Scan(&s.ID, &s.Code, &s.Title, &s.Department, &s.Category, &s.Content,
		&s.Version, &s.Status, &s.EffectiveDate, &s.ReviewDate, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *SOP) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sop (id, code, title, department, category, content, version, status,
			effective_date, review_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.Code, s.Title, s.Department, s.Category, s.Content, s.Version, s.Status,
		s.EffectiveDate, s.ReviewDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SOP, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+sopCols+` FROM sop WHERE id = $1`, id))
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*SOP, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+sopCols+` FROM sop WHERE code = $1`, code))
}

func (r *repoPG) Update(ctx context.Context, s *SOP) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE sop SET title=$2, department=$3, category=$4, content=$5, version=$6,
			status=$7, effective_date=$8, review_date=$9, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Title, s.Department, s.Category, s.Content, s.Version,
		s.Status, s.EffectiveDate, s.ReviewDate)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sop WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*SOP, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sop`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+sopCols+` FROM sop ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SOP
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*SOP, int, error) {
	query := `SELECT ` + sopCols + ` FROM sop WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM sop WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["department"]; ok {
		query += fmt.Sprintf(` AND department = $%d`, idx)
		countQuery += fmt.Sprintf(` AND department = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["category"]; ok {
		query += fmt.Sprintf(` AND category = $%d`, idx)
		countQuery += fmt.Sprintf(` AND category = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["title"]; ok {
		query += fmt.Sprintf(` AND title ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND title ILIKE $%d`, idx)
		args = append(args, "%"+p+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY code LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SOP
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
