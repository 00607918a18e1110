package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nabh/nabh/internal/importer"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, sr_no, visit_id, name, diagnosis, admission_date, discharge_date, status, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.SrNo, &p.VisitID, &p.Name, &p.Diagnosis,
		&p.AdmissionDate, &p.DischargeDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, sr_no, visit_id, name, diagnosis, admission_date, discharge_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.SrNo, p.VisitID, p.Name, p.Diagnosis, p.AdmissionDate, p.DischargeDate, p.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByVisitID(ctx context.Context, visitID string) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE visit_id = $1`, visitID))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET sr_no=$2, name=$3, diagnosis=$4, admission_date=$5,
			discharge_date=$6, status=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.SrNo, p.Name, p.Diagnosis, p.AdmissionDate, p.DischargeDate, p.Status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY sr_no, visit_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patient WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patient WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["name"]; ok {
		query += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+p+"%")
		idx++
	}
	if p, ok := params["visit_id"]; ok {
		query += fmt.Sprintf(` AND visit_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND visit_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["diagnosis"]; ok {
		query += fmt.Sprintf(` AND diagnosis ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND diagnosis ILIKE $%d`, idx)
		args = append(args, "%"+p+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY sr_no, visit_id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// BulkUpsert writes one import batch, replacing any existing row sharing a
// visit_id. Runs in a single transaction so a failed batch leaves no
// partial writes.
func (r *repoPG) BulkUpsert(ctx context.Context, patients []importer.Patient) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range patients {
		_, err := tx.Exec(ctx, `
			INSERT INTO patient (id, sr_no, visit_id, name, diagnosis, admission_date, discharge_date, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (visit_id) DO UPDATE SET
				sr_no = EXCLUDED.sr_no,
				name = EXCLUDED.name,
				diagnosis = EXCLUDED.diagnosis,
				admission_date = EXCLUDED.admission_date,
				discharge_date = EXCLUDED.discharge_date,
				status = EXCLUDED.status,
				updated_at = NOW()`,
			uuid.New(), p.SrNo, p.VisitID, p.Name, p.Diagnosis,
			parseDate(p.AdmissionDate), parseDate(p.DischargeDate), p.Status)
		if err != nil {
			return fmt.Errorf("upsert visit %s: %w", p.VisitID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *repoPG) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient`)
	return err
}

// parseDate turns the pipeline's YYYY-MM-DD strings into nullable dates.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
