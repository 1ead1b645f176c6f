package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techserve_ng/backend/internal/models"
)

var ErrNotFound = errors.New("db: not found")

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const leadColumns = `id, name, phone, phone_e164, email, service, location, message, source_page,
	preferred_contact_time, status, admin_note, created_at, updated_at`

func scanLead(row pgx.Row) (models.Lead, error) {
	var (
		l      models.Lead
		status string
	)
	err := row.Scan(&l.ID, &l.Name, &l.Phone, &l.PhoneE164, &l.Email, &l.Service, &l.Location, &l.Message,
		&l.SourcePage, &l.PreferredContactTime, &status, &l.AdminNote, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lead{}, ErrNotFound
		}
		return models.Lead{}, err
	}
	l.Status = models.LeadStatus(status)
	return l, nil
}

func (s *Store) CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO leads (id, name, phone, phone_e164, email, service, location, message, source_page,
			preferred_contact_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+leadColumns,
		lead.ID, lead.Name, lead.Phone, lead.PhoneE164, lead.Email, lead.Service, lead.Location, lead.Message,
		lead.SourcePage, lead.PreferredContactTime, string(lead.Status), lead.CreatedAt, lead.UpdatedAt,
	)
	created, err := scanLead(row)
	if err != nil {
		return models.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

func (s *Store) GetLead(ctx context.Context, id string) (models.Lead, error) {
	return scanLead(s.Pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
}

func (s *Store) ListLeads(ctx context.Context, f models.LeadFilter) (models.LeadPage, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var args []any
	var wheres []string
	if f.Status != "" {
		args = append(args, string(f.Status))
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		wheres = append(wheres, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR location ILIKE $%d OR message ILIKE $%d)", n, n, n, n))
	}
	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}

	var total int64
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return models.LeadPage{}, err
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		" ORDER BY created_at DESC, id LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return models.LeadPage{}, err
	}
	defer rows.Close()

	page := models.LeadPage{Items: []models.Lead{}, Total: total}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return models.LeadPage{}, err
		}
		page.Items = append(page.Items, l)
	}
	return page, rows.Err()
}

// UpdateLead applies the non-nil fields of u and returns the updated row.
func (s *Store) UpdateLead(ctx context.Context, id string, u models.LeadUpdate) (models.Lead, error) {
	var out models.Lead
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := scanLead(tx.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		status := current.Status
		if u.Status != nil {
			status = *u.Status
		}
		note := current.AdminNote
		if u.AdminNote != nil {
			note = u.AdminNote
			if strings.TrimSpace(*note) == "" {
				note = nil
			}
		}
		out, err = scanLead(tx.QueryRow(ctx, `
			UPDATE leads SET status = $2, admin_note = $3, updated_at = now()
			WHERE id = $1
			RETURNING `+leadColumns, id, string(status), note))
		return err
	})
	if err != nil {
		return models.Lead{}, err
	}
	return out, nil
}

func (s *Store) CountLeads(ctx context.Context) (int64, error) {
	var n int64
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}
