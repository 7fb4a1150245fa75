package repository

import (
	"context"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/database/postgres"
	"talent-match/internal/domain/project"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var clientColumns = []string{
	"c.id", "c.name",
	"(SELECT count(*) FROM projects p WHERE p.client_id = c.id)",
	"c.created_at", "c.updated_at",
}

type ClientRepository interface {
	ListClients(ctx context.Context, search string) ([]project.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (project.Client, error)
	CreateClient(ctx context.Context, c project.Client) (project.Client, error)
	UpdateClient(ctx context.Context, c project.Client) (project.Client, error)
	// ClientNameExists matches names case-insensitively, ignoring the client
	// with id exclude.
	ClientNameExists(ctx context.Context, name string, exclude uuid.UUID) (bool, error)
}

type PostgresClientRepository struct {
	db database.DB
}

func NewPostgresClientRepository(db database.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

func listClientsQuery(search string) (string, []any, error) {
	b := sqrl.Select(clientColumns...).From("clients c")
	if s := strings.TrimSpace(search); s != "" {
		b = b.Where(sqrl.ILike{"c.name": "%" + s + "%"})
	}
	return b.OrderBy("c.name ASC").PlaceholderFormat(sqrl.Dollar).ToSql()
}

func (r *PostgresClientRepository) ListClients(ctx context.Context, search string) ([]project.Client, error) {
	query, args, err := listClientsQuery(search)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresClientRepository) GetClient(ctx context.Context, id uuid.UUID) (project.Client, error) {
	query, args, err := sqrl.Select(clientColumns...).
		From("clients c").
		Where("c.id = ?", id).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return project.Client{}, err
	}

	c, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return project.Client{}, ErrClientNotFound
		}
		return project.Client{}, err
	}
	return c, nil
}

func (r *PostgresClientRepository) CreateClient(ctx context.Context, c project.Client) (project.Client, error) {
	if _, err := r.db.Exec(ctx, `INSERT INTO clients (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
		return project.Client{}, err
	}
	return r.GetClient(ctx, c.ID)
}

func (r *PostgresClientRepository) UpdateClient(ctx context.Context, c project.Client) (project.Client, error) {
	n, err := r.db.Exec(ctx, `UPDATE clients SET name = $1, updated_at = now() WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return project.Client{}, err
	}
	if n == 0 {
		return project.Client{}, ErrClientNotFound
	}
	return r.GetClient(ctx, c.ID)
}

func (r *PostgresClientRepository) ClientNameExists(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE lower(name) = lower($1) AND id <> $2)`,
		strings.TrimSpace(name), exclude,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanClient(row database.Row) (project.Client, error) {
	var c project.Client
	err := row.Scan(&c.ID, &c.Name, &c.ProjectCount, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
