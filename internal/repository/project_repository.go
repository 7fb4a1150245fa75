package repository

import (
	"context"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/database/postgres"
	"talent-match/internal/domain/project"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrMemberNotFound   = errors.New("project member not found")
	ErrMemberExists     = errors.New("employee already on project")
	ErrEmployeeNotFound = errors.New("employee not found")
)

var projectColumns = []string{
	"p.id", "p.name", "p.description", "p.client_id", "p.status", "p.start_date", "p.end_date",
	"(SELECT count(*) FROM project_members pm WHERE pm.project_id = p.id)",
	"p.created_at", "p.updated_at",
}

const memberSelect = `SELECT pm.id, pm.project_id, pm.employee_id, e.name, pm.role, pm.allocation, pm.joined_at
	FROM project_members pm
	JOIN employees e ON e.id = pm.employee_id`

// ProjectFilter narrows ListProjects. Zero value lists every project.
type ProjectFilter struct {
	Status   project.Status
	ClientID *uuid.UUID
}

type ProjectRepository interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]project.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (project.Project, error)
	CreateProject(ctx context.Context, p project.Project) (project.Project, error)
	// UpdateProject writes the project row. Requirements are replaced only when
	// replaceRequirements is set.
	UpdateProject(ctx context.Context, p project.Project, replaceRequirements bool) (project.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, m project.Member) (project.Member, error)
	UpdateMember(ctx context.Context, m project.Member) (project.Member, error)
	RemoveMember(ctx context.Context, projectID, memberID uuid.UUID) (project.Member, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func listProjectsQuery(filter ProjectFilter) (string, []any, error) {
	b := sqrl.Select(projectColumns...).From("projects p")
	if filter.Status != "" {
		b = b.Where(sqrl.Eq{"p.status": string(filter.Status)})
	}
	if filter.ClientID != nil {
		b = b.Where("p.client_id = ?", *filter.ClientID)
	}
	return b.OrderBy("p.created_at DESC", "p.id ASC").PlaceholderFormat(sqrl.Dollar).ToSql()
}

func (r *PostgresProjectRepository) ListProjects(ctx context.Context, filter ProjectFilter) ([]project.Project, error) {
	query, args, err := listProjectsQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProjectRepository) GetProject(ctx context.Context, id uuid.UUID) (project.Project, error) {
	query, args, err := sqrl.Select(projectColumns...).
		From("projects p").
		Where("p.id = ?", id).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return project.Project{}, err
	}

	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}
	if p.Requirements, err = projectRequirements(ctx, r.db, id); err != nil {
		return project.Project{}, err
	}
	if p.Members, err = projectMembers(ctx, r.db, id); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return project.Project{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (id, name, description, client_id, status, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Description, p.ClientID, string(p.Status), p.StartDate, p.EndDate,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return project.Project{}, ErrClientNotFound
		}
		return project.Project{}, err
	}
	if err := replaceRequirements(ctx, tx, p.ID, p.Requirements); err != nil {
		return project.Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return project.Project{}, err
	}
	return r.GetProject(ctx, p.ID)
}

func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, p project.Project, replace bool) (project.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return project.Project{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	n, err := tx.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, client_id = $3, status = $4, start_date = $5, end_date = $6, updated_at = now()
		 WHERE id = $7`,
		p.Name, p.Description, p.ClientID, string(p.Status), p.StartDate, p.EndDate, p.ID,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return project.Project{}, ErrClientNotFound
		}
		return project.Project{}, err
	}
	if n == 0 {
		return project.Project{}, ErrProjectNotFound
	}
	if replace {
		if err := replaceRequirements(ctx, tx, p.ID, p.Requirements); err != nil {
			return project.Project{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return project.Project{}, err
	}
	return r.GetProject(ctx, p.ID)
}

func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) AddMember(ctx context.Context, m project.Member) (project.Member, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_members (id, project_id, employee_id, role, allocation)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ProjectID, m.EmployeeID, m.Role, m.Allocation,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return project.Member{}, ErrMemberExists
		case postgres.IsForeignKeyViolation(err):
			return project.Member{}, ErrEmployeeNotFound
		}
		return project.Member{}, err
	}
	return r.findMember(ctx, m.ProjectID, m.ID)
}

func (r *PostgresProjectRepository) UpdateMember(ctx context.Context, m project.Member) (project.Member, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE project_members
		 SET role = $1, allocation = $2, updated_at = now()
		 WHERE id = $3 AND project_id = $4`,
		m.Role, m.Allocation, m.ID, m.ProjectID,
	)
	if err != nil {
		return project.Member{}, err
	}
	if n == 0 {
		return project.Member{}, ErrMemberNotFound
	}
	return r.findMember(ctx, m.ProjectID, m.ID)
}

func (r *PostgresProjectRepository) RemoveMember(ctx context.Context, projectID, memberID uuid.UUID) (project.Member, error) {
	var m project.Member
	row := r.db.QueryRow(ctx,
		`DELETE FROM project_members WHERE id = $1 AND project_id = $2
		 RETURNING id, project_id, employee_id, role, allocation, joined_at`,
		memberID, projectID,
	)
	if err := row.Scan(&m.ID, &m.ProjectID, &m.EmployeeID, &m.Role, &m.Allocation, &m.JoinedAt); err != nil {
		if postgres.IsNoRows(err) {
			return project.Member{}, ErrMemberNotFound
		}
		return project.Member{}, err
	}
	return m, nil
}

func (r *PostgresProjectRepository) findMember(ctx context.Context, projectID, memberID uuid.UUID) (project.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx, memberSelect+` WHERE pm.id = $1 AND pm.project_id = $2`, memberID, projectID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return project.Member{}, ErrMemberNotFound
		}
		return project.Member{}, err
	}
	return m, nil
}

func replaceRequirements(ctx context.Context, q database.Querier, projectID uuid.UUID, reqs []project.Requirement) error {
	if _, err := q.Exec(ctx, `DELETE FROM project_skills WHERE project_id = $1`, projectID); err != nil {
		return err
	}
	for _, req := range reqs {
		_, err := q.Exec(ctx,
			`INSERT INTO project_skills (id, project_id, skill_id, importance_level, required_level)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), projectID, req.SkillID, req.ImportanceLevel, req.RequiredLevel,
		)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrSkillNotFound
			}
			return err
		}
	}
	return nil
}

func projectRequirements(ctx context.Context, q database.Querier, projectID uuid.UUID) ([]project.Requirement, error) {
	rows, err := q.Query(ctx,
		`SELECT ps.skill_id, s.name, ps.importance_level, ps.required_level
		 FROM project_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.project_id = $1
		 ORDER BY ps.importance_level DESC, s.name ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Requirement, 0)
	for rows.Next() {
		var req project.Requirement
		if err := rows.Scan(&req.SkillID, &req.SkillName, &req.ImportanceLevel, &req.RequiredLevel); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func projectMembers(ctx context.Context, q database.Querier, projectID uuid.UUID) ([]project.Member, error) {
	rows, err := q.Query(ctx, memberSelect+` WHERE pm.project_id = $1 ORDER BY pm.joined_at ASC, pm.id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanProject(row database.Row) (project.Project, error) {
	var (
		p      project.Project
		status string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ClientID, &status, &p.StartDate, &p.EndDate,
		&p.MemberCount, &p.CreatedAt, &p.UpdatedAt)
	p.Status = project.Status(status)
	return p, err
}

func scanMember(row database.Row) (project.Member, error) {
	var m project.Member
	err := row.Scan(&m.ID, &m.ProjectID, &m.EmployeeID, &m.EmployeeName, &m.Role, &m.Allocation, &m.JoinedAt)
	return m, err
}
