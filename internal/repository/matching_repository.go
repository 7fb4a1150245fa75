package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/database/postgres"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRecord struct {
	ID       uuid.UUID
	Name     string
	ClientID *uuid.UUID
	Status   string
}

type RequirementRecord struct {
	SkillID         uuid.UUID
	ImportanceLevel int
	RequiredLevel   *int
}

type CatalogSkill struct {
	ID       uuid.UUID
	Name     string
	Category string
}

type CandidateRecord struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Department string
	Position   string
}

type EmployeeSkillRecord struct {
	EmployeeID       uuid.UUID
	SkillID          uuid.UUID
	ProficiencyLevel int
	YearsExperience  float64
}

// AssignmentRecord is one project membership of a candidate together with the
// required skills of that project.
type AssignmentRecord struct {
	EmployeeID uuid.UUID
	ProjectID  uuid.UUID
	ClientID   *uuid.UUID
	Status     string
	Allocation float64
	EndDate    *time.Time
	SkillIDs   []uuid.UUID
}

// MatchingSnapshot is every row one matching run reads, loaded from a single
// consistent view of the database.
type MatchingSnapshot struct {
	Project        ProjectRecord
	Requirements   []RequirementRecord
	Catalog        []CatalogSkill
	Candidates     []CandidateRecord
	EmployeeSkills []EmployeeSkillRecord
	Assignments    []AssignmentRecord
}

// PoolFilter narrows the candidate pool. Zero value means every eligible employee.
type PoolFilter struct {
	Department string
}

type MatchingRepository interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (ProjectRecord, error)
	DataVersion(ctx context.Context) (string, error)
	LoadSnapshot(ctx context.Context, projectID uuid.UUID, filter PoolFilter) (MatchingSnapshot, error)
}

type PostgresMatchingRepository struct {
	db database.DB
}

func NewPostgresMatchingRepository(db database.DB) *PostgresMatchingRepository {
	return &PostgresMatchingRepository{db: db}
}

func (r *PostgresMatchingRepository) GetProject(ctx context.Context, projectID uuid.UUID) (ProjectRecord, error) {
	return getProject(ctx, r.db, projectID)
}

// DataVersion fingerprints every table the engine reads. Any insert, update or
// delete on them changes the returned value.
func (r *PostgresMatchingRepository) DataVersion(ctx context.Context) (string, error) {
	var v string
	row := r.db.QueryRow(ctx, dataVersionQuery)
	if err := row.Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

var dataVersionTables = []string{
	"employees",
	"skills",
	"employee_skills",
	"clients",
	"projects",
	"project_skills",
	"project_members",
}

var dataVersionQuery = func() string {
	parts := make([]string, 0, len(dataVersionTables))
	for _, t := range dataVersionTables {
		parts = append(parts, `(SELECT count(*)::text || ':' || COALESCE(max(updated_at)::text, '') FROM `+t+`)`)
	}
	return `SELECT concat_ws('|', ` + strings.Join(parts, ", ") + `)`
}()

func (r *PostgresMatchingRepository) LoadSnapshot(ctx context.Context, projectID uuid.UUID, filter PoolFilter) (MatchingSnapshot, error) {
	tx, err := r.db.BeginSnapshot(ctx)
	if err != nil {
		return MatchingSnapshot{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var snap MatchingSnapshot
	if snap.Project, err = getProject(ctx, tx, projectID); err != nil {
		return MatchingSnapshot{}, err
	}
	if snap.Requirements, err = listRequirements(ctx, tx, projectID); err != nil {
		return MatchingSnapshot{}, err
	}

	skillIDs := make([]uuid.UUID, 0, len(snap.Requirements))
	for _, req := range snap.Requirements {
		skillIDs = append(skillIDs, req.SkillID)
	}
	if snap.Catalog, err = listCatalog(ctx, tx, skillIDs); err != nil {
		return MatchingSnapshot{}, err
	}

	if snap.Candidates, err = listCandidates(ctx, tx, projectID, filter); err != nil {
		return MatchingSnapshot{}, err
	}
	employeeIDs := make([]uuid.UUID, 0, len(snap.Candidates))
	for _, c := range snap.Candidates {
		employeeIDs = append(employeeIDs, c.ID)
	}
	if snap.EmployeeSkills, err = listEmployeeSkills(ctx, tx, employeeIDs); err != nil {
		return MatchingSnapshot{}, err
	}
	if snap.Assignments, err = listAssignments(ctx, tx, employeeIDs); err != nil {
		return MatchingSnapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return MatchingSnapshot{}, err
	}
	return snap, nil
}

func getProject(ctx context.Context, q database.Querier, projectID uuid.UUID) (ProjectRecord, error) {
	var p ProjectRecord
	row := q.QueryRow(ctx, `SELECT id, name, client_id, status FROM projects WHERE id = $1`, projectID)
	if err := row.Scan(&p.ID, &p.Name, &p.ClientID, &p.Status); err != nil {
		if postgres.IsNoRows(err) {
			return ProjectRecord{}, ErrProjectNotFound
		}
		return ProjectRecord{}, err
	}
	return p, nil
}

func listRequirements(ctx context.Context, q database.Querier, projectID uuid.UUID) ([]RequirementRecord, error) {
	rows, err := q.Query(ctx,
		`SELECT skill_id, importance_level, required_level
		 FROM project_skills
		 WHERE project_id = $1
		 ORDER BY importance_level DESC, skill_id ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RequirementRecord, 0)
	for rows.Next() {
		var rr RequirementRecord
		if err := rows.Scan(&rr.SkillID, &rr.ImportanceLevel, &rr.RequiredLevel); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func listCatalog(ctx context.Context, q database.Querier, skillIDs []uuid.UUID) ([]CatalogSkill, error) {
	if len(skillIDs) == 0 {
		return []CatalogSkill{}, nil
	}
	query, args, err := sqrl.Select("id", "name", "category").
		From("skills").
		Where(sqrl.Eq{"id": skillIDs}).
		OrderBy("name ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CatalogSkill, 0, len(skillIDs))
	for rows.Next() {
		var s CatalogSkill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// poolQuery selects active employees that are not members of the target project.
func poolQuery(projectID uuid.UUID, filter PoolFilter) (string, []any, error) {
	b := sqrl.Select("e.id", "e.name", "e.email", "e.department", "e.position").
		From("employees e").
		Where(sqrl.Eq{"e.is_active": true}).
		Where("NOT EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = ? AND pm.employee_id = e.id)", projectID)

	if dept := strings.TrimSpace(filter.Department); dept != "" {
		b = b.Where(sqrl.Eq{"e.department": dept})
	}

	return b.OrderBy("e.id ASC").PlaceholderFormat(sqrl.Dollar).ToSql()
}

func listCandidates(ctx context.Context, q database.Querier, projectID uuid.UUID, filter PoolFilter) ([]CandidateRecord, error) {
	query, args, err := poolQuery(projectID, filter)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateRecord, 0)
	for rows.Next() {
		var c CandidateRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Department, &c.Position); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func listEmployeeSkills(ctx context.Context, q database.Querier, employeeIDs []uuid.UUID) ([]EmployeeSkillRecord, error) {
	if len(employeeIDs) == 0 {
		return []EmployeeSkillRecord{}, nil
	}
	query, args, err := sqrl.Select("employee_id", "skill_id", "proficiency_level", "years_experience").
		From("employee_skills").
		Where(sqrl.Eq{"employee_id": employeeIDs}).
		OrderBy("employee_id ASC", "skill_id ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EmployeeSkillRecord, 0)
	for rows.Next() {
		var es EmployeeSkillRecord
		if err := rows.Scan(&es.EmployeeID, &es.SkillID, &es.ProficiencyLevel, &es.YearsExperience); err != nil {
			return nil, err
		}
		out = append(out, es)
	}
	return out, rows.Err()
}

func assignmentsQuery(employeeIDs []uuid.UUID) (string, []any, error) {
	return sqrl.Select(
		"pm.employee_id",
		"p.id",
		"p.client_id",
		"p.status",
		"pm.allocation",
		"p.end_date",
		"COALESCE(array_agg(ps.skill_id ORDER BY ps.skill_id) FILTER (WHERE ps.skill_id IS NOT NULL), '{}')",
	).
		From("project_members pm").
		Join("projects p ON p.id = pm.project_id").
		LeftJoin("project_skills ps ON ps.project_id = p.id").
		Where(sqrl.Eq{"pm.employee_id": employeeIDs}).
		GroupBy("pm.employee_id", "p.id", "p.client_id", "p.status", "pm.allocation", "p.end_date").
		OrderBy("pm.employee_id ASC", "p.id ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
}

func listAssignments(ctx context.Context, q database.Querier, employeeIDs []uuid.UUID) ([]AssignmentRecord, error) {
	if len(employeeIDs) == 0 {
		return []AssignmentRecord{}, nil
	}
	query, args, err := assignmentsQuery(employeeIDs)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AssignmentRecord, 0)
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.EmployeeID, &a.ProjectID, &a.ClientID, &a.Status, &a.Allocation, &a.EndDate, &a.SkillIDs); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
