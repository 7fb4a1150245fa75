package repository

import (
	"context"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/database/postgres"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrEmployeeSkillNotFound  = errors.New("employee skill not found")
	ErrEmployeeSkillForbidden = errors.New("forbidden")
	ErrEmployeeSkillExists    = errors.New("employee skill already exists")
)

const employeeSkillSelect = `SELECT es.id, es.employee_id, es.skill_id, s.name, s.category,
	es.proficiency_level, es.years_experience, es.updated_at
	FROM employee_skills es
	JOIN skills s ON s.id = es.skill_id`

type EmployeeSkillRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.EmployeeSkill, error)
	Create(ctx context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error)
	Update(ctx context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error)
	Delete(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error
}

type PostgresEmployeeSkillRepository struct {
	db database.DB
}

func NewPostgresEmployeeSkillRepository(db database.DB) *PostgresEmployeeSkillRepository {
	return &PostgresEmployeeSkillRepository{db: db}
}

func (r *PostgresEmployeeSkillRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.EmployeeSkill, error) {
	rows, err := r.db.Query(ctx, employeeSkillSelect+` WHERE es.employee_id = $1 ORDER BY s.name ASC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.EmployeeSkill, 0)
	for rows.Next() {
		es, err := scanEmployeeSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, es)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeSkillRepository) Create(ctx context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employee_skills (id, employee_id, skill_id, proficiency_level, years_experience)
		 VALUES ($1, $2, $3, $4, $5)`,
		es.ID, es.EmployeeID, es.SkillID, es.ProficiencyLevel, es.YearsExperience,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return skill.EmployeeSkill{}, ErrEmployeeSkillExists
		case postgres.IsForeignKeyViolation(err):
			return skill.EmployeeSkill{}, ErrSkillNotFound
		}
		return skill.EmployeeSkill{}, err
	}
	return r.findOwned(ctx, es.ID, es.EmployeeID)
}

func (r *PostgresEmployeeSkillRepository) Update(ctx context.Context, es skill.EmployeeSkill) (skill.EmployeeSkill, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE employee_skills
		 SET proficiency_level = $1, years_experience = $2, updated_at = now()
		 WHERE id = $3 AND employee_id = $4`,
		es.ProficiencyLevel, es.YearsExperience, es.ID, es.EmployeeID,
	)
	if err != nil {
		return skill.EmployeeSkill{}, err
	}
	if n == 0 {
		return skill.EmployeeSkill{}, ErrEmployeeSkillNotFound
	}
	return r.findOwned(ctx, es.ID, es.EmployeeID)
}

func (r *PostgresEmployeeSkillRepository) Delete(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error {
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT employee_id FROM employee_skills WHERE id = $1`, id).Scan(&owner); err != nil {
		if postgres.IsNoRows(err) {
			return ErrEmployeeSkillNotFound
		}
		return err
	}
	if owner != employeeID {
		return ErrEmployeeSkillForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM employee_skills WHERE id = $1`, id)
	return err
}

func (r *PostgresEmployeeSkillRepository) findOwned(ctx context.Context, id, employeeID uuid.UUID) (skill.EmployeeSkill, error) {
	row := r.db.QueryRow(ctx, employeeSkillSelect+` WHERE es.id = $1 AND es.employee_id = $2`, id, employeeID)
	es, err := scanEmployeeSkill(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return skill.EmployeeSkill{}, ErrEmployeeSkillNotFound
		}
		return skill.EmployeeSkill{}, err
	}
	return es, nil
}

func scanEmployeeSkill(row database.Row) (skill.EmployeeSkill, error) {
	var es skill.EmployeeSkill
	err := row.Scan(&es.ID, &es.EmployeeID, &es.SkillID, &es.SkillName, &es.SkillCategory,
		&es.ProficiencyLevel, &es.YearsExperience, &es.UpdatedAt)
	return es, err
}
