package seeder

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the login password of every demo employee.
const DemoPassword = "demo-password-123"

// Fixed ids keep the demo seeders idempotent.
var (
	demoAlice = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000001")
	demoBob   = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000002")
	demoCarol = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000003")
	demoDan   = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000004")

	demoClientAcme   = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000101")
	demoClientGlobex = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000102")

	demoProjectPortal  = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000201")
	demoProjectMigrate = uuid.MustParse("0b1e6c2a-0000-4000-8000-000000000202")
)

type demoEmployee struct {
	ID         uuid.UUID
	Email      string
	Name       string
	Department string
	Position   string
	Role       string
	Skills     []demoSkill
}

type demoSkill struct {
	Name  string
	Level int
	Years float64
}

var demoEmployees = []demoEmployee{
	{
		ID: demoAlice, Email: "alice@example.com", Name: "Alice Hartono", Department: "Engineering",
		Position: "Senior Backend Engineer", Role: "manager",
		Skills: []demoSkill{{"Go", 5, 6}, {"PostgreSQL", 4, 5}, {"Docker", 4, 4}, {"Kubernetes", 3, 2}},
	},
	{
		ID: demoBob, Email: "bob@example.com", Name: "Bob Santoso", Department: "Engineering",
		Position: "Frontend Engineer", Role: "employee",
		Skills: []demoSkill{{"TypeScript", 4, 3}, {"React", 4, 3}, {"Figma", 2, 1}},
	},
	{
		ID: demoCarol, Email: "carol@example.com", Name: "Carol Wijaya", Department: "Engineering",
		Position: "Platform Engineer", Role: "employee",
		Skills: []demoSkill{{"Kubernetes", 5, 5}, {"Terraform", 4, 4}, {"AWS", 4, 4}, {"Go", 3, 2}},
	},
	{
		ID: demoDan, Email: "dan@example.com", Name: "Dan Pratama", Department: "Delivery",
		Position: "Project Manager", Role: "admin",
		Skills: []demoSkill{{"Project Management", 5, 8}, {"Scrum", 4, 6}},
	},
}

type DemoEmployeesSeeder struct{}

func (DemoEmployeesSeeder) Name() string { return "demo_employees" }

func (DemoEmployeesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "employees", "id", "email", "password_hash", "role", "is_active"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "employee_skills", "id", "employee_id", "skill_id", "proficiency_level", "years_experience"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range demoEmployees {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO employees (id, email, password_hash, name, department, position, role, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			 ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Email, string(hash), e.Name, e.Department, e.Position, e.Role,
		)
		if err != nil {
			return fmt.Errorf("employee %s: %w", e.Email, err)
		}
		for _, s := range e.Skills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO employee_skills (id, employee_id, skill_id, proficiency_level, years_experience)
				 SELECT gen_random_uuid(), $1, s.id, $3, $4 FROM skills s WHERE s.name = $2
				 ON CONFLICT (employee_id, skill_id) DO NOTHING`,
				e.ID, s.Name, s.Level, s.Years,
			)
			if err != nil {
				return fmt.Errorf("employee skill %s/%s: %w", e.Email, s.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type demoRequirement struct {
	Skill      string
	Importance int
	Required   *int
}

type demoProject struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Name     string
	Status   string
	EndDate  *time.Time
	Needs    []demoRequirement
	Members  []demoMember
}

type demoMember struct {
	EmployeeID uuid.UUID
	Role       string
	Allocation float64
}

func level(n int) *int { return &n }

func demoProjects(now time.Time) []demoProject {
	end := now.AddDate(0, 2, 0)
	return []demoProject{
		{
			ID: demoProjectPortal, ClientID: demoClientAcme, Name: "Customer Portal", Status: "in_progress",
			EndDate: &end,
			Needs: []demoRequirement{
				{Skill: "TypeScript", Importance: 5, Required: level(4)},
				{Skill: "React", Importance: 4, Required: level(3)},
				{Skill: "Go", Importance: 3},
			},
			Members: []demoMember{{EmployeeID: demoBob, Role: "Frontend", Allocation: 0.5}},
		},
		{
			ID: demoProjectMigrate, ClientID: demoClientGlobex, Name: "Cloud Migration", Status: "planning",
			Needs: []demoRequirement{
				{Skill: "Kubernetes", Importance: 5, Required: level(4)},
				{Skill: "Terraform", Importance: 4},
				{Skill: "AWS", Importance: 4, Required: level(3)},
				{Skill: "Go", Importance: 2},
			},
		},
	}
}

type DemoProjectsSeeder struct{}

func (DemoProjectsSeeder) Name() string { return "demo_projects" }

func (DemoProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "projects", "id", "name", "client_id", "status", "end_date"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "project_skills", "id", "project_id", "skill_id", "importance_level", "required_level"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "project_members", "id", "project_id", "employee_id", "role", "allocation"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	clients := []struct {
		ID   uuid.UUID
		Name string
	}{
		{ID: demoClientAcme, Name: "Acme Retail"},
		{ID: demoClientGlobex, Name: "Globex Logistics"},
	}
	for _, c := range clients {
		if _, err := tx.Exec(ctx, `INSERT INTO clients (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, c.ID, c.Name); err != nil {
			return fmt.Errorf("client %s: %w", c.Name, err)
		}
	}

	for _, p := range demoProjects(time.Now().UTC()) {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO projects (id, name, client_id, status, end_date)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.ClientID, p.Status, p.EndDate,
		)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Name, err)
		}
		for _, n := range p.Needs {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO project_skills (id, project_id, skill_id, importance_level, required_level)
				 SELECT gen_random_uuid(), $1, s.id, $3, $4 FROM skills s WHERE s.name = $2
				 ON CONFLICT (project_id, skill_id) DO NOTHING`,
				p.ID, n.Skill, n.Importance, n.Required,
			)
			if err != nil {
				return fmt.Errorf("project skill %s/%s: %w", p.Name, n.Skill, err)
			}
		}
		for _, m := range p.Members {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO project_members (id, project_id, employee_id, role, allocation)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4)
				 ON CONFLICT (project_id, employee_id) DO NOTHING`,
				p.ID, m.EmployeeID, m.Role, m.Allocation,
			)
			if err != nil {
				return fmt.Errorf("project member %s: %w", p.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
