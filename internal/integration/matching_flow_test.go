package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"talent-match/internal/app"
	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "integration-pass-1"

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendation struct {
	Employee struct {
		ID uuid.UUID `json:"id"`
	} `json:"employee"`
	Scores struct {
		Total float64 `json:"total"`
	} `json:"scores"`
	MissingSkills []string `json:"missing_skills"`
}

type recommendationsData struct {
	Recommendations []recommendation `json:"recommendations"`
	TotalCandidates int              `json:"total_candidates"`
}

type matchingData struct {
	Summary struct {
		TotalCandidates int `json:"total_candidates"`
	} `json:"summary"`
	Categorized map[string][]recommendation `json:"categorized_recommendations"`
}

type fixture struct {
	department string
	managerID  uuid.UUID
	strongID   uuid.UUID
	weakID     uuid.UUID
	clientID   uuid.UUID
	projectID  uuid.UUID
	otherID    uuid.UUID
	skills     map[string]uuid.UUID
}

func TestIntegration_MatchingFlow(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	sqlDB, err := dbpostgres.OpenSQL(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, migration.Runner{Dir: cfg.Database.MigrationsDir}.Up(sqlDB))

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	fx := seed(t, ctx, db)
	defer cleanup(ctx, db, fx)

	a, closeApp, err := app.Bootstrap(cfg, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = closeApp() }()

	managerTok := login(t, a.Fiber, "manager-"+fx.department+"@example.com")
	weakTok := login(t, a.Fiber, "weak-"+fx.department+"@example.com")

	t.Run("employees cannot run matching", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodPost, "/api/v1/projects/"+fx.projectID.String()+"/matching", weakTok, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.Status)
	})

	t.Run("unknown project", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodPost, "/api/v1/projects/"+uuid.NewString()+"/matching", managerTok, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.Status)
	})

	t.Run("full matching result", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodPost, "/api/v1/projects/"+fx.projectID.String()+"/matching", managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)

		var data matchingData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.GreaterOrEqual(t, data.Summary.TotalCandidates, 3)

		seen := map[uuid.UUID]bool{}
		for _, tier := range data.Categorized {
			for _, c := range tier {
				seen[c.Employee.ID] = true
			}
		}
		assert.True(t, seen[fx.strongID])
		assert.True(t, seen[fx.weakID])
		assert.False(t, seen[fx.otherID], "current project members are excluded")
	})

	path := "/api/v1/projects/" + fx.projectID.String() + "/recommendations?min_score=0&department=" + fx.department

	var before recommendationsData
	t.Run("recommendations ranked", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodGet, path, managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)
		require.NoError(t, json.Unmarshal(resp.Data, &before))

		require.Len(t, before.Recommendations, 3)
		assert.Equal(t, fx.strongID, before.Recommendations[0].Employee.ID)
		for i := 1; i < len(before.Recommendations); i++ {
			assert.GreaterOrEqual(t, before.Recommendations[i-1].Scores.Total, before.Recommendations[i].Scores.Total)
		}
		assert.Contains(t, missingFor(before, fx.weakID), "PostgreSQL "+fx.department)
	})

	t.Run("skill change invalidates cached results", func(t *testing.T) {
		body := map[string]any{
			"skill_id":          fx.skills["PostgreSQL"],
			"proficiency_level": 5,
			"years_experience":  6,
		}
		resp := do(t, a.Fiber, fiber.MethodPost, "/api/v1/me/skills", weakTok, body)
		require.Equal(t, fiber.StatusCreated, resp.Status, resp.Message)

		resp = do(t, a.Fiber, fiber.MethodGet, path, managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)

		var after recommendationsData
		require.NoError(t, json.Unmarshal(resp.Data, &after))
		assert.NotContains(t, missingFor(after, fx.weakID), "PostgreSQL "+fx.department)
		assert.Greater(t, scoreFor(after, fx.weakID), scoreFor(before, fx.weakID))
	})

	t.Run("membership writes move the candidate pool", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodPost, "/api/v1/projects/"+fx.projectID.String()+"/members", managerTok, map[string]any{
			"employee_id": fx.weakID,
			"role":        "Developer",
			"allocation":  0.5,
		})
		require.Equal(t, fiber.StatusCreated, resp.Status, resp.Message)

		var member struct {
			ID uuid.UUID `json:"id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &member))

		resp = do(t, a.Fiber, fiber.MethodGet, path, managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)
		var during recommendationsData
		require.NoError(t, json.Unmarshal(resp.Data, &during))
		assert.Equal(t, float64(-1), scoreFor(during, fx.weakID), "new members leave the pool")

		resp = do(t, a.Fiber, fiber.MethodDelete, "/api/v1/projects/"+fx.projectID.String()+"/members/"+member.ID.String(), managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)

		resp = do(t, a.Fiber, fiber.MethodGet, path, managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)
		var after recommendationsData
		require.NoError(t, json.Unmarshal(resp.Data, &after))
		assert.Greater(t, scoreFor(after, fx.weakID), float64(-1))
	})

	t.Run("requirement replacement changes missing skills", func(t *testing.T) {
		resp := do(t, a.Fiber, fiber.MethodPut, "/api/v1/projects/"+fx.projectID.String(), managerTok, map[string]any{
			"skills": []map[string]any{{"skill_id": fx.skills["Docker"], "importance_level": 5, "required_level": 3}},
		})
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)

		resp = do(t, a.Fiber, fiber.MethodGet, path, managerTok, nil)
		require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)
		var after recommendationsData
		require.NoError(t, json.Unmarshal(resp.Data, &after))
		assert.Equal(t, []string{"Docker " + fx.department}, missingFor(after, fx.weakID))
	})
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := os.Getenv("TALENT_TEST_DB_HOST")
	name := os.Getenv("TALENT_TEST_DB_NAME")
	user := os.Getenv("TALENT_TEST_DB_USER")
	if host == "" || name == "" || user == "" {
		t.Skip("set TALENT_TEST_DB_HOST, TALENT_TEST_DB_NAME and TALENT_TEST_DB_USER to run integration tests")
	}

	return config.Config{
		App: config.AppConfig{AppName: "talent-match-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:         host,
			DBPort:         stringsOrDefault(os.Getenv("TALENT_TEST_DB_PORT"), "5432"),
			DBName:         name,
			DBUser:         user,
			DBPassword:     os.Getenv("TALENT_TEST_DB_PASSWORD"),
			DBSSLMode:      stringsOrDefault(os.Getenv("TALENT_TEST_DB_SSL_MODE"), "disable"),
			ConnectTimeout: 5 * time.Second,
			MigrationsDir:  migrationsDir(t),
		},
		Redis: config.RedisConfig{Addr: os.Getenv("TALENT_TEST_REDIS_ADDR")},
		JWT: config.JWTConfig{
			Secret:     "integration-secret",
			Issuer:     "talent-match-test",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
		},
		Matching: config.MatchingConfig{CacheTTL: time.Minute, RecommendationLimit: 10},
	}
}

func migrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")
	st, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, st.IsDir())
	return dir
}

func seed(t *testing.T, ctx context.Context, db database.DB) fixture {
	t.Helper()

	suffix := uuid.NewString()[:8]
	fx := fixture{
		department: "it-" + suffix,
		managerID:  uuid.New(),
		strongID:   uuid.New(),
		weakID:     uuid.New(),
		otherID:    uuid.New(),
		clientID:   uuid.New(),
		projectID:  uuid.New(),
		skills:     map[string]uuid.UUID{},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	for _, name := range []string{"Go", "PostgreSQL", "Docker"} {
		id := uuid.New()
		exec(t, ctx, db, `INSERT INTO skills (id, name, category) VALUES ($1, $2, 'Test')`, id, name+" "+fx.department)
		fx.skills[name] = id
	}

	employees := []struct {
		id   uuid.UUID
		kind string
		role string
	}{
		{fx.managerID, "manager", "manager"},
		{fx.strongID, "strong", "employee"},
		{fx.weakID, "weak", "employee"},
		{fx.otherID, "other", "employee"},
	}
	for _, e := range employees {
		exec(t, ctx, db,
			`INSERT INTO employees (id, email, password_hash, name, department, position, role)
			 VALUES ($1, $2, $3, $4, $5, 'Engineer', $6)`,
			e.id, e.kind+"-"+fx.department+"@example.com", string(hash), e.kind, fx.department, e.role,
		)
	}

	addSkill := func(employeeID uuid.UUID, skill string, level int, years float64) {
		exec(t, ctx, db,
			`INSERT INTO employee_skills (id, employee_id, skill_id, proficiency_level, years_experience)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), employeeID, fx.skills[skill], level, years,
		)
	}
	addSkill(fx.strongID, "Go", 5, 6)
	addSkill(fx.strongID, "PostgreSQL", 4, 4)
	addSkill(fx.strongID, "Docker", 4, 3)
	addSkill(fx.weakID, "Go", 2, 1)
	addSkill(fx.otherID, "Go", 5, 8)

	exec(t, ctx, db, `INSERT INTO clients (id, name) VALUES ($1, $2)`, fx.clientID, "Client "+suffix)
	exec(t, ctx, db,
		`INSERT INTO projects (id, name, client_id, status) VALUES ($1, $2, $3, 'planning')`,
		fx.projectID, "Project "+suffix, fx.clientID,
	)
	for skill, importance := range map[string]int{"Go": 5, "PostgreSQL": 4, "Docker": 3} {
		exec(t, ctx, db,
			`INSERT INTO project_skills (id, project_id, skill_id, importance_level) VALUES ($1, $2, $3, $4)`,
			uuid.New(), fx.projectID, fx.skills[skill], importance,
		)
	}
	exec(t, ctx, db,
		`INSERT INTO project_members (id, project_id, employee_id, role, allocation) VALUES ($1, $2, $3, 'Lead', 0.5)`,
		uuid.New(), fx.projectID, fx.otherID,
	)

	return fx
}

func cleanup(ctx context.Context, db database.DB, fx fixture) {
	_, _ = db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, fx.projectID)
	_, _ = db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, fx.clientID)
	_, _ = db.Exec(ctx, `DELETE FROM employees WHERE department = $1`, fx.department)
	for _, id := range fx.skills {
		_, _ = db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	}
}

func exec(t *testing.T, ctx context.Context, db database.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(ctx, query, args...)
	require.NoError(t, err)
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := do(t, app, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.Status, resp.Message)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) envelope {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, resp.StatusCode, env.Status)
	return env
}

func missingFor(d recommendationsData, id uuid.UUID) []string {
	for _, r := range d.Recommendations {
		if r.Employee.ID == id {
			return r.MissingSkills
		}
	}
	return nil
}

func scoreFor(d recommendationsData, id uuid.UUID) float64 {
	for _, r := range d.Recommendations {
		if r.Employee.ID == id {
			return r.Scores.Total
		}
	}
	return -1
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
