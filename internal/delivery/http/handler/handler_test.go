package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/employee"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMatchingUC struct {
	gotWeights matching.RawWeights
	gotReq     usecase.RecommendationRequest
	err        error
}

func (f *fakeMatchingUC) RunMatching(_ context.Context, projectID uuid.UUID, w matching.RawWeights) (matching.Result, error) {
	f.gotWeights = w
	if f.err != nil {
		return matching.Result{}, f.err
	}
	return matching.Result{Project: matching.ProjectSummary{ID: projectID}, WeightsUsed: matching.DefaultWeights()}, nil
}

func (f *fakeMatchingUC) Recommend(_ context.Context, _ uuid.UUID, req usecase.RecommendationRequest) (usecase.Recommendations, error) {
	f.gotReq = req
	if f.err != nil {
		return usecase.Recommendations{}, f.err
	}
	return usecase.Recommendations{TotalCandidates: 3}, nil
}

type fakeSkillUC struct{ created []string }

func (f *fakeSkillUC) ListSkills(context.Context) ([]skill.Skill, error) { return nil, nil }
func (f *fakeSkillUC) AddSkill(_ context.Context, name, category string) (skill.Skill, error) {
	f.created = append(f.created, name)
	return skill.Skill{ID: uuid.New(), Name: name, Category: category}, nil
}

// asRole stands in for the auth middleware.
func asRole(role employee.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(middleware.CtxEmployeeIDKey, uuid.New())
		c.Locals(middleware.CtxRoleKey, role)
		return c.Next()
	}
}

func newTestApp(role employee.Role, register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(zap.NewNop()).Middleware())
	api := app.Group("/api/v1", asRole(role))
	register(api)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, response.SemanticResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestMatchingHandler_RunMatching(t *testing.T) {
	uc := &fakeMatchingUC{}
	app := newTestApp(employee.RoleManager, NewMatchingHandler(uc, validation.New()).RegisterRoutes)
	projectID := uuid.New()

	status, body := do(t, app, fiber.MethodPost, "/api/v1/projects/"+projectID.String()+"/matching", `{"skill_weight":1,"experience_weight":0}`)
	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, uc.gotWeights.Skill)
	assert.Equal(t, 1.0, *uc.gotWeights.Skill)
	require.NotNil(t, uc.gotWeights.Experience)
	assert.Nil(t, uc.gotWeights.Availability)
	data := body.Data.(map[string]any)
	assert.Equal(t, projectID.String(), data["project"].(map[string]any)["id"])

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/projects/"+projectID.String()+"/matching", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, uc.gotWeights.Skill)
}

func TestMatchingHandler_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{usecase.ErrInvalidWeights, fiber.StatusBadRequest},
		{usecase.ErrProjectNotFound, fiber.StatusNotFound},
		{usecase.ErrNoCandidates, fiber.StatusBadRequest},
		{matching.ErrInconsistentData, fiber.StatusInternalServerError},
		{usecase.ErrInternal, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := newTestApp(employee.RoleAdmin, NewMatchingHandler(&fakeMatchingUC{err: tc.err}, validation.New()).RegisterRoutes)
		status, _ := do(t, app, fiber.MethodPost, "/api/v1/projects/"+uuid.NewString()+"/matching", "")
		assert.Equal(t, tc.status, status, tc.err.Error())
	}

	app := newTestApp(employee.RoleAdmin, NewMatchingHandler(&fakeMatchingUC{}, validation.New()).RegisterRoutes)
	status, _ := do(t, app, fiber.MethodPost, "/api/v1/projects/not-a-uuid/matching", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMatchingHandler_RequiresManager(t *testing.T) {
	app := newTestApp(employee.RoleEmployee, NewMatchingHandler(&fakeMatchingUC{}, validation.New()).RegisterRoutes)
	status, _ := do(t, app, fiber.MethodPost, "/api/v1/projects/"+uuid.NewString()+"/matching", "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestMatchingHandler_Recommendations(t *testing.T) {
	uc := &fakeMatchingUC{}
	app := newTestApp(employee.RoleManager, NewMatchingHandler(uc, validation.New()).RegisterRoutes)
	base := "/api/v1/projects/" + uuid.NewString() + "/recommendations"

	status, body := do(t, app, fiber.MethodGet, base+"?limit=5&min_score=40&department=Engineering", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 5, uc.gotReq.Limit)
	require.NotNil(t, uc.gotReq.MinScore)
	assert.Equal(t, 40.0, *uc.gotReq.MinScore)
	assert.Equal(t, "Engineering", uc.gotReq.Department)
	assert.Equal(t, float64(3), body.Data.(map[string]any)["total_candidates"])

	status, body = do(t, app, fiber.MethodGet, base+"?limit=500", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.NotNil(t, body.Data)
}

func TestSkillHandler_CreateRequiresRole(t *testing.T) {
	uc := &fakeSkillUC{}

	app := newTestApp(employee.RoleEmployee, NewSkillHandler(uc, validation.New()).RegisterRoutes)
	status, _ := do(t, app, fiber.MethodPost, "/api/v1/skills", `{"name":"Go"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, fiber.MethodGet, "/api/v1/skills", "")
	assert.Equal(t, fiber.StatusOK, status)

	app = newTestApp(employee.RoleManager, NewSkillHandler(uc, validation.New()).RegisterRoutes)
	status, _ = do(t, app, fiber.MethodPost, "/api/v1/skills", `{"name":"Go","category":"backend"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, []string{"Go"}, uc.created)

	status, _ = do(t, app, fiber.MethodPost, "/api/v1/skills", `{"category":"backend"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
