package routes

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Skill         *handler.SkillHandler
	EmployeeSkill *handler.EmployeeSkillHandler
	Project       *handler.ProjectHandler
	Client        *handler.ClientHandler
	Matching      *handler.MatchingHandler
	WS            *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	if r.handlers.WS != nil {
		app.Get("/ws/matching", r.handlers.WS.HandleMatchingWS)
	}

	r.registerV1(app.Group("/api/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(v1.Group("/auth"))
	}
	if r.auth == nil {
		return
	}

	protected := v1.Group("", r.auth.Middleware())
	if r.handlers.User != nil {
		r.handlers.User.RegisterRoutes(protected.Group("/users"))
	}
	if r.handlers.Skill != nil {
		r.handlers.Skill.RegisterRoutes(protected)
	}
	if r.handlers.EmployeeSkill != nil {
		r.handlers.EmployeeSkill.RegisterRoutes(protected)
	}
	if r.handlers.Client != nil {
		r.handlers.Client.RegisterRoutes(protected)
	}
	if r.handlers.Project != nil {
		r.handlers.Project.RegisterRoutes(protected)
	}
	if r.handlers.Matching != nil {
		r.handlers.Matching.RegisterRoutes(protected)
	}
}
