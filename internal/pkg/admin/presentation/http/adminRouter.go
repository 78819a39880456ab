package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/admin/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/admin/presentation/controller"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// RegisterRoutes registers admin endpoints under the given router group.
// Every route requires an authenticated admin.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, authMW gin.HandlerFunc) {
	repo := adapter.NewPgUserRepository(pool)
	listCtl := controller.NewListUsersController(usecase.NewListUsersUseCase(repo))
	statusCtl := controller.NewUpdateStatusController(usecase.NewUpdateStatusUseCase(repo))

	admin := g.Group("/admin", authMW, middleware.RequireRole("ADMIN"))

	// GET /api/v1/admin/users -> page through accounts
	admin.GET("/users", listCtl.Handle())

	// PATCH /api/v1/admin/users/:id/status -> suspend or reinstate
	admin.PATCH("/users/:id/status", statusCtl.Handle())
}
