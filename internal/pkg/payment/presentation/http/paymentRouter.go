package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/persistence/repository/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/presentation/controller"
)

// RegisterRoutes registers payment endpoints under the given router group.
// All payment routes require an authenticated session; authMW is mounted by
// the caller.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, authMW gin.HandlerFunc) {
	repo := adapter.NewPgPaymentRepository(pool)
	listCtl := controller.NewListPaymentsController(usecase.NewListPaymentsUseCase(repo))
	recordCtl := controller.NewRecordPaymentController(usecase.NewRecordPaymentUseCase(repo))

	// GET /api/v1/payments -> the caller's payment history
	g.GET("/payments", authMW, listCtl.Handle())

	// POST /api/v1/payments -> record a settled charge
	g.POST("/payments", authMW, recordCtl.Handle())
}
