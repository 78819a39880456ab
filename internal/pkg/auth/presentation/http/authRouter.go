package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/controller"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// Deps carries everything the auth endpoints need.
type Deps struct {
	Pool          *pgxpool.Pool
	Cache         cacheport.Cache
	Queue         queueport.Client
	Tokens        token.Issuer
	OTPTTL        time.Duration
	GoogleUserURL string
}

// RegisterRoutes registers auth endpoints under the given router group and
// returns the auth middleware so sibling domains can mount it.
func RegisterRoutes(g *gin.RouterGroup, d Deps) gin.HandlerFunc {
	repo := adapter.NewPgUserRepository(d.Pool)
	authMW := middleware.RequireAuth(d.Tokens, d.Cache)

	registerCtl := controller.NewRegisterController(
		usecase.NewRegisterUseCase(repo, d.Cache, d.Tokens, d.OTPTTL), d.Queue)
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(repo, d.Tokens))
	googleCtl := controller.NewGoogleController(usecase.NewGoogleLoginUseCase(repo, d.Tokens), d.GoogleUserURL)
	verifyCtl := controller.NewVerifyController(usecase.NewVerifyEmailUseCase(repo, d.Cache, d.Tokens))
	logoutCtl := controller.NewLogoutController(usecase.NewLogoutUseCase(d.Cache))
	meCtl := controller.NewMeController(repo)

	// POST /api/v1/auth/register -> create an account, stage the OTP
	g.POST("/auth/register", registerCtl.Handle())

	// POST /api/v1/auth/login -> email/password sign-in
	g.POST("/auth/login", loginCtl.Handle())

	// POST /api/v1/auth/google -> sign-in via a Google access token
	g.POST("/auth/google", googleCtl.Handle())

	// PUT /api/v1/auth/verify -> submit the emailed OTP
	g.PUT("/auth/verify", authMW, verifyCtl.Handle())

	// POST /api/v1/auth/logout -> revoke the presented token
	g.POST("/auth/logout", authMW, logoutCtl.Handle())

	// GET /api/v1/auth/me -> current account from the database
	g.GET("/auth/me", authMW, meCtl.Handle())

	return authMW
}
