package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nahid515023/MyTutor-App-sub002/internal/config"
	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
	adminHTTP "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/admin/presentation/http"
	authHTTP "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/http"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
	chatHTTP "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/presentation/http"
	meetingHTTP "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/meeting/presentation/http"
	paymentHTTP "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/presentation/http"
)

// Deps bundles the shared infrastructure handed down to every domain.
type Deps struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	Cache  cacheport.Cache
	Queue  queueport.Client
	Rooms  *realtime.Router
}

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")

	tokens := token.Issuer{
		Secret: d.Config.JWTSecret,
		Issuer: d.Config.JWTIssuer,
		TTL:    d.Config.AccessTokenTTL,
	}

	// Auth mounts first and hands back the middleware the other domains
	// gate their routes with.
	authMW := authHTTP.RegisterRoutes(v1, authHTTP.Deps{
		Pool:          d.Pool,
		Cache:         d.Cache,
		Queue:         d.Queue,
		Tokens:        tokens,
		OTPTTL:        d.Config.OTPTTL,
		GoogleUserURL: d.Config.GoogleUserInfoURL,
	})

	chatHTTP.RegisterRoutes(v1, d.Pool, d.Queue, d.Rooms, authMW)
	paymentHTTP.RegisterRoutes(v1, d.Pool, authMW)
	meetingHTTP.RegisterRoutes(v1, authMW)
	adminHTTP.RegisterRoutes(v1, d.Pool, authMW)
}
