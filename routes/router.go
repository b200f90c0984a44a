package routes

import (
	"strings"
	"time"

	"github.com/Kariqs/aroena-api/config"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with every route group mounted. The
// initializers globals must be set up before it is called.
func SetupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middlewares.RegisterValidators()

	server := gin.Default()
	applyTrustedProxies(server, cfg.App.TrustedProxies)
	server.Use(cors.New(corsConfig(cfg.CORS.Origins)))
	server.Use(middlewares.Metrics())

	DefaultRoutes(server)
	UserRoutes(server)
	ServiceRoutes(server)
	OrderRoutes(server)
	AdminRoutes(server, cfg.RateLimit.LoginPerMinute)
	return server
}

// applyTrustedProxies restricts which peers may set the client IP through
// forwarding headers. An invalid list falls back to trusting no one.
func applyTrustedProxies(server *gin.Engine, proxies []string) {
	trusted := make([]string, 0, len(proxies))
	for _, proxy := range proxies {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			trusted = append(trusted, proxy)
		}
	}

	if len(trusted) == 0 {
		_ = server.SetTrustedProxies(nil)
		return
	}
	if err := server.SetTrustedProxies(trusted); err != nil {
		utils.Logger.Warn("invalid TRUSTED_PROXIES, trusting no proxy", "error", err)
		_ = server.SetTrustedProxies(nil)
	}
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Credentials rule out a literal "*", so reflect the caller's origin.
		corsCfg.AllowOriginFunc = func(string) bool { return true }
		return corsCfg
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}
