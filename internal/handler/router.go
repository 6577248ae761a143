package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Users    *api.UserHandler
	Items    *api.ItemHandler
	Bookings *api.BookingHandler
	Requests *api.RequestHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, identity *middleware.IdentityMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, identity)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, identity *middleware.IdentityMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	caller := []gin.HandlerFunc{identity.RequireUser()}

	users := engine.Group("/users")
	{
		addRoutes(users, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Users.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Users.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Users.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Users.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.Delete},
		})
	}

	items := engine.Group("/items")
	{
		addRoutes(items, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Items.Create, Mw: caller},
			{Method: http.MethodGet, Path: "", Handler: h.Items.ListOwn, Mw: caller},
			{Method: http.MethodGet, Path: "/search", Handler: h.Items.Search},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Items.Get, Mw: caller},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Items.Update, Mw: caller},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Items.Delete, Mw: caller},
			{Method: http.MethodPost, Path: "/:id/comment", Handler: h.Items.AddComment, Mw: caller},
		})
	}

	bookings := engine.Group("/bookings")
	bookings.Use(caller...)
	{
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Bookings.ListForBooker},
			{Method: http.MethodGet, Path: "/owner", Handler: h.Bookings.ListForOwner},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Bookings.Decide},
		})
	}

	requests := engine.Group("/requests")
	requests.Use(caller...)
	{
		addRoutes(requests, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Requests.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Requests.ListOwn},
			{Method: http.MethodGet, Path: "/all", Handler: h.Requests.ListOthers},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Requests.Get},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
