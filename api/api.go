package api

import (
	"fmt"
	"net/http"
	"time"
	"trendalgo/internal/app"
	"trendalgo/internal/logger"
	"trendalgo/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	TrendAlgoApp app.TrendAlgoApp
	Metrics      *metrics.Recorder
	JwtSecret    string
	Logger       *zap.SugaredLogger
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to trendalgo"})
	})
	if m.Metrics != nil {
		router.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
	}

	authorized := router.Group("/")
	authorized.Use(m.authMiddleware())
	authorized.POST("/ingest", m.ingest)
	authorized.POST("/run", m.run)
	authorized.GET("/prices/:ticker", m.getPrices)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, http.StatusInternalServerError)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddleware attaches a request scoped logger to the request
// context and logs the outcome of every request
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	log := m.Logger
	if log == nil {
		log = logger.FromContext(c.Request.Context())
	}
	log = log.With("requestId", uuid.NewString())
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))

	start := time.Now().UTC()
	c.Next()

	log.Infow(
		"handled request",
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
