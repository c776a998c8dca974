package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"polydoc.ai/translate-api-gateway/app/interfaces/http/middleware"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

type HttpServer struct {
	engine   *gin.Engine
	apiRoute *api.ApiRoute
}

func NewHttpServer(apiRoute *api.ApiRoute) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:   gin.New(),
		apiRoute: apiRoute,
	}
	server.engine.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(logger.GetLogger()),
		middleware.CORS(),
	)
	server.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.APP_PORT
	httpServer.apiRoute.RegisterRouter(httpServer.engine.Group("/"))
	return httpServer.engine.Run(fmt.Sprintf(":%d", port))
}
