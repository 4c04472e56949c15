package web

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func MetricsRoutes(server *gin.Engine) {
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
