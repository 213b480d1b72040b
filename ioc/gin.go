package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/cpinsight/internal/analytics"
	"github.com/ecodeclub/cpinsight/internal/ingest"
	"github.com/ecodeclub/cpinsight/internal/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(
	ingestHdl *ingest.Handler,
	analyticsHdl *analytics.Handler,
) *egin.Component {
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			// 本地前端直连
			return strings.HasPrefix(origin, "http://localhost")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	ingestHdl.PublicRoutes(res.Engine)
	analyticsHdl.PublicRoutes(res.Engine)
	return res
}
