package handler

import (
	"net/http"
	"os"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/BloggingApp/community-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	services       *service.Service
	logger         *zap.Logger
	metricsHandler http.Handler
	accessSecret   []byte
}

func New(services *service.Service, logger *zap.Logger, metricsHandler http.Handler) *Handler {
	return &Handler{
		services:       services,
		logger:         logger,
		metricsHandler: metricsHandler,
		accessSecret:   []byte(os.Getenv("ACCESS_SECRET")),
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), h.requestIDMiddleware)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientOrigin()},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	if h.metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(h.metricsHandler))
	}

	v1 := r.Group("/api/v1")
	{
		site := v1.Group("/sites/:siteID", h.siteMiddleware)
		{
			comments := site.Group("/comments")
			{
				comments.POST("", h.authMiddleware, h.commentsCreate)

				comment := comments.Group("/:commentID")
				{
					comment.GET("", h.commentsGetByID)
					comment.PATCH("", h.authMiddleware, h.commentsEdit)
					comment.DELETE("", h.authMiddleware, h.commentsDelete)
				}
			}

			site.GET("/stream/:type/:id", h.streamGet)
		}
	}

	return r
}

func (h *Handler) getSiteIDFromRequest(c *gin.Context) int64 {
	return c.GetInt64("site-id")
}

func (h *Handler) getPersonFromRequest(c *gin.Context) *model.Person {
	personReq, _ := c.Get("person")

	person, ok := personReq.(model.Person)
	if !ok {
		return nil
	}

	return &person
}

func clientOrigin() string {
	if origin := viper.GetString("client.origin"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}
