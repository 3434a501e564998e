package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinServer registers handlers on a gin router. Path parameters are made
// available to the decoders through the request context.
type GinServer struct {
	router *gin.Engine
}

func NewGinServer(env string) *GinServer {
	switch env {
	case "prod":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if env != "test" {
		router.Use(gin.Logger())
	}

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})

	// Ping
	router.GET("/timetable/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	return &GinServer{router: router}
}

func (s *GinServer) RegisterHandler(path, method string, f http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		p := make(map[string]string, len(c.Params))
		for _, param := range c.Params {
			p[param.Key] = param.Value
		}

		ctx := context.WithValue(c.Request.Context(), paramsKey, p)
		f.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

func (s *GinServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
