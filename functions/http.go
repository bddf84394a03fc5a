package functions

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/datapad/config"
	mw "github.com/kasuganosora/datapad/middleware"
)

// Register mounts every function at ANY <base_path>/:function. When a JWT
// secret is configured, mutating functions require an authenticated caller.
func (s *Service) Register(r gin.IRouter, fc config.FunctionsConfig, sec config.SecurityConfig) {
	base := strings.TrimRight(fc.BasePath, "/")
	r.Any(base+"/:function", s.handle(sec.JWTSecret != ""))
}

func (s *Service) handle(requireAuth bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("function")
		user := mw.GetUserName(c)
		if f, ok := s.Lookup(name); ok && f.Mutates && requireAuth && user == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		params := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
		resp := s.Invoke(c.Request.Context(), name, Event{
			QueryStringParameters: params,
			TraceID:               mw.GetTraceID(c),
			UserName:              user,
			IP:                    c.ClientIP(),
		})
		c.Data(resp.StatusCode, "application/json; charset=utf-8", []byte(resp.Body))
	}
}
