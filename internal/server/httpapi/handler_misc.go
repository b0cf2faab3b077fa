package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// health reports liveness; the process is only healthy while the database
// answers.
func (s *Server) health(c *gin.Context) {
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) dashboardStats(c *gin.Context) {
	stats, err := s.svc.Dashboard.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{
		TotalPosts:     stats.TotalPosts,
		TotalProjects:  stats.TotalProjects,
		TotalViews:     stats.TotalViews,
		RecentPosts:    toPostResponses(stats.RecentPosts),
		RecentProjects: toProjectResponses(stats.RecentProjects),
	})
}

func (s *Server) uploadURL(c *gin.Context) {
	var req uploadURLRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	u, err := s.svc.Media.PresignUpload(c.Request.Context(), principal(c), req.Purpose, req.ContentType)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUploadURLResponse(u))
}
