package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

func (s *Server) listProjects(c *gin.Context) {
	var q projectListQuery
	if err := bindQuery(c, &q); err != nil {
		s.respondError(c, err)
		return
	}

	projects, err := s.svc.Projects.List(c.Request.Context(), models.ProjectFilter{
		Status:   q.Status,
		Featured: q.Featured,
		Skip:     q.Skip,
		Limit:    q.Limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponses(projects))
}

func (s *Server) getProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	project, err := s.svc.Projects.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (s *Server) createProject(c *gin.Context) {
	var req projectCreateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	project, err := s.svc.Projects.Create(c.Request.Context(), principal(c), req.model(), req.TechStacks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (s *Server) updateProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req projectUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	project, err := s.svc.Projects.Update(c.Request.Context(), principal(c), id, req.patch())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (s *Server) deleteProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.svc.Projects.Delete(c.Request.Context(), principal(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addTechStack(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req techStackRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	tech, err := s.svc.Projects.AddTechStack(c.Request.Context(), principal(c), id, req.TechName)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, techStackResponse{ID: tech.ID, TechName: tech.TechName})
}

func (s *Server) deleteTechStack(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.svc.Projects.DeleteTechStack(c.Request.Context(), principal(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
