package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

func (s *Server) getProfile(c *gin.Context) {
	userID, err := parseID(c, "user_id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	profile, err := s.svc.Profiles.Get(c.Request.Context(), principal(c), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (s *Server) createProfile(c *gin.Context) {
	var req profileCreateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	profile, err := s.svc.Profiles.Create(c.Request.Context(), principal(c), req.model())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	profile, err := s.svc.Profiles.Update(c.Request.Context(), principal(c), req.patch())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (s *Server) addSkill(c *gin.Context) {
	var req skillRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	skill, err := s.svc.Profiles.AddSkill(c.Request.Context(), principal(c), &models.Skill{SkillName: req.SkillName, Category: req.Category})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSkillResponse(skill))
}

func (s *Server) deleteSkill(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.svc.Profiles.DeleteSkill(c.Request.Context(), principal(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addTimelineEvent(c *gin.Context) {
	var req timelineRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	event, err := s.svc.Profiles.AddTimelineEvent(c.Request.Context(), principal(c), &models.TimelineEvent{
		EventTitle:       req.EventTitle,
		EventDescription: req.EventDescription,
		EventDate:        req.EventDate,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTimelineResponse(event))
}

func (s *Server) deleteTimelineEvent(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.svc.Profiles.DeleteTimelineEvent(c.Request.Context(), principal(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
