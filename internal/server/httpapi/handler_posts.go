package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

func (s *Server) listPosts(c *gin.Context) {
	var q postListQuery
	if err := bindQuery(c, &q); err != nil {
		s.respondError(c, err)
		return
	}

	posts, total, err := s.svc.Posts.List(c.Request.Context(), models.PostFilter{
		Category: q.Category,
		Search:   q.Search,
		Skip:     q.Skip,
		Limit:    q.Limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, postListResponse{Total: total, Skip: q.Skip, Limit: q.Limit, Posts: toPostResponses(posts)})
}

func (s *Server) listAllPosts(c *gin.Context) {
	posts, err := s.svc.Posts.ListAll(c.Request.Context(), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (s *Server) listMyPosts(c *gin.Context) {
	posts, err := s.svc.Posts.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (s *Server) createPost(c *gin.Context) {
	var req postCreateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	post, err := s.svc.Posts.Create(c.Request.Context(), principal(c), req.model())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (s *Server) getPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	post, err := s.svc.Posts.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (s *Server) viewPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	count, counted, err := s.svc.Posts.View(c.Request.Context(), principal(c), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewResponse{ViewCount: count, Counted: counted})
}

func (s *Server) updatePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req postUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	post, err := s.svc.Posts.Update(c.Request.Context(), principal(c), id, req.patch())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (s *Server) deletePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.svc.Posts.Delete(c.Request.Context(), principal(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
