package httpapi

import "net/http"

// APIPrefix is the mount point of every versioned route.
const APIPrefix = "/apis/v1"

func (s *Server) registerRoutes() {
	s.engine.GET(healthPath, s.health)
	s.engine.Handle(http.MethodHead, healthPath, s.health)

	api := s.engine.Group(APIPrefix)
	required := s.requireAuth()
	optional := s.optionalAuth()

	a := api.Group("/auth")
	a.POST("/register", s.register)
	a.POST("/login", s.login)
	a.POST("/refresh", s.refresh)
	a.POST("/logout", required, s.logout)
	a.GET("/me", required, s.me)

	p := api.Group("/posts")
	p.GET("", s.listPosts)
	p.GET("/all", required, s.listAllPosts)
	p.GET("/mine", required, s.listMyPosts)
	p.POST("", required, s.createPost)
	p.GET("/:id", optional, s.getPost)
	p.POST("/:id/view", optional, s.viewPost)
	p.PUT("/:id", required, s.updatePost)
	p.DELETE("/:id", required, s.deletePost)

	pr := api.Group("/profile")
	pr.POST("", required, s.createProfile)
	pr.PUT("", required, s.updateProfile)
	pr.POST("/skills", required, s.addSkill)
	pr.DELETE("/skills/:id", required, s.deleteSkill)
	pr.POST("/timeline", required, s.addTimelineEvent)
	pr.DELETE("/timeline/:id", required, s.deleteTimelineEvent)
	pr.GET("/:user_id", optional, s.getProfile)

	pj := api.Group("/projects")
	pj.GET("", s.listProjects)
	pj.POST("", required, s.createProject)
	pj.GET("/:id", s.getProject)
	pj.PUT("/:id", required, s.updateProject)
	pj.DELETE("/:id", required, s.deleteProject)
	pj.POST("/:id/tech-stack", required, s.addTechStack)
	pj.DELETE("/tech-stack/:id", required, s.deleteTechStack)

	api.GET("/dashboard/stats", required, s.dashboardStats)

	if s.svc.Media != nil {
		api.POST("/media/upload-url", required, s.uploadURL)
	}
}
