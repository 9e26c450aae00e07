package routes

import (
	"parkscout/auth"
	"parkscout/middleware"
	"parkscout/parks"
	"parkscout/profile"
	"parkscout/proxy"
	"parkscout/ratelim"
	"parkscout/savedparks"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/signup", rl.Limit(auth.Signup))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))

	router.GET("/api/user/me", middleware.Authenticate(profile.GetMe))
}

func AddSavedParkRoutes(router *httprouter.Router) {
	router.GET("/api/savedParks", middleware.Authenticate(savedparks.List))
	router.POST("/api/savedParks", middleware.Authenticate(savedparks.Save))
	router.DELETE("/api/savedParks/:key", middleware.Authenticate(savedparks.RemoveOne))
	router.DELETE("/api/savedParks", middleware.Authenticate(savedparks.Clear))
}

func AddParkRoutes(router *httprouter.Router, h *parks.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/parks/activities", rl.Limit(h.GetActivities))
	router.GET("/api/parks/topics", rl.Limit(h.GetTopics))
	router.GET("/api/parks/suggest", rl.Limit(h.Suggest))
	router.POST("/api/parks/search", rl.Limit(middleware.OptionalAuth(h.Search)))
}

func AddProxyRoutes(router *httprouter.Router, p *proxy.NPSProxy) {
	router.GET("/api/nps/*path", p.Forward)
}
