// Package routes defines HTTP route constants for the application.
package routes

const (
	// Root and assets
	RootPath    = "/"
	RobotsPath  = "/robots.txt"
	UploadsPath = "/uploads/"

	// API
	APIPosts      = "/api/posts"
	APIPostsSlash = "/api/posts/"
	APIPostByID   = "/api/posts/{id}"

	// Auth routes
	AuthLogin   = "/auth/login"
	WebhookUser = "/webhook/user"
)
