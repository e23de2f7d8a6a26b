package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"

	CTypeJSON = "application/json"
	CTypeHTML = "text/html"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticURLPath  = "/" + StaticLocalDir + "/"
)
