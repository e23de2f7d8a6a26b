package main

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/apgomes/blogmod/internal/auth"
	"github.com/apgomes/blogmod/internal/blob"
	"github.com/apgomes/blogmod/internal/cache"
	"github.com/apgomes/blogmod/internal/config"
	"github.com/apgomes/blogmod/internal/db"
	"github.com/apgomes/blogmod/internal/logger"
	"github.com/apgomes/blogmod/internal/model"
	"github.com/apgomes/blogmod/internal/repository"
	"github.com/apgomes/blogmod/internal/routes"
	"github.com/apgomes/blogmod/internal/service"
	"github.com/apgomes/blogmod/internal/util"
	"github.com/apgomes/blogmod/internal/util/compression"
)

//go:embed static/*
var content embed.FS

var appLog zerolog.Logger

var postService *service.PostService
var authProvider auth.Provider
var requireAuthForWrites bool
var maxUploadBytes int64 = 10 << 20

func main() {
	if err := godotenv.Load(); err != nil {
		// Not an error: production deployments configure via real env vars.
		appLog.Debug().Msg("No .env file loaded")
	}

	configPath := os.Getenv("BLOGMOD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		appLog.Fatal().Err(err).Msg("Error loading config")
	}
	cfg := config.AppConfig

	appLog = logger.New(cfg.Logging.Level)
	setPackageLoggers(appLog)

	database := db.NewSQLite(cfg.Database.Path)
	if err := database.InitDB(); err != nil {
		appLog.Fatal().Err(err).Msg("Error initializing database")
	}
	defer database.Close()

	blobs := newBlobStore(cfg)
	postRepository := repository.NewDBPostRepository(database, compression.ForName(cfg.Database.Compression))

	postService = service.NewPostService(postRepository, blobs)
	postService.SetUploadRetry(cfg.Uploads.Attempts, time.Duration(cfg.Uploads.BackoffMs)*time.Millisecond)
	maxUploadBytes = cfg.Uploads.MaxBytes
	requireAuthForWrites = cfg.Auth.Type != "none" && cfg.Auth.RequireForWrites

	switch cfg.Auth.Type {
	case "clerk":
		authProvider = auth.NewClerkAuthProvider(database, os.Getenv("CLERK_API"))
	case "token":
		authProvider = auth.NewStaticTokenAuthProvider(os.Getenv("BLOGMOD_API_TOKEN"), model.UserID("admin"))
	}

	mux := newMux()

	if clerkProvider, ok := authProvider.(*auth.ClerkAuthProvider); ok {
		mux.HandleFunc(routes.WebhookUser, clerkProvider.HandleWebhookUser)
	}

	if cfg.Storage.Backend == "fs" {
		mux.Handle(routes.UploadsPath,
			http.StripPrefix(routes.UploadsPath, http.FileServer(http.Dir(cfg.Storage.FS.Dir))))
	}

	// Calculate the hash of static content for ETags
	static, _ := fs.Sub(content, config.StaticLocalDir)
	fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if !d.IsDir() {
			data, _ := fs.ReadFile(static, path)
			cache.SetStaticHash(config.StaticURLPath+path, util.ContentHash(data))
		}
		return nil
	})
	mux.Handle(config.StaticURLPath, http.StripPrefix(config.StaticURLPath, http.FileServer(http.FS(static))))

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == routes.RobotsPath { // Ignore robots.txt
			mux.ServeHTTP(w, r)
		} else {
			secureHeaders(mux.ServeHTTP)(w, r)
		}
	})
	if authProvider != nil {
		handler = authProvider.WithHeaderAuthorization()(handler)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	appLog.Info().Str("addr", addr).Msg("Starting server")
	appLog.Fatal().Err(http.ListenAndServe(addr, cacheIt(handler.ServeHTTP))).Msg("Server stopped")
}

func newBlobStore(cfg *config.Config) blob.Store {
	switch cfg.Storage.Backend {
	case "s3":
		return blob.NewS3BlobStore(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_SECRET_ACCESS_KEY"),
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Region,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.PublicBaseURL,
			cfg.Storage.S3.KeyPrefix,
		)
	default:
		store, err := blob.NewFSBlobStore(cfg.Storage.FS.Dir, cfg.Storage.FS.BaseURL)
		if err != nil {
			appLog.Fatal().Err(err).Msg("Error initializing blob store")
		}
		return store
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(routes.RobotsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow:"))
	})

	mux.HandleFunc(routes.APIPosts, serveAPIPosts)
	mux.HandleFunc(routes.APIPostByID, serveAPIPostByID)

	mux.HandleFunc(routes.AuthLogin, serveLogin)
	mux.HandleFunc(routes.RootPath, serveIndex)

	return mux
}

func serveAPIPosts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		posts, err := postService.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
	case http.MethodPost:
		owner, ok := enforceWriteAuth(w, r)
		if !ok {
			return
		}

		sub, err := parseSubmission(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}

		post, err := postService.Create(r.Context(), sub, owner)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", config.HTTPErrMethodNotAllowed)
	}
}

func serveAPIPostByID(w http.ResponseWriter, r *http.Request) {
	id := model.PostID(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusNotFound, "not_found", "post id required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		if _, ok := enforceWriteAuth(w, r); !ok {
			return
		}

		sub, err := parseSubmission(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}

		post, err := postService.Update(r.Context(), id, sub)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	case http.MethodDelete:
		if _, ok := enforceWriteAuth(w, r); !ok {
			return
		}

		if err := postService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", config.HTTPErrMethodNotAllowed)
	}
}

// parseSubmission reads the multipart form the way a browser FormData submit
// produces it. Only parts present in the form become non-nil fields, which is
// what gives updates their partial-merge semantics.
func parseSubmission(w http.ResponseWriter, r *http.Request) (service.Submission, error) {
	var sub service.Submission

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return sub, errors.New("invalid multipart form")
	}

	if values, ok := r.MultipartForm.Value["title"]; ok && len(values) > 0 {
		sub.Title = &values[0]
	}
	if values, ok := r.MultipartForm.Value["author"]; ok && len(values) > 0 {
		sub.Author = &values[0]
	}
	if values, ok := r.MultipartForm.Value["content"]; ok && len(values) > 0 {
		sub.Content = &values[0]
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		header := files[0]

		file, err := header.Open()
		if err != nil {
			return sub, errors.New("unreadable image part")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return sub, errors.New("unreadable image part")
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
		}

		sub.Image = &service.ImageUpload{Data: data, ContentType: contentType}
	}

	return sub, nil
}

func enforceWriteAuth(w http.ResponseWriter, r *http.Request) (model.UserID, bool) {
	if authProvider == nil {
		return "", true
	}

	owner, err := authProvider.UserIDFromRequest(r)
	if err != nil {
		if requireAuthForWrites {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return "", false
		}
		return "", true
	}
	return owner, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.Is(err, blob.ErrUnsupportedMediaType):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	case errors.Is(err, blob.ErrQuotaExceeded):
		writeError(w, http.StatusInsufficientStorage, "quota_exceeded", err.Error())
	case errors.Is(err, blob.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", err.Error())
	case errors.Is(err, repository.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		appLog.Error().Err(err).Msg("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routes.RootPath {
		http.NotFound(w, r)
		return
	}
	serveStaticPage(w, "index.html")
}

func serveLogin(w http.ResponseWriter, r *http.Request) {
	serveStaticPage(w, "login.html")
}

func serveStaticPage(w http.ResponseWriter, name string) {
	page, err := content.ReadFile(config.StaticLocalDir + "/" + name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func cacheIt(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")

		// Add etag header to response if it's a static file
		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h(w, r)
	}
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		h(w, r)
	}
}

func setPackageLoggers(l zerolog.Logger) {
	config.SetLogger(l)
	db.SetLogger(l)
	repository.SetLogger(l)
	blob.SetLogger(l)
	service.SetLogger(l)
	auth.SetLogger(l)
}
