package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/domain"
	"github.com/xilonoide/xiloadventures-sub005/domain/repositories"
	"github.com/xilonoide/xiloadventures-sub005/internal/auth"
	"github.com/xilonoide/xiloadventures-sub005/internal/websocket"
	"github.com/xilonoide/xiloadventures-sub005/usecase"
)

// Deps gathers the collaborators the HTTP layer binds together
type Deps struct {
	Assets       repositories.AssetRepository
	Ingest       *usecase.IngestService
	Playback     *usecase.PlaybackService
	Hub          *websocket.Hub
	EditorSecret string
	Logger       *zap.Logger
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, deps Deps) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "soundstore",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.POST("/editor/auth", func(c echo.Context) error {
		return editorAuth(c, deps)
	})

	v1.POST("/assets/ingest", func(c echo.Context) error {
		return ingestAssets(c, deps)
	})
	v1.GET("/assets", func(c echo.Context) error {
		return listAssets(c, deps)
	})
	v1.DELETE("/assets/:id", func(c echo.Context) error {
		return removeAsset(c, deps)
	})

	v1.POST("/playback/play", func(c echo.Context) error {
		return playAsset(c, deps)
	})
	v1.POST("/playback/stop", func(c echo.Context) error {
		deps.Playback.Stop(c.Request().Context())
		return c.JSON(http.StatusOK, deps.Playback.Status())
	})
	v1.GET("/playback", func(c echo.Context) error {
		return c.JSON(http.StatusOK, deps.Playback.Status())
	})

	// WebSocket event feed with JWT validation
	e.GET("/ws", func(c echo.Context) error {
		return websocketWithAuth(c, deps)
	})
}

func editorAuth(c echo.Context, deps Deps) error {
	var req EditorAuthRequest
	if err := c.Bind(&req); err != nil {
		deps.Logger.Error("Failed to bind editor auth request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	if req.Secret == "" || req.Secret != deps.EditorSecret {
		deps.Logger.Warn("Editor authentication failed",
			zap.String("editor_id", req.EditorID))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "authentication_failed",
			Message: "Invalid editor secret",
		})
	}

	editorID := req.EditorID
	if editorID == "" {
		editorID = "editor"
	}

	token, err := auth.GenerateEditorToken(editorID)
	if err != nil {
		deps.Logger.Error("Failed to generate editor token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate authentication token",
		})
	}

	deps.Logger.Info("Editor authenticated", zap.String("editor_id", editorID))
	return c.JSON(http.StatusOK, EditorAuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func ingestAssets(c echo.Context, deps Deps) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if len(req.Paths) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "At least one candidate path is required",
		})
	}

	result := deps.Ingest.Ingest(c.Request().Context(), req.Paths)

	resp := IngestResponse{
		Added:    len(result.Added),
		AddedIDs: result.Added,
		Failures: make([]IngestFailureView, 0, len(result.Failures)),
	}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, IngestFailureView{
			File:   failure.File,
			Reason: failureReason(failure.Err),
			Detail: failure.Err.Error(),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// failureReason maps an ingestion error to its stable wire name
func failureReason(err error) string {
	var tooLarge *domain.TooLargeError
	switch {
	case errors.As(err, &tooLarge):
		return "too_large"
	case errors.Is(err, domain.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, domain.ErrCorruptAsset):
		return "corrupt_asset"
	default:
		return "ingestion_failure"
	}
}

func listAssets(c echo.Context, deps Deps) error {
	assets := deps.Assets.List(c.Request().Context())

	views := make([]AssetView, 0, len(assets))
	for _, asset := range assets {
		views = append(views, AssetView{
			ID:              asset.ID,
			SizeBytes:       asset.SizeBytes,
			Size:            humanize.IBytes(uint64(asset.SizeBytes)),
			DurationSeconds: asset.DurationSeconds,
			AddedAt:         asset.AddedAt,
		})
	}

	return c.JSON(http.StatusOK, views)
}

func removeAsset(c echo.Context, deps Deps) error {
	id := c.Param("id")
	if err := deps.Playback.RemoveAsset(c.Request().Context(), id); err != nil {
		deps.Logger.Error("Failed to remove asset",
			zap.String("asset", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "remove_failed",
			Message: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func playAsset(c echo.Context, deps Deps) error {
	var req PlayRequest
	if err := c.Bind(&req); err != nil || req.ID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Asset id is required",
		})
	}

	err := deps.Playback.Play(c.Request().Context(), req.ID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, deps.Playback.Status())
	case errors.Is(err, domain.ErrAssetNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "asset_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrAssetEmpty):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "asset_empty",
			Message: err.Error(),
		})
	default:
		deps.Logger.Error("Playback failed",
			zap.String("asset", req.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "playback_failed",
			Message: err.Error(),
		})
	}
}

// websocketWithAuth handles WebSocket connections with JWT authentication
func websocketWithAuth(c echo.Context, deps Deps) error {
	// Extract JWT token from Authorization header only
	var token string
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" && len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}

	if token == "" {
		deps.Logger.Warn("WebSocket connection rejected: missing token")
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "missing_token",
			Message: "JWT token is required in Authorization header",
		})
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		deps.Logger.Warn("WebSocket connection rejected: invalid token", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired JWT token",
		})
	}

	if claims.Role != "editor" {
		deps.Logger.Warn("WebSocket connection rejected: invalid role",
			zap.String("role", claims.Role))
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "invalid_role",
			Message: "Only editor tokens are allowed for WebSocket connections",
		})
	}

	deps.Logger.Info("WebSocket connection authenticated",
		zap.String("editor_id", claims.EditorID))
	return websocket.HandleWebSocket(deps.Hub, c, claims.EditorID, deps.Logger)
}
