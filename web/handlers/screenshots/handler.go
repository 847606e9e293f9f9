// Package screenshots handles screenshot uploads and retrieval. File bytes
// go to the configured storage backend; only metadata is persisted.
package screenshots

import (
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/infrastructure/filesystem"
	"interntrack.com/interntrack/web/common"
	"interntrack.com/interntrack/web/middlewares"
)

const maxUploadBytes = 10 << 20

type Endpoint struct {
	shots   store.ScreenshotStore
	storage filesystem.Storage
}

func Register(r *gin.RouterGroup, shots store.ScreenshotStore, storage filesystem.Storage) {
	endpoint := &Endpoint{shots: shots, storage: storage}
	r.POST("", endpoint.Upload)
	r.GET("/me", endpoint.Mine)
	r.GET("/user/:id", endpoint.ByUser)
	r.GET("/:id/file", endpoint.File)
}

var allowedMime = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

func (ep *Endpoint) Upload(c *gin.Context) {
	file, err := c.FormFile("screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("screenshot file is required"))
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("file exceeds the 10MB limit"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mime, ok := allowedMime[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("only png and jpeg screenshots are accepted"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer src.Close()

	user := middlewares.CurrentUser(c)
	now := time.Now()
	date := now.Format("2006-01-02")
	key := path.Join(date, uuid.NewString()+ext)

	ctx := c.Request.Context()
	if err := ep.storage.Save(ctx, key, src); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	shot := &model.Screenshot{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Date:      date,
		FileName:  file.Filename,
		FileKey:   key,
		MimeType:  mime,
		SizeBytes: file.Size,
		CreatedAt: now,
	}
	if err := ep.shots.Create(ctx, shot); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{"screenshot": shot}))
}

func (ep *Endpoint) Mine(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	ep.list(c, user.ID)
}

func (ep *Endpoint) ByUser(c *gin.Context) {
	targetID := c.Param("id")
	if !middlewares.IsSelfOrAdmin(c, targetID) {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
		return
	}
	ep.list(c, targetID)
}

func (ep *Endpoint) list(c *gin.Context, userID string) {
	limit := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	shots, err := ep.shots.FindByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"screenshots": shots}))
}

func (ep *Endpoint) File(c *gin.Context) {
	ctx := c.Request.Context()
	shot, err := ep.shots.FindByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("screenshot not found"))
		return
	}
	if !middlewares.IsSelfOrAdmin(c, shot.UserID) {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
		return
	}

	c.Header("Content-Type", shot.MimeType)
	if err := ep.storage.Read(ctx, shot.FileKey, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
	}
}
