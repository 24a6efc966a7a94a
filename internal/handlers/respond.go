package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

var dataStore *store.Store

// Init wires the handlers to the entity store. Called once from main and
// from test setup.
func Init(db *gorm.DB) {
	dataStore = store.New(db)
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, types.Response{Success: false, Message: message})
}

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, types.Response{Success: true, Data: data})
}

func respondList(ctx *gin.Context, data interface{}, count int, pagination *types.Pagination) {
	ctx.JSON(http.StatusOK, types.Response{
		Success:    true,
		Count:      &count,
		Pagination: pagination,
		Data:       data,
	})
}

// respondStoreError maps a store failure on a single-resource operation to
// the right terminal error. Anything unexpected is a plain server error;
// nothing at this layer retries.
func respondStoreError(ctx *gin.Context, err error, resource string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(ctx, http.StatusNotFound, resource+" not found")
		return
	}
	respondError(ctx, http.StatusInternalServerError, "Server Error")
}

// Shared response fragments: related entities are embedded at read time
// from preloaded rows, never persisted denormalized.

type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ProjectRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	TaskID    uint      `json:"task"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
