package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/policy"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
	Task uint   `json:"task" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

func commentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:     comment.ID,
		Text:   comment.Text,
		TaskID: comment.TaskID,
		User: UserRef{
			ID:   comment.User.ID,
			Name: comment.User.Name,
		},
		CreatedAt: comment.CreatedAt,
	}
}

func ListTaskComments(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := dataStore.GetTask(taskID); err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	comments, err := dataStore.ListTaskComments(taskID)

	if err != nil {
		log.Printf("Failed to list comments: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	response := make([]CommentResponse, 0, len(comments))

	for i := range comments {
		response = append(response, commentResponse(&comments[i]))
	}

	respondList(ctx, response, len(response), nil)
}

func CreateComment(ctx *gin.Context) {
	var req CreateCommentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := dataStore.GetTask(req.Task)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	comment := &models.Comment{
		Text:   req.Text,
		TaskID: req.Task,
		UserID: currentUser.ID,
	}

	if err := dataStore.CreateComment(comment); err != nil {
		log.Printf("Failed to create comment: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	BroadcastProjectEvent(strconv.FormatUint(uint64(task.ProjectID), 10), "comment_created")

	respondData(ctx, http.StatusCreated, commentResponse(comment))
}

func UpdateComment(ctx *gin.Context) {
	commentID, err := utils.GetCommentID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateCommentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := dataStore.GetComment(commentID)

	if err != nil {
		respondStoreError(ctx, err, "Comment")
		return
	}

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if !policy.CanMutateComment(actor, comment) {
		respondError(ctx, http.StatusForbidden, "Not authorized to update this comment")
		return
	}

	updated, err := dataStore.UpdateCommentText(commentID, req.Text)

	if err != nil {
		log.Printf("Failed to update comment: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	respondData(ctx, http.StatusOK, commentResponse(updated))
}

func DeleteComment(ctx *gin.Context) {
	commentID, err := utils.GetCommentID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := dataStore.GetComment(commentID)

	if err != nil {
		respondStoreError(ctx, err, "Comment")
		return
	}

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if !policy.CanMutateComment(actor, comment) {
		respondError(ctx, http.StatusForbidden, "Not authorized to delete this comment")
		return
	}

	if err := dataStore.DeleteComment(commentID); err != nil {
		respondStoreError(ctx, err, "Comment")
		return
	}

	respondData(ctx, http.StatusOK, gin.H{})
}
