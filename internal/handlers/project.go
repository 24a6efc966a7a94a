package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

const defaultProjectPageSize = 6

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   UserRef   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func projectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy: UserRef{
			ID:    project.CreatedBy.ID,
			Name:  project.CreatedBy.Name,
			Email: project.CreatedBy.Email,
		},
		CreatedAt: project.CreatedAt,
	}
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: currentUser.ID,
	}

	if err := dataStore.CreateProject(project); err != nil {
		log.Printf("Failed to create project: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	created, err := dataStore.GetProject(project.ID)

	if err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	respondData(ctx, http.StatusCreated, projectResponse(created))
}

func ListProjects(ctx *gin.Context) {
	page, limit := utils.GetPageParams(ctx, defaultProjectPageSize)

	projects, pagination, err := dataStore.ListProjects(page, limit)

	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	respondList(ctx, response, len(response), &pagination)
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	project, err := dataStore.GetProject(projectID)

	if err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	respondData(ctx, http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	project, err := dataStore.GetProject(projectID)

	if err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	project.Name = req.Name
	project.Description = req.Description

	if err := dataStore.UpdateProject(project); err != nil {
		log.Printf("Failed to update project: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	respondData(ctx, http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := dataStore.DeleteProjectCascade(projectID); err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	BroadcastProjectEvent(strconv.FormatUint(uint64(projectID), 10), "project_deleted")

	respondData(ctx, http.StatusOK, gin.H{})
}
