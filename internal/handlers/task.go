package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/policy"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

const (
	defaultTaskPageSize        = 25
	defaultProjectTaskPageSize = 10
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  uint   `json:"assignedTo" binding:"required"`
	Project     uint   `json:"project" binding:"required"`
}

// UpdateTaskRequest uses pointers so absent fields stay untouched. The
// project reference is deliberately not accepted: it is fixed at creation.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *uint   `json:"assignedTo"`
}

type TaskResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AssignedTo  UserRef           `json:"assignedTo"`
	Project     ProjectRef        `json:"project"`
	CreatedByID uint              `json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	Comments    []CommentResponse `json:"comments,omitempty"`
}

func taskResponse(task *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		AssignedTo: UserRef{
			ID:    task.AssignedTo.ID,
			Name:  task.AssignedTo.Name,
			Email: task.AssignedTo.Email,
		},
		Project: ProjectRef{
			ID:          task.Project.ID,
			Name:        task.Project.Name,
			Description: task.Project.Description,
		},
		CreatedByID: task.CreatedByID,
		CreatedAt:   task.CreatedAt,
	}

	for i := range task.Comments {
		resp.Comments = append(resp.Comments, commentResponse(&task.Comments[i]))
	}

	return resp
}

// buildTaskQuery translates the client's filter/sort parameters. The
// assignedTo filter only honors the literal "me", resolved from the
// verified identity; client-supplied user ids are never trusted.
func buildTaskQuery(ctx *gin.Context, projectID uint, defaultLimit int) (store.TaskQuery, error) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return store.TaskQuery{}, err
	}

	page, limit := utils.GetPageParams(ctx, defaultLimit)

	q := store.TaskQuery{
		ProjectID: projectID,
		Sort:      ctx.Query("sort"),
		Page:      page,
		Limit:     limit,
	}

	if status := models.TaskStatus(ctx.Query("status")); status.Valid() {
		q.Status = status
	}
	if priority := models.TaskPriority(ctx.Query("priority")); priority.Valid() {
		q.Priority = priority
	}
	if ctx.Query("assignedTo") == "me" {
		q.AssigneeID = currentUser.ID
	}

	return q, nil
}

func listTasks(ctx *gin.Context, projectID uint, defaultLimit int) {
	q, err := buildTaskQuery(ctx, projectID, defaultLimit)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	tasks, pagination, err := dataStore.ListTasks(q)

	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, taskResponse(&tasks[i]))
	}

	respondList(ctx, response, len(response), &pagination)
}

func ListTasks(ctx *gin.Context) {
	listTasks(ctx, 0, defaultTaskPageSize)
}

func ListProjectTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := dataStore.GetProject(projectID); err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	listTasks(ctx, projectID, defaultProjectTaskPageSize)
}

func GetTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := dataStore.GetTask(taskID)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	respondData(ctx, http.StatusOK, taskResponse(task))
}

func CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.Valid() {
			respondError(ctx, http.StatusBadRequest, "Status must be Pending, In Progress, or Done")
			return
		}
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.TaskPriority(req.Priority)
		if !priority.Valid() {
			respondError(ctx, http.StatusBadRequest, "Priority must be Low, Medium, or High")
			return
		}
	}

	if _, err := dataStore.GetProject(req.Project); err != nil {
		respondStoreError(ctx, err, "Project")
		return
	}

	if _, err := dataStore.FindUserByID(req.AssignedTo); err != nil {
		respondStoreError(ctx, err, "Assigned user")
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		ProjectID:    req.Project,
		AssignedToID: req.AssignedTo,
		CreatedByID:  currentUser.ID,
	}

	if err := dataStore.CreateTask(task); err != nil {
		log.Printf("Failed to create task: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	created, err := dataStore.GetTask(task.ID)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	BroadcastProjectEvent(strconv.FormatUint(uint64(task.ProjectID), 10), "task_created")

	respondData(ctx, http.StatusCreated, taskResponse(created))
}

func UpdateTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := dataStore.GetTask(taskID)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	updates, errMsg := taskUpdatesFor(policy.TaskUpdateScopeFor(actor, task), &req)

	if errMsg != "" {
		respondError(ctx, http.StatusBadRequest, errMsg)
		return
	}
	if updates == nil {
		respondError(ctx, http.StatusForbidden, "Not authorized to update this task")
		return
	}

	if assignee, ok := updates["assigned_to_id"]; ok {
		if _, err := dataStore.FindUserByID(assignee.(uint)); err != nil {
			respondStoreError(ctx, err, "Assigned user")
			return
		}
	}

	if err := dataStore.UpdateTaskFields(taskID, updates); err != nil {
		log.Printf("Failed to update task: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	updated, err := dataStore.GetTask(taskID)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	BroadcastProjectEvent(strconv.FormatUint(uint64(task.ProjectID), 10), "task_updated")

	respondData(ctx, http.StatusOK, taskResponse(updated))
}

// taskUpdatesFor applies the actor's field mask to the submitted fields.
// A nil map means the update is denied outright. Under the status-only
// mask, other submitted fields are dropped silently, not rejected.
func taskUpdatesFor(scope policy.TaskUpdateScope, req *UpdateTaskRequest) (map[string]interface{}, string) {
	if scope == policy.TaskUpdateDenied {
		return nil, ""
	}

	updates := make(map[string]interface{})

	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			return updates, "Status must be Pending, In Progress, or Done"
		}
		updates["status"] = status
	}

	if scope == policy.TaskUpdateAll {
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Priority != nil {
			priority := models.TaskPriority(*req.Priority)
			if !priority.Valid() {
				return updates, "Priority must be Low, Medium, or High"
			}
			updates["priority"] = priority
		}
		if req.AssignedTo != nil {
			updates["assigned_to_id"] = *req.AssignedTo
		}
	}

	return updates, ""
}

func DeleteTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := dataStore.GetTask(taskID)

	if err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	if err := dataStore.DeleteTaskCascade(taskID); err != nil {
		respondStoreError(ctx, err, "Task")
		return
	}

	BroadcastProjectEvent(strconv.FormatUint(uint64(task.ProjectID), 10), "task_deleted")

	respondData(ctx, http.StatusOK, gin.H{})
}
