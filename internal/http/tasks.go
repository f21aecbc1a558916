package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/tasks"
)

const (
	taskTypeCleanupAudit  = "cleanup_audit_events"
	taskTypeOverdueReport = "overdue_report"
)

// TaskQueue enqueues background tasks and reports their progress.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

func (tc *TasksController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/api/tasks/types", tc.ListTaskTypes)
	router.GET("/api/tasks/:id", tc.GetTaskStatus)
	router.POST("/api/tasks/:type/run", tc.RunTask)
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
// Returns the list of available task types that can be triggered.
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        taskTypeCleanupAudit,
			Description: "Delete audit events older than the retention period",
			Queue:       tasks.CleanupAuditEventsTask{}.Config().Name,
		},
		{
			Type:        taskTypeOverdueReport,
			Description: "Log every loaned book copy past its due date",
			Queue:       tasks.OverdueReportTask{}.Config().Name,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		log.Error().Err(err).Str("task_id", taskID).Msg("Failed to read task status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	code := http.StatusOK
	if status == backlite.TaskStatusNotFound {
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// RetentionDays overrides the audit retention for cleanup_audit_events
	RetentionDays int `json:"retention_days,omitempty" form:"retention_days"`
}

// RunTask handles POST /api/tasks/:type/run
// Manually triggers a task of the specified type. Accepts JSON or form bodies.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.ContentType() == gin.MIMEPOSTForm || c.ContentType() == gin.MIMEMultipartPOSTForm {
		_ = c.ShouldBind(&req)
	} else if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}

	var task backlite.Task
	switch taskType {
	case taskTypeCleanupAudit:
		if req.RetentionDays < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "retention_days must not be negative"})
			return
		}
		task = tasks.CleanupAuditEventsTask{RetentionDays: req.RetentionDays}

	case taskTypeOverdueReport:
		task = tasks.OverdueReportTask{}

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown task type: %s", taskType)})
		return
	}

	taskID, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		log.Error().Err(err).Str("type", taskType).Msg("Failed to enqueue task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("type", taskType).Str("task_id", taskID).Msg("Task enqueued")
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": taskID,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
