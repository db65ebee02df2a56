package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/internal/sources"
)

type SyncHandler struct {
	jobRepo  *repositories.JobRepository
	registry *sources.Registry
}

func NewSyncHandler(jobRepo *repositories.JobRepository, registry *sources.Registry) *SyncHandler {
	return &SyncHandler{
		jobRepo:  jobRepo,
		registry: registry,
	}
}

// Enqueue queues a sync job for a registered source. The background
// worker owning the source picks it up; same-source jobs never overlap.
func (h *SyncHandler) Enqueue(c *gin.Context) {
	source := c.Param("source")

	if _, err := h.registry.Get(source); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source", "source": source})
		return
	}

	job := models.NewSyncJob(source)
	if err := h.jobRepo.Create(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue sync job"})
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// Status returns a sync job with its stats
func (h *SyncHandler) Status(c *gin.Context) {
	job, err := h.jobRepo.GetByID(c.Param("id"))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Sources lists the registered source names
func (h *SyncHandler) Sources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": h.registry.Names()})
}
