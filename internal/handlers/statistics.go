package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/services"
)

type StatisticsHandler struct {
	identityService   *services.IdentityService
	statisticsService *services.StatisticsService
	reportService     *services.ReportService
}

func NewStatisticsHandler(
	identityService *services.IdentityService,
	statisticsService *services.StatisticsService,
	reportService *services.ReportService,
) *StatisticsHandler {
	return &StatisticsHandler{
		identityService:   identityService,
		statisticsService: statisticsService,
		reportService:     reportService,
	}
}

// MemberStatistics returns one member's snapshot for the window
func (h *StatisticsHandler) MemberStatistics(c *gin.Context) {
	name := c.Param("name")

	start, end, ok := h.requireWindow(c)
	if !ok {
		return
	}

	snapshot, err := h.statisticsService.StatisticsFor(name, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
		return
	}

	if snapshot.Error != "" {
		c.JSON(http.StatusNotFound, snapshot)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// TeamSummary returns the ranked team summary as JSON
func (h *StatisticsHandler) TeamSummary(c *gin.Context) {
	summary, ok := h.buildTeamSummary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TeamReport returns the team summary rendered as markdown
func (h *StatisticsHandler) TeamReport(c *gin.Context) {
	summary, ok := h.buildTeamSummary(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(h.reportService.TeamSummaryMarkdown(summary)))
}

// TeamExport returns the team summary as an XLSX download
func (h *StatisticsHandler) TeamExport(c *gin.Context) {
	summary, ok := h.buildTeamSummary(c)
	if !ok {
		return
	}

	file, err := h.reportService.TeamSummaryXLSX(summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="team-summary.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// buildTeamSummary resolves the roster and computes the ranked summary
func (h *StatisticsHandler) buildTeamSummary(c *gin.Context) (*models.TeamSummary, bool) {
	start, end, ok := h.requireWindow(c)
	if !ok {
		return nil, false
	}

	members, err := h.identityService.ListMembers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return nil, false
	}

	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}

	summary, err := h.statisticsService.TeamSummary(names, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute team summary"})
		return nil, false
	}
	return summary, true
}

func (h *StatisticsHandler) requireWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, end, ok := parseWindow(c)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	// Default window: the last 30 days
	now := time.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		s := end.AddDate(0, 0, -30)
		start = &s
	}

	return *start, *end, true
}
