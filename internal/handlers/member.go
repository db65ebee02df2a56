package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mertkaya/teampulse/internal/services"
)

type MemberHandler struct {
	identityService   *services.IdentityService
	statisticsService *services.StatisticsService
}

func NewMemberHandler(identityService *services.IdentityService, statisticsService *services.StatisticsService) *MemberHandler {
	return &MemberHandler{
		identityService:   identityService,
		statisticsService: statisticsService,
	}
}

// List returns all members with their identifier bindings
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.identityService.ListMembers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	type memberView struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Email       *string           `json:"email"`
		Identifiers map[string]string `json:"identifiers"`
	}

	views := make([]memberView, 0, len(members))
	for _, member := range members {
		identifiers, err := h.identityService.IdentifiersFor(member.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load identifiers"})
			return
		}
		views = append(views, memberView{
			ID:          member.ID,
			Name:        member.Name,
			Email:       member.Email,
			Identifiers: identifiers,
		})
	}

	c.JSON(http.StatusOK, gin.H{"members": views})
}

// Activities returns a member's activities, newest first
func (h *MemberHandler) Activities(c *gin.Context) {
	name := c.Param("name")
	source := c.Query("source")

	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	activities, err := h.statisticsService.ActivitiesFor(name, source, start, end, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query activities"})
		return
	}
	if activities == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found", "member_name": name})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_name": name, "activities": activities})
}

// parseWindow reads optional RFC 3339 start/end query parameters
func parseWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	var start, end *time.Time

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected RFC 3339"})
			return nil, nil, false
		}
		start = &parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end, expected RFC 3339"})
			return nil, nil, false
		}
		end = &parsed
	}

	return start, end, true
}
