package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/requestdata"
	"github.com/habitloop/habitloop-backend/internal/services"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

type StreakHandler struct {
	streakService services.StreakService
}

func NewStreakHandler(streakService services.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (sh *StreakHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid_kind", nil)
		return
	}
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := sh.streakService.GetStreak(c.Request.Context(), rd.UserID, kind, entityID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func parseKind(raw string) (tracking.Kind, bool) {
	switch tracking.Kind(raw) {
	case tracking.KindHabit:
		return tracking.KindHabit, true
	case tracking.KindChallenge:
		return tracking.KindChallenge, true
	default:
		return "", false
	}
}
