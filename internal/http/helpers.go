package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 for anonymous requests.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// pageData merges the common template context (current user, flash
// messages, CSRF token) with handler-specific data.
func pageData(c *gin.Context, sm *auth.SessionManager, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = auth.GetUsername(c)
	data["IsAuthenticated"] = auth.IsAuthenticated(c)
	data["IsAdmin"] = auth.IsAdmin(c)
	data["CSRFToken"] = auth.GetCSRFToken(c)
	if sm != nil {
		data["Flashes"] = sm.PopFlashes(c.Request)
	}
	return data
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid %s", paramName)
		return 0, false
	}
	return uint(id), true
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// parseIDList parses the selected record IDs of a bulk action form,
// silently dropping values that are not valid IDs.
func parseIDList(values []string) []uint {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
