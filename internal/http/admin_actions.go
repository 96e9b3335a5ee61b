package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/circulation"
)

const issuedBooksPath = "/admin/issued-books"

// IssuedBookAction applies one of the bulk circulation actions to the
// records selected on the issued-books list. Records that fail a guard
// are skipped; the skips surface as warning flashes next to the success
// count rather than failing the whole batch.
func (controller *AdminController) IssuedBookAction(circ *circulation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := parseIDList(c.PostFormArray("ids"))
		if len(ids) == 0 {
			controller.sessions.AddFlash(c.Request, auth.FlashInfo, "No records selected.")
			c.Redirect(http.StatusFound, actionRedirectTarget(c))
			return
		}

		var (
			result circulation.BatchResult
			verb   string
			err    error
		)
		switch action := c.PostForm("action"); action {
		case "approve":
			verb = "approved"
			result, err = circ.ApproveBatch(ids)
		case "reject":
			verb = "rejected"
			result, err = circ.RejectBatch(ids)
		case "return":
			verb = "marked as returned"
			result, err = circ.ReturnBatch(ids)
		default:
			controller.sessions.AddFlash(c.Request, auth.FlashError,
				fmt.Sprintf("Unknown action %q.", action))
			c.Redirect(http.StatusFound, actionRedirectTarget(c))
			return
		}
		if err != nil {
			c.String(http.StatusInternalServerError, "Error applying action")
			return
		}

		if result.Affected > 0 {
			controller.sessions.AddFlash(c.Request, auth.FlashSuccess,
				fmt.Sprintf("%d %s %s.", result.Affected, pluralRecords(result.Affected), verb))
		}
		for _, warning := range result.Warnings {
			controller.sessions.AddFlash(c.Request, auth.FlashWarning, warning)
		}
		if result.Affected == 0 && len(result.Warnings) == 0 {
			controller.sessions.AddFlash(c.Request, auth.FlashInfo,
				"No records were eligible for that action.")
		}

		c.Redirect(http.StatusFound, actionRedirectTarget(c))
	}
}

// actionRedirectTarget sends the admin back to the list they acted on,
// keeping their filters when the referer is a local issued-books URL.
func actionRedirectTarget(c *gin.Context) string {
	referer := c.Request.Referer()
	if strings.HasPrefix(referer, issuedBooksPath) {
		return referer
	}
	if u := c.Request.Header.Get("Referer"); u != "" {
		if idx := strings.Index(u, issuedBooksPath); idx >= 0 {
			return u[idx:]
		}
	}
	return issuedBooksPath
}

func pluralRecords(n int) string {
	if n == 1 {
		return "record"
	}
	return "records"
}
