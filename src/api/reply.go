package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reply negotiates between the plain-text report and its JSON form. The
// format query parameter wins over the Accept header.
type reply struct {
	c         *gin.Context
	requestID string
}

func newReply(c *gin.Context) reply {
	id := uuid.NewString()
	c.Header("X-Request-ID", id)
	return reply{c: c, requestID: id}
}

func (r reply) wantsJSON() bool {
	switch strings.ToLower(r.c.Query("format")) {
	case "json":
		return true
	case "text":
		return false
	}
	return strings.Contains(strings.ToLower(r.c.GetHeader("Accept")), "application/json")
}

func (r reply) fail(status int, msg string) {
	if r.wantsJSON() {
		r.c.JSON(status, gin.H{"error": msg, "request_id": r.requestID})
		return
	}
	r.c.String(status, msg)
}

func (r reply) report(text string, payload gin.H) {
	if !r.wantsJSON() {
		r.c.String(http.StatusOK, text+"\nrequest_id: "+r.requestID)
		return
	}
	out := make(gin.H, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["request_id"] = r.requestID
	r.c.JSON(http.StatusOK, out)
}
