package response

import (
	"github.com/gin-gonic/gin"
)

// The public API speaks the compact bodies browser clients already depend
// on: data endpoints return their payload directly, everything else is a
// {"message": ...} object. Keep these helpers as the single place that
// shape is produced.

type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes the payload as-is with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Message writes a {"message": ...} body with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Message: msg})
}

// AbortMessage writes a {"message": ...} body and aborts the handler chain.
// For use inside middleware.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, MessageBody{Message: msg})
}
