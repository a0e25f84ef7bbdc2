package response

import (
	"fmt"
	"net/http"

	"widget-srv/pkg/discord"
	pkgErrors "widget-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OK renders a 200 response with the given data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: codeOK,
		Message:   "Success",
		Data:      data,
	})
}

// Error renders an error response. HTTPError values keep their status; any
// other error becomes a 500. 5xx responses are forwarded to Discord.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	if httpErr, ok := err.(*pkgErrors.HTTPError); ok {
		if httpErr.StatusCode >= http.StatusInternalServerError {
			notify(c, d, httpErr)
		}
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.StatusCode,
			Message:   httpErr.Message,
		})
		return
	}

	notify(c, d, err)
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: codeInternalError,
		Message:   "Internal server error",
	})
}

// BadRequest renders a 400 response with the validation message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: codeBadRequest,
		Message:   message,
	})
}

// Unauthorized renders a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: codeUnauthorized,
		Message:   "Unauthorized",
	})
}

// PanicError renders a 500 after a recovered panic and alerts Discord.
func PanicError(c *gin.Context, recovered any, d discord.IDiscord) {
	notify(c, d, fmt.Errorf("panic: %v", recovered))
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: codeInternalError,
		Message:   "Internal server error",
	})
}

func notify(c *gin.Context, d discord.IDiscord, err error) {
	if d == nil || err == nil {
		return
	}
	ctx := c.Request.Context()
	title := fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path)
	// Alerting must never fail the request.
	_ = d.SendError(ctx, title, "request failed", err)
}
