package public

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentSession 解析请求头中的会话与客户标识并取出会话。
// 未携带会话标识时分配游客会话，并通过响应头回传给客户端续用。
func (h *Handler) currentSession(c *gin.Context) *session.Session {
	sessionID := strings.TrimSpace(c.GetHeader(constants.HeaderSessionID))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(constants.HeaderSessionID, sessionID)

	customerID := strings.TrimSpace(c.GetHeader(constants.HeaderCustomerID))
	if customerID == "" {
		// 游客：以会话标识充当客户标识
		customerID = sessionID
	}
	return h.Sessions.Get(sessionID, customerID)
}
