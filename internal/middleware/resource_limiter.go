package middleware

import (
	"net/http"

	appErrors "Petfolio/internal/errors"

	"github.com/gin-gonic/gin"
)

type ResourceCounter interface {
	CountFriendships(userID string) (int64, error)
	CountPendingRequests(userID string) (int64, error)
}

// Hard per-user caps. There is no paid tier, these exist to keep a single
// account from flooding the tables.
const (
	MaxFriendships     = 200
	MaxPendingRequests = 20
)

func respondLimit(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	c.JSON(err.StatusCode, payload)
	c.Abort()
}

func CheckResourceLimit(resourceType string, counter ResourceCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}

		userID, ok := userIDValue.(string)
		if !ok {
			c.Next()
			return
		}

		var limit int
		var count int64
		var err error

		switch resourceType {
		case "friendships":
			limit = MaxFriendships
			count, err = counter.CountFriendships(userID)
		case "pending_requests":
			limit = MaxPendingRequests
			count, err = counter.CountPendingRequests(userID)
		default:
			c.Next()
			return
		}

		if err != nil {
			c.Next()
			return
		}

		if int(count) >= limit {
			appErr := appErrors.WrapError(nil, "RESOURCE_LIMIT_REACHED",
				"Account limit reached for this resource.",
				http.StatusForbidden)
			appErr.Details = map[string]interface{}{
				"resource": resourceType,
				"current":  count,
				"limit":    limit,
			}
			respondLimit(c, appErr)
			return
		}

		c.Next()
	}
}
