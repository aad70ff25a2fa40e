package middleware

import (
	"net/http"
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SubscriptionMiddleware blocks a school whose subscription has lapsed.
// Superadmins are exempt so platform staff can still reach expired tenants.
func SubscriptionMiddleware(schoolRepo *repository.SchoolRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if user.Role == model.RoleSuperAdmin {
			c.Next()
			return
		}

		school, err := schoolRepo.FindByID(user.SchoolID)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		if !school.SubscriptionActive(time.Now()) {
			util.Error(c, http.StatusForbidden, util.ErrSubscription.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
