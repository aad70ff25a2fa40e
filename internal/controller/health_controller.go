package controller

import (
	"context"
	"time"

	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, RDB: rdb}
}

// Check reports liveness plus the state of the backing stores. Redis being
// down degrades to "disabled" rather than failing the check; the cache is
// optional.
func (c *HealthController) Check(ctx *gin.Context) {
	status := gin.H{"status": "ok", "time": time.Now().UTC()}

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	if c.RDB != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
		defer cancel()
		if err := c.RDB.Ping(pingCtx).Err(); err != nil {
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	} else {
		status["cache"] = "disabled"
	}

	util.Success(ctx, status)
}
