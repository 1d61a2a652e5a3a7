package controller

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("controller_test_%d", atomic.AddInt64(&testDBSeq, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// withClaims stands in for the auth middleware, attaching parsed claims
// the way AuthMiddleware would after token validation.
func withClaims(claims *util.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set("user", claims)
		}
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func adminClaims() *util.Claims {
	return &util.Claims{UserID: 1, Role: model.RoleAdmin, Username: "root"}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
