package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"waste_tracker/internal/db"
	"waste_tracker/internal/domain"
	"waste_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Secret signs every token minted by the helpers below
const Secret = "test-secret"

var dbSeq atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

// OpenDB opens a fresh in-memory SQLite database with the schema applied.
// Each call gets its own database so tests never share rows.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), db.Options(false))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

// CreateUser stores a user with a bcrypt hash of password
func CreateUser(t *testing.T, gdb *gorm.DB, username, password string, role domain.Role, truckNum *int) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := domain.User{Username: username, Password: string(hash), Roles: role, TruckNum: truckNum}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// Token signs a one hour token for the user
func Token(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := utils.GenerateJWT(u, Secret, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// TokenFor signs a token for a user that need not exist in the database
func TokenFor(t *testing.T, role domain.Role, truckNum *int) string {
	t.Helper()
	return Token(t, domain.User{ID: 99, Username: string(role) + "-user", Roles: role, TruckNum: truckNum})
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int { return &n }
