package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pitadomingos/procuretrack-sub002/internal/middleware"
	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
)

const (
	TestSchema = "test_procurement"
	JWTSecret  = "procuretrack-jwt-secret-key-2025"
)

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB creates a test database connection using a dedicated test
// schema. Each test gets an isolated schema that is dropped on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "procuretrack")
	password := getEnv("DB_PASSWORD", "procuretrack123")
	dbname := getEnv("DB_NAME", "procuretrack")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// First: create the schema over a throwaway connection.
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Second: open with search_path in the DSN so all pooled connections
	// land in the test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Site{},
		&entity.Supplier{},
		&entity.PurchaseOrder{},
		&entity.POItem{},
		&entity.ClientQuote{},
		&entity.Requisition{},
		&entity.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, email string, roles []string) string {
	if roles == nil {
		roles = []string{}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"roles": roles,
		"iss":   "procuretrack",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default admin test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Admin", "admin@test.com", []string{"admin"})
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedSupplier creates a supplier row for tests
func SeedSupplier(t *testing.T, db *gorm.DB, code, name string) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{
		ID:        uuid.New().String()[:32],
		Code:      code,
		Name:      name,
		Status:    entity.SupplierStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	return supplier
}

// SeedSite creates a site row for tests
func SeedSite(t *testing.T, db *gorm.DB, code, name string) *entity.Site {
	t.Helper()
	site := &entity.Site{
		ID:        uuid.New().String()[:32],
		Code:      code,
		Name:      name,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(site).Error; err != nil {
		t.Fatalf("Failed to seed site: %v", err)
	}
	return site
}

// SeedUser creates a user row for tests
func SeedUser(t *testing.T, db *gorm.DB, id, name, role string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:        id,
		Name:      name,
		Email:     id + "@test.com",
		Role:      role,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// SeedPO creates a purchase order with the given items and status.
// Line totals and header amounts are derived from the items.
func SeedPO(t *testing.T, db *gorm.DB, code, supplierID, status string, items []entity.POItem) *entity.PurchaseOrder {
	t.Helper()

	poID := uuid.New().String()[:32]
	var subtotal float64
	for i := range items {
		items[i].ID = uuid.New().String()[:32]
		items[i].POID = poID
		items[i].LineTotal = items[i].Quantity * items[i].UnitPrice
		if items[i].Unit == "" {
			items[i].Unit = "pcs"
		}
		if items[i].Status == "" {
			items[i].Status = entity.POItemStatusPending
		}
		items[i].SortOrder = i
		subtotal += items[i].LineTotal
	}

	po := &entity.PurchaseOrder{
		ID:          poID,
		POCode:      code,
		SupplierID:  supplierID,
		Status:      status,
		Subtotal:    subtotal,
		TotalAmount: subtotal,
		Currency:    "USD",
		CreatedBy:   "test-user-001",
		Items:       items,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(po).Error; err != nil {
		t.Fatalf("Failed to seed purchase order: %v", err)
	}
	return po
}
