package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"quickbite/config"
	"quickbite/handlers"
	"quickbite/middleware"
	"quickbite/models"
	"quickbite/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database into the package-level
// config.DB handle and returns the real router. Each test gets its own
// database; cache=shared keeps it alive across gorm's pooled connections.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidations()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// newUser inserts a user directly and returns it with a valid token.
func newUser(t *testing.T, role models.UserRole) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         string(role) + " user",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return &user, token
}

// newRestaurant inserts a restaurant owned by the given user.
func newRestaurant(t *testing.T, ownerID uint) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		OwnerID:  ownerID,
		Name:     "Testaurant " + uuid.NewString()[:8],
		Cuisines: []string{"italian"},
		Address:  "1 Test Street",
		IsOpen:   true,
		IsActive: true,
	}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	return &restaurant
}

// newMenuItem inserts an available menu item.
func newMenuItem(t *testing.T, restaurantID uint, name string, price float64) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		IsAvailable:  true,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return &item
}

// doJSON performs an authenticated JSON request against the router.
func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// decode unmarshals a recorder body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
