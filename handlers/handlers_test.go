package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"
	"restaurant-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	config.DB = db
	config.OrderLinePolicy = "abort"

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// newUser persists a user with the given role and returns it with a valid
// bearer token.
func newUser(t *testing.T, name string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, PasswordHash: string(hash), Role: role}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func newItem(t *testing.T, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: models.CategoryBurger,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func perform(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
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

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterLoginProfile(t *testing.T) {
	r := setupRouter(t)

	w := perform(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "alice", "password": "secret123", "address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// Duplicate name
	w = perform(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "alice", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password
	w = perform(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"name": "alice", "password": "nope999",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"name": "alice", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Profile requires a token and never exposes the credential hash.
	w = perform(t, r, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(t, r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestMenuValidation(t *testing.T) {
	r := setupRouter(t)
	_, staffToken := newUser(t, "bob", models.RoleEmployee)
	_, custToken := newUser(t, "carol", models.RoleCustomer)

	w := perform(t, r, http.MethodPost, "/api/menu", staffToken, gin.H{
		"name": "Cheeseburger", "price": 5.99, "category": "burger", "calories": 550,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(t, r, http.MethodPost, "/api/menu", staffToken, gin.H{
		"name": "Bad", "price": -1, "category": "burger",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(t, r, http.MethodPost, "/api/menu", staffToken, gin.H{
		"name": "Bad", "price": 1, "category": "sushi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(t, r, http.MethodPost, "/api/menu", staffToken, gin.H{
		"name": "Bad", "price": 1, "category": "burger", "calories": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Customers cannot mutate the catalog.
	w = perform(t, r, http.MethodPost, "/api/menu", custToken, gin.H{
		"name": "Sneaky", "price": 1, "category": "burger",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Public list with category filter.
	w = perform(t, r, http.MethodGet, "/api/menu?category=burger", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestMenuUsedInOrders(t *testing.T) {
	r := setupRouter(t)
	user, _ := newUser(t, "alice", models.RoleCustomer)
	item := newItem(t, "Cola", "2.50")

	_, err := orders.Submit(config.DB, user.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 2},
	}, orders.PolicyAbort)
	require.NoError(t, err)

	w := perform(t, r, http.MethodGet, fmt.Sprintf("/api/menu/%d", item.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["used_in_orders"])
}

func TestPlaceOrderScenario(t *testing.T) {
	r := setupRouter(t)
	_, token := newUser(t, "alice", models.RoleCustomer)
	burger := newItem(t, "Cheeseburger", "5.99")
	drink := newItem(t, "Cola", "2.50")

	w := perform(t, r, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": drink.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, 14.48, order["total_price"])
	assert.Equal(t, "pending", order["status"])
	items := order["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, 5.99, first["unit_price"])
	assert.Equal(t, 11.98, first["subtotal"])
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	r := setupRouter(t)
	_, token := newUser(t, "alice", models.RoleCustomer)

	w := perform(t, r, http.MethodPost, "/api/orders", token, gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	config.DB.Model(&models.Order{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestPlaceOrderOnBehalf(t *testing.T) {
	r := setupRouter(t)
	customer, custToken := newUser(t, "alice", models.RoleCustomer)
	other, _ := newUser(t, "bob", models.RoleCustomer)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	item := newItem(t, "Cola", "2.50")

	// A customer cannot order for someone else.
	w := perform(t, r, http.MethodPost, "/api/orders", custToken, gin.H{
		"user_id": other.ID,
		"items":   []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin can.
	w = perform(t, r, http.MethodPost, "/api/orders", adminToken, gin.H{
		"user_id": customer.ID,
		"items":   []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, float64(customer.ID), order["user_id"])

	// Unknown target user.
	w = perform(t, r, http.MethodPost, "/api/orders", adminToken, gin.H{
		"user_id": 9999,
		"items":   []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderVisibility(t *testing.T) {
	r := setupRouter(t)
	owner, ownerToken := newUser(t, "alice", models.RoleCustomer)
	_, strangerToken := newUser(t, "mallory", models.RoleCustomer)
	_, staffToken := newUser(t, "bob", models.RoleEmployee)
	item := newItem(t, "Cola", "2.50")

	order, err := orders.Submit(config.DB, owner.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	w := perform(t, r, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, r, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(t, r, http.MethodGet, path, staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateOrderStatusAuthorization(t *testing.T) {
	r := setupRouter(t)
	owner, ownerToken := newUser(t, "alice", models.RoleCustomer)
	_, staffToken := newUser(t, "bob", models.RoleEmployee)
	item := newItem(t, "Cola", "2.50")

	order, err := orders.Submit(config.DB, owner.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	// The owner is a plain customer: denied, status unchanged.
	w := perform(t, r, http.MethodPut, path, ownerToken, gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	var unchanged models.Order
	require.NoError(t, config.DB.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.StatusPending, unchanged.Status)

	// An employee may deliver.
	w = perform(t, r, http.MethodPut, path, staffToken, gin.H{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)
	var delivered models.Order
	require.NoError(t, config.DB.First(&delivered, order.ID).Error)
	assert.Equal(t, models.StatusDelivered, delivered.Status)

	// Only an admin may force it back.
	w = perform(t, r, http.MethodPut, path, staffToken, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteOrderRequiresAdmin(t *testing.T) {
	r := setupRouter(t)
	owner, _ := newUser(t, "alice", models.RoleCustomer)
	_, staffToken := newUser(t, "bob", models.RoleEmployee)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	item := newItem(t, "Cola", "2.50")

	order, err := orders.Submit(config.DB, owner.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/admin/orders/%d", order.ID)

	w := perform(t, r, http.MethodDelete, path, staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(t, r, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	config.DB.Model(&models.OrderLine{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestDeleteUserCascades(t *testing.T) {
	r := setupRouter(t)
	user, token := newUser(t, "alice", models.RoleCustomer)
	item := newItem(t, "Cola", "2.50")

	_, err := orders.Submit(config.DB, user.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)

	w := perform(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var nOrders, nLines int64
	config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&nOrders)
	config.DB.Model(&models.OrderLine{}).Count(&nLines)
	assert.Equal(t, int64(0), nOrders)
	assert.Equal(t, int64(0), nLines)
}

func TestDeleteMenuItemCascadesLines(t *testing.T) {
	r := setupRouter(t)
	user, _ := newUser(t, "alice", models.RoleCustomer)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	burger := newItem(t, "Cheeseburger", "5.99")
	drink := newItem(t, "Cola", "2.50")

	order, err := orders.Submit(config.DB, user.ID, []orders.LineRequest{
		{MenuItemID: burger.ID, Quantity: 2},
		{MenuItemID: drink.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)

	w := perform(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", drink.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var nLines int64
	config.DB.Model(&models.OrderLine{}).Where("order_id = ?", order.ID).Count(&nLines)
	assert.Equal(t, int64(1), nLines)

	// The stored total is a snapshot and stays put.
	var reloaded models.Order
	require.NoError(t, config.DB.First(&reloaded, order.ID).Error)
	assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("14.48")))
}

func TestOrderLineDuplicateConflict(t *testing.T) {
	r := setupRouter(t)
	user, _ := newUser(t, "alice", models.RoleCustomer)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	item := newItem(t, "Cola", "2.50")

	order, err := orders.Submit(config.DB, user.ID, []orders.LineRequest{
		{MenuItemID: item.ID, Quantity: 1},
	}, orders.PolicyAbort)
	require.NoError(t, err)

	w := perform(t, r, http.MethodPost, "/api/admin/order-lines", adminToken, gin.H{
		"order_id": order.ID, "menu_item_id": item.ID, "quantity": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// A fresh pair on the same order is fine and leaves the snapshot
	// total alone.
	other := newItem(t, "Fries", "1.99")
	w = perform(t, r, http.MethodPost, "/api/admin/order-lines", adminToken, gin.H{
		"order_id": order.ID, "menu_item_id": other.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reloaded models.Order
	require.NoError(t, config.DB.First(&reloaded, order.ID).Error)
	assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("2.50")))
}

func TestCreateEmployeeProvisionsUser(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	_, staffToken := newUser(t, "bob", models.RoleEmployee)

	// Only admins manage employees.
	w := perform(t, r, http.MethodPost, "/api/admin/employees", staffToken, gin.H{
		"name": "dave", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(t, r, http.MethodPost, "/api/admin/employees", adminToken, gin.H{
		"name": "dave", "password": "secret123", "description": "line cook",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, config.DB.Preload("Employee").Where("name = ?", "dave").First(&user).Error)
	assert.Equal(t, models.RoleEmployee, user.Role)
	require.NotNil(t, user.Employee)
	assert.Equal(t, "line cook", user.Employee.Description)
}

func TestMaintenanceReset(t *testing.T) {
	r := setupRouter(t)
	_, custToken := newUser(t, "alice", models.RoleCustomer)
	_, adminToken := newUser(t, "root", models.RoleAdmin)
	newItem(t, "Cola", "2.50")

	w := perform(t, r, http.MethodPost, "/api/admin/maintenance/reset", custToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(t, r, http.MethodPost, "/api/admin/maintenance/reset", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var nUsers, nItems int64
	config.DB.Model(&models.User{}).Count(&nUsers)
	config.DB.Model(&models.MenuItem{}).Count(&nItems)
	assert.Equal(t, int64(0), nUsers)
	assert.Equal(t, int64(0), nItems)
}
