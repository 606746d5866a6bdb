package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressRouter() *gin.Engine {
	r := gin.New()
	auth := r.Group("/api", middleware.AuthRequired())
	auth.GET("/users/addresses", ListAddresses)
	auth.POST("/users/addresses", CreateAddress)
	auth.PUT("/users/addresses/:id", UpdateAddress)
	auth.DELETE("/users/addresses/:id", DeleteAddress)
	return r
}

func countDefaults(t *testing.T, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, config.DB.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&n).Error)
	return n
}

func TestCreateDefaultAddressUnsetsSiblings(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	first := map[string]any{"name": "Home", "street": "1 Main St", "is_default": true}
	w := doJSON(t, r, "POST", "/api/users/addresses", token, first)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, countDefaults(t, user.ID))

	second := map[string]any{"name": "Work", "street": "2 Office Rd", "is_default": true}
	w = doJSON(t, r, "POST", "/api/users/addresses", token, second)
	require.Equal(t, http.StatusCreated, w.Code)

	// exactly one default regardless of how many were set before
	assert.EqualValues(t, 1, countDefaults(t, user.ID))

	var def models.Address
	require.NoError(t, config.DB.Where("user_id = ? AND is_default = ?", user.ID, true).First(&def).Error)
	assert.Equal(t, "Work", def.Name)
}

func TestUpdateAddressDefaultToggleIsIdempotent(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	home := models.Address{UserID: user.ID, Name: "Home", Street: "1 Main St", IsDefault: true}
	work := models.Address{UserID: user.ID, Name: "Work", Street: "2 Office Rd"}
	require.NoError(t, config.DB.Create(&home).Error)
	require.NoError(t, config.DB.Create(&work).Error)

	body := map[string]any{"name": "Work", "street": "2 Office Rd", "is_default": true}
	for i := 0; i < 3; i++ {
		w := doJSON(t, r, "PUT", fmt.Sprintf("/api/users/addresses/%d", work.ID), token, body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, countDefaults(t, user.ID))
	}

	var stored models.Address
	require.NoError(t, config.DB.First(&stored, work.ID).Error)
	assert.True(t, stored.IsDefault)
}

func TestUpdateAddressOfOtherUserIsNotFound(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()

	owner, _ := createTestUser(t, "owner@example.com", models.RoleCustomer)
	_, intruderToken := createTestUser(t, "intruder@example.com", models.RoleCustomer)

	addr := models.Address{UserID: owner.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)

	body := map[string]any{"name": "Hijacked", "street": "evil"}
	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/users/addresses/%d", addr.ID), intruderToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the owner's address is untouched
	var stored models.Address
	require.NoError(t, config.DB.First(&stored, addr.ID).Error)
	assert.Equal(t, "Home", stored.Name)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/users/addresses/%d", addr.ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, config.DB.First(&stored, addr.ID).Error)
}

func TestDeleteAddressHardDeletes(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	addr := models.Address{UserID: user.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/users/addresses/%d", addr.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, config.DB.Model(&models.Address{}).Where("id = ?", addr.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestListAddressesOwnOnly(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()

	alice, aliceToken := createTestUser(t, "alice@example.com", models.RoleCustomer)
	bob, _ := createTestUser(t, "bob@example.com", models.RoleCustomer)

	require.NoError(t, config.DB.Create(&models.Address{UserID: alice.ID, Name: "Home", Street: "a"}).Error)
	require.NoError(t, config.DB.Create(&models.Address{UserID: bob.ID, Name: "Bob Home", Street: "b"}).Error)

	w := doJSON(t, r, "GET", "/api/users/addresses", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	addresses := decode(t, w)["addresses"].([]any)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Home", addresses[0].(map[string]any)["name"])
}

func TestAddressRequiresAuth(t *testing.T) {
	setupTestDB(t)
	r := addressRouter()

	w := doJSON(t, r, "GET", "/api/users/addresses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
