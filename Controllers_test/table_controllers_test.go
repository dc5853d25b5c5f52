package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/controllers"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Store{}, &models.Table{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.PATCH("/tables/:table_id/active", tableCtrl.SetTableActive)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func seedStore(t *testing.T, db *gorm.DB) *models.Store {
	store := models.Store{Name: "Kedai Uji", Slug: "kedai-uji-tables", IsActive: true}
	assert.NoError(t, db.Create(&store).Error)
	return &store
}

func TestCreateTableGeneratesQRToken(t *testing.T) {
	db := setupTestDBForTables(t)
	store := seedStore(t, db)
	router := setupTableRouter(db)

	payload := map[string]interface{}{
		"store_id":   store.ID,
		"identifier": "A1",
		"capacity":   4,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest("POST", "/tables", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var table models.Table
	assert.NoError(t, db.Where("identifier = ?", "A1").First(&table).Error)
	assert.NotEmpty(t, table.QRCode)

	// Token QR harus bisa didekripsi kembali ke payload meja
	var decoded models.QRPayload
	assert.NoError(t, utils.DecryptJSON(table.QRCode, &decoded))
	assert.Equal(t, table.ID, decoded.TableID)
	assert.Equal(t, "A1", decoded.Identifier)
	assert.Equal(t, store.ID, decoded.StoreID)
}

func TestReactivateTableRewritesQRToken(t *testing.T) {
	db := setupTestDBForTables(t)
	store := seedStore(t, db)
	router := setupTableRouter(db)

	table := models.Table{StoreID: store.ID, Identifier: "B1", Capacity: 4, IsActive: false}
	assert.NoError(t, db.Create(&table).Error)
	oldToken := "token-lama"
	table.QRCode = oldToken
	assert.NoError(t, db.Save(&table).Error)

	payload, _ := json.Marshal(map[string]interface{}{"active": true})
	url := "/tables/" + strconv.Itoa(int(table.ID)) + "/active"
	req := httptest.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var refreshed models.Table
	assert.NoError(t, db.First(&refreshed, table.ID).Error)
	assert.True(t, refreshed.IsActive)
	assert.NotEqual(t, oldToken, refreshed.QRCode)

	var decoded models.QRPayload
	assert.NoError(t, utils.DecryptJSON(refreshed.QRCode, &decoded))
	assert.Equal(t, table.ID, decoded.TableID)
}

func TestDeleteTableIsSoftDelete(t *testing.T) {
	db := setupTestDBForTables(t)
	store := seedStore(t, db)
	router := setupTableRouter(db)

	table := models.Table{StoreID: store.ID, Identifier: "C1", Capacity: 2, IsActive: true}
	assert.NoError(t, db.Create(&table).Error)

	req := httptest.NewRequest("DELETE", "/tables/"+strconv.Itoa(int(table.ID)), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Baris masih ada: identifier diganti placeholder, is_deleted di-set
	var refreshed models.Table
	assert.NoError(t, db.First(&refreshed, table.ID).Error)
	assert.True(t, refreshed.IsDeleted)
	assert.False(t, refreshed.IsActive)
	assert.NotEqual(t, "C1", refreshed.Identifier)
	assert.Contains(t, refreshed.Identifier, "deleted-")

	// Meja terhapus tidak muncul di listing
	req = httptest.NewRequest("GET", "/tables", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	if response["data"] != nil {
		data := response["data"].([]interface{})
		assert.Len(t, data, 0)
	}
}
