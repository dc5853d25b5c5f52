package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru; token QR dibuat saat pembuatan
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		StoreID    uint    `json:"store_id" binding:"required"`
		Identifier string  `json:"identifier" binding:"required"`
		Capacity   int     `json:"capacity"`
		DeviceID   *string `json:"device_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var store models.Store
	if err := tc.DB.First(&store, req.StoreID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Store not found"))
		return
	}

	table := models.Table{
		StoreID:    req.StoreID,
		Identifier: req.Identifier,
		Capacity:   req.Capacity,
		DeviceID:   req.DeviceID,
		IsActive:   true,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tc.regenerateQRCode(&table); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (store=%d)", table.Identifier, table.StoreID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja yang belum dihapus
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	query := tc.DB.Where("is_deleted = ?", false)
	if storeID := c.Query("store_id"); storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.Where("is_deleted = ?", false).First(&table, tableID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// SetTableActive -> mengaktifkan/menonaktifkan meja.
// Saat diaktifkan kembali, token QR ditulis ulang sehingga QR lama hangus.
func (tc *TableController) SetTableActive(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("is_deleted = ?", false).First(&table, tableID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Table not found"))
		return
	}

	table.IsActive = *req.Active
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if table.IsActive {
		if err := tc.regenerateQRCode(&table); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Table %d active=%v", table.ID, table.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> soft delete: identifier diganti placeholder acak dan
// is_deleted di-set, karena sesi lama masih mereferensikan baris ini.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.Where("is_deleted = ?", false).First(&table, tableID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Table not found"))
		return
	}

	table.Identifier = utils.GenerateDeletedPlaceholder()
	table.IsDeleted = true
	table.IsActive = false
	table.QRCode = ""

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d soft-deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// regenerateQRCode menulis ulang token QR terenkripsi pada baris meja.
func (tc *TableController) regenerateQRCode(table *models.Table) error {
	token, err := utils.EncryptJSON(models.QRPayload{
		TableID:    table.ID,
		Identifier: table.Identifier,
		StoreID:    table.StoreID,
	})
	if err != nil {
		return err
	}

	table.QRCode = token
	if err := tc.DB.Save(table).Error; err != nil {
		return err
	}
	if table.QRCode == "" {
		return errors.New("qr code was not persisted")
	}
	return nil
}
