package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type StoreController struct {
	DB *gorm.DB
}

func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{DB: db}
}

// GetAllStores
func (sc *StoreController) GetAllStores(c *gin.Context) {
	var stores []models.Store
	if err := sc.DB.Where("is_active = ?", true).Find(&stores).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of stores", stores)
}

// GetStoreByID
func (sc *StoreController) GetStoreByID(c *gin.Context) {
	idStr := c.Param("store_id")
	id, _ := strconv.Atoi(idStr)

	var store models.Store
	if err := sc.DB.First(&store, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store detail", store)
}

// CreateStore
func (sc *StoreController) CreateStore(c *gin.Context) {
	var body struct {
		Name    string `json:"name" binding:"required"`
		Slug    string `json:"slug" binding:"required"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := models.Store{
		Name:     body.Name,
		Slug:     body.Slug,
		Address:  body.Address,
		IsActive: true,
	}
	if err := sc.DB.Create(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Store created", store)
}

// UpdateStore
func (sc *StoreController) UpdateStore(c *gin.Context) {
	idStr := c.Param("store_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name     string `json:"name"`
		Address  string `json:"address"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var store models.Store
	if err := sc.DB.First(&store, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		store.Name = body.Name
	}
	if body.Address != "" {
		store.Address = body.Address
	}
	if body.IsActive != nil {
		store.IsActive = *body.IsActive
	}

	if err := sc.DB.Save(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Store updated", store)
}
