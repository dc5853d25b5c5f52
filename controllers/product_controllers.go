package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetProductsByStore -> katalog publik storefront, termasuk modifier
func (pc *ProductController) GetProductsByStore(c *gin.Context) {
	storeID := c.Param("store_id")

	var products []models.Product
	query := pc.DB.Preload("Modifiers.Options").
		Where("store_id = ? AND is_available = ?", storeID, true)
	if catID := c.Query("category_id"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	var product models.Product
	if err := pc.DB.Preload("Modifiers.Options").Preload("Category").
		First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var body struct {
		StoreID     uint    `json:"store_id" binding:"required"`
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := pc.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Category not found"))
		return
	}

	product := models.Product{
		StoreID:     body.StoreID,
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		IsAvailable: true,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		IsAvailable *bool    `json:"is_available"`
		CategoryID  *uint    `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		product.Name = body.Name
	}
	if body.Description != "" {
		product.Description = body.Description
	}
	if body.Price != nil {
		product.Price = *body.Price
	}
	if body.IsAvailable != nil {
		product.IsAvailable = *body.IsAvailable
	}
	if body.CategoryID != nil {
		product.CategoryID = *body.CategoryID
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	idStr := c.Param("product_id")
	id, _ := strconv.Atoi(idStr)

	if err := pc.DB.Delete(&models.Product{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
