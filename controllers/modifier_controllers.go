package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type ModifierController struct {
	DB *gorm.DB
}

func NewModifierController(db *gorm.DB) *ModifierController {
	return &ModifierController{DB: db}
}

// CreateModifier -> membuat grup modifier beserta option-nya sekaligus
func (mc *ModifierController) CreateModifier(c *gin.Context) {
	var body struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Required  bool   `json:"required"`
		MaxSelect int    `json:"max_select"`
		Options   []struct {
			Name       string  `json:"name" binding:"required"`
			PriceDelta float64 `json:"price_delta"`
		} `json:"options"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := mc.DB.First(&product, body.ProductID).Error; err != nil {
		utils.RespondWithError(c, utils.NewNotFoundError("Product not found"))
		return
	}

	modifier := models.Modifier{
		ProductID: body.ProductID,
		Name:      body.Name,
		Required:  body.Required,
		MaxSelect: body.MaxSelect,
	}
	if modifier.MaxSelect == 0 {
		modifier.MaxSelect = 1
	}
	for _, opt := range body.Options {
		modifier.Options = append(modifier.Options, models.ModifierOption{
			Name:       opt.Name,
			PriceDelta: opt.PriceDelta,
		})
	}

	if err := mc.DB.Create(&modifier).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Modifier created", modifier)
}

// UpdateModifier
func (mc *ModifierController) UpdateModifier(c *gin.Context) {
	idStr := c.Param("modifier_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name      string `json:"name"`
		Required  *bool  `json:"required"`
		MaxSelect *int   `json:"max_select"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var modifier models.Modifier
	if err := mc.DB.First(&modifier, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		modifier.Name = body.Name
	}
	if body.Required != nil {
		modifier.Required = *body.Required
	}
	if body.MaxSelect != nil {
		modifier.MaxSelect = *body.MaxSelect
	}

	if err := mc.DB.Save(&modifier).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Modifier updated", modifier)
}

// DeleteModifier -> menghapus modifier beserta option-nya
func (mc *ModifierController) DeleteModifier(c *gin.Context) {
	idStr := c.Param("modifier_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Where("modifier_id = ?", id).Delete(&models.ModifierOption{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := mc.DB.Delete(&models.Modifier{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Modifier deleted", gin.H{"modifier_id": id})
}
