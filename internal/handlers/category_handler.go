package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/httpx"
	"github.com/dertamme/milestone3/internal/models"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching categories."))
		return
	}
	c.JSON(http.StatusOK, categories)
}

func GetCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Category not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, category)
}

func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

func UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}
	if req.Name == nil && req.Description == nil {
		httpx.JSON(c, httpx.Validation("No data provided for update"))
		return
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Category not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := db.DB.Save(&category).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

func DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Category not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
