package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/httpx"
	"github.com/dertamme/milestone3/internal/models"
	"github.com/dertamme/milestone3/internal/storage"
)

// ImageUploader is wired in main; handlers that attach product images report
// an internal error when it is absent.
var ImageUploader storage.Uploader

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gt=0"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	ImgURL      string   `json:"img_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	ImgURL      *string  `json:"img_url"`
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, httpx.Validation("Invalid %s.", name)
	}
	return uint(id), nil
}

func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := db.DB.Find(&products).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching products."))
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Product not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}

	// category_id must reference an existing category
	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		httpx.JSON(c, httpx.Validation("Invalid category_id."))
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		ImgURL:      req.ImgURL,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

func UpdateProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}
	if req.Name == nil && req.Description == nil && req.Price == nil && req.CategoryID == nil && req.ImgURL == nil {
		httpx.JSON(c, httpx.Validation("No data provided for update"))
		return
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Product not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	// Only supplied fields change.
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			httpx.JSON(c, httpx.Validation("Invalid price value."))
			return
		}
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, *req.CategoryID).Error; err != nil {
			httpx.JSON(c, httpx.Validation("Invalid category_id."))
			return
		}
		product.CategoryID = *req.CategoryID
	}
	if req.ImgURL != nil {
		product.ImgURL = *req.ImgURL
	}

	if err := db.DB.Save(&product).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

func DeleteProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Product not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// UploadProductImage stores a multipart image in the object store and points
// the product's img_url at it.
func UploadProductImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	if ImageUploader == nil {
		httpx.JSON(c, httpx.Internal("Image storage is not configured."))
		return
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Product not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpx.JSON(c, httpx.Validation("Missing image file."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpx.JSON(c, httpx.Internal("Failed to read image file."))
		return
	}
	defer file.Close()

	url, err := ImageUploader.UploadImage(
		c.Request.Context(), file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while uploading the image."))
		return
	}

	product.ImgURL = url
	if err := db.DB.Save(&product).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product image uploaded successfully",
		"product": product,
	})
}
