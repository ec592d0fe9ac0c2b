// server/internal/api/handlers/asset_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/s3"
	"asset-verse-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetHandler struct {
	Engine   *engine.Engine
	Assets   store.AssetStore
	Users    store.UserStore
	Uploader *s3.Uploader
}

type CreateAssetRequest struct {
	ProductName     string `json:"productName" binding:"required"`
	ProductType     string `json:"productType" binding:"required,oneof=Returnable Non-returnable"`
	ProductQuantity int    `json:"productQuantity" binding:"required,min=1"`
}

type UpdateAssetRequest struct {
	ProductName     string `json:"productName" binding:"required"`
	ProductType     string `json:"productType" binding:"required,oneof=Returnable Non-returnable"`
	ProductQuantity int    `json:"productQuantity" binding:"required,min=0"`
}

// CreateAsset registers a new inventory item owned by the calling HR.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	hr, err := h.Users.FindUser(ctx, hrEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load HR account"})
		return
	}

	asset, err := h.Engine.CreateAsset(ctx, hrEmail, hr.CompanyName, req.ProductName, req.ProductType, req.ProductQuantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// GetMyAssets lists the calling HR's inventory.
func (h *AssetHandler) GetMyAssets(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	assets, err := h.Assets.FindAssetsByHR(ctx, hrEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
		return
	}

	c.JSON(http.StatusOK, assets)
}

// UpdateAsset edits an asset's details and capacity. Setting the capacity
// below the currently assigned units is rejected with a conflict.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	assetID := c.Param("id")

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	asset, err := h.Engine.UpdateAsset(ctx, hrEmail, assetID, req.ProductName, req.ProductType, req.ProductQuantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset removes an asset with no outstanding assignments.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	assetID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Engine.DeleteAsset(ctx, hrEmail, assetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// UploadAssetImage stores a product image in S3 and saves its URL on the
// asset. Requests created afterwards snapshot the new image.
func (h *AssetHandler) UploadAssetImage(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	assetID := c.Param("id")

	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	asset, err := h.Assets.FindAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	if asset.HREmail != hrEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this asset"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("assets/%s/%s%s", assetID, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
	imageURL, err := h.Uploader.UploadFile(ctx, file, objectKey, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image", "details": err.Error()})
		return
	}

	if err := h.Assets.SetAssetImage(ctx, assetID, imageURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "productImage": imageURL})
}
