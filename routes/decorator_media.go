package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterDecoratorMediaRoutes adds the profile photo upload endpoint.
// The image goes to Cloudinary and the secure URL lands on both the
// decorator profile and the user row.
func RegisterDecoratorMediaRoutes(rg *gin.RouterGroup) {
	rg.POST("/photo", uploadDecoratorPhoto)
}

func uploadDecoratorPhoto(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil || header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No photo provided"})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid photo"})
		return
	}

	var decorator models.Decorator
	if err := database.DB.Where("email = ?", current.Email).First(&decorator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Decorator profile not found"})
		return
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read photo"})
		return
	}
	defer file.Close()

	folder := "decorators/profile_photos/" + strconv.Itoa(int(decorator.ID))
	ow := true
	uf := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &ow,
		UniqueFilename: &uf,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Photo upload failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo upload failed"})
		return
	}

	decorator.PhotoURL = up.SecureURL
	if err := database.DB.Save(&decorator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile"})
		return
	}

	// Keep the user row's photo in sync so both dashboards show it
	database.DB.Model(&models.User{}).
		Where("email = ?", decorator.Email).
		Update("photo_url", up.SecureURL)

	log.Printf("✅ Decorator %d photo updated", decorator.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"photo_url": up.SecureURL},
	})
}
