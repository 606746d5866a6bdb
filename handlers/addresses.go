package handlers

import (
	"net/http"

	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressRequest struct {
	Type          string `json:"type" binding:"omitempty,oneof=HOME WORK OTHER"`
	Name          string `json:"name" binding:"required"`
	Street        string `json:"street" binding:"required"`
	Unit          string `json:"unit"`
	Building      string `json:"building"`
	PostalCode    string `json:"postal_code"`
	District      string `json:"district"`
	IsDefault     bool   `json:"is_default"`
	DeliveryNotes string `json:"delivery_notes"`
}

// ListAddresses returns the caller's own addresses, default first.
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	err := config.DB.
		Where("user_id = ?", userID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress adds an address for the caller. Marking it default unsets
// every sibling inside the same transaction, so at most one address per
// user carries the flag.
func CreateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := models.Address{
		UserID:        userID,
		Type:          req.Type,
		Name:          req.Name,
		Street:        req.Street,
		Unit:          req.Unit,
		Building:      req.Building,
		PostalCode:    req.PostalCode,
		District:      req.District,
		IsDefault:     req.IsDefault,
		DeliveryNotes: req.DeliveryNotes,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Address created", "address": address})
}

// UpdateAddress replaces an address's fields. Ownership mismatch is
// reported as not-found so existence is never confirmed to non-owners.
func UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.First(&address, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	if address.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", userID, address.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"type":           req.Type,
			"name":           req.Name,
			"street":         req.Street,
			"unit":           req.Unit,
			"building":       req.Building,
			"postal_code":    req.PostalCode,
			"district":       req.District,
			"is_default":     req.IsDefault,
			"delivery_notes": req.DeliveryNotes,
		}).Error
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": address})
}

// DeleteAddress performs an ownership check then a hard delete.
func DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.First(&address, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	if address.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if err := config.DB.Delete(&address).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
