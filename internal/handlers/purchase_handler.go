package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/checkout"
	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/middleware"
	"github.com/arifmahmud/coursebay/internal/models"
	"github.com/arifmahmud/coursebay/internal/pricing"
)

type CheckoutCartLine struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Gateway       string             `json:"gateway" binding:"required,oneof=Stripe Bkash Bank HandCash"`
	Mobile        string             `json:"mobile"`
	Email         string             `json:"email" binding:"omitempty,email"`
	Address       string             `json:"address"`
	AmountPaid    decimal.Decimal    `json:"amount_paid" binding:"required"`
	TransactionID *string            `json:"transaction_id" binding:"omitempty,transaction_id"`
	BkashTrxID    *string            `json:"bkash_trx_id" binding:"omitempty,bkash_trx"`
	BankReceiptNo *string            `json:"bank_receipt_no" binding:"omitempty,bank_receipt"`
	Cart          []CheckoutCartLine `json:"cart" binding:"required,min=1,dive"`
}

// gatewayReferenceField returns the missing reference field name for the
// chosen gateway, or "" when the request carries it.
func gatewayReferenceField(req *CheckoutRequest) string {
	switch req.Gateway {
	case models.GatewayBkash:
		if req.BkashTrxID == nil {
			return "bkash_trx_id"
		}
	case models.GatewayBank:
		if req.BankReceiptNo == nil {
			return "bank_receipt_no"
		}
	default:
		if req.TransactionID == nil {
			return "transaction_id"
		}
	}
	return ""
}

// Checkout turns the submitted cart into a pending purchase. Payment is
// treated as already made by the buyer; only the claimed reference is
// recorded. The session's applied coupon, if any, attaches to the cart line
// for its course. The applied coupon is cleared only after the purchase is
// durably written.
func Checkout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format.")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if field := gatewayReferenceField(&req); field != "" {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, field, "A payment reference is required for this gateway.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	store := middleware.GetSessionStore(c)
	couponUsed := false

	lines := make([]checkout.OrderLine, 0, len(req.Cart))
	for _, cartLine := range req.Cart {
		var course models.Course
		if err := gormDB.Where("id = ?", cartLine.CourseID).First(&course).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				helpers.RespondWithError(c, http.StatusNotFound, "Course not found.")
				return
			}
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving course.")
			return
		}

		line := checkout.OrderLine{
			CourseData: models.CourseSnapshot{
				ID:       course.ID,
				Title:    course.Title,
				Price:    course.Price,
				Image:    course.Image,
				Duration: course.Duration,
			},
			Quantity: cartLine.Quantity,
		}

		if store != nil {
			if sessionCoupon, found := store.Get(userUUID.String()); found && sessionCoupon.CourseID == course.ID {
				quote := pricing.ComputeFinalPrice(course.Price, course.ID, &sessionCoupon)
				code := sessionCoupon.Code
				line.CouponCode = &code
				line.DiscountAmount = quote.DiscountAmount
				couponUsed = true
			}
		}

		lines = append(lines, line)
	}

	assembler := checkout.NewAssembler(checkout.NewGormRepository(gormDB))
	purchase, err := assembler.CreatePurchase(c.Request.Context(), userUUID, checkout.PaymentDetails{
		Gateway:       req.Gateway,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Address:       req.Address,
		AmountPaid:    req.AmountPaid,
		TransactionID: req.TransactionID,
		BkashTrxID:    req.BkashTrxID,
		BankReceiptNo: req.BankReceiptNo,
	}, lines)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Checkout failed. Please try again.")
		return
	}

	if store != nil && couponUsed {
		store.Clear(userUUID.String())
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully.",
		"purchase": purchase,
	})
}

func ListMyPurchases(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchases []models.Purchase
	if err := gormDB.Preload("Items").Where("user_id = ?", userID).Order("purchased_at DESC").Find(&purchases).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func GetPurchase(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.Preload("Items").First(&purchase, purchaseID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	if purchase.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this purchase.")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

func generateReceiptSignature(purchaseID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s", purchaseID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func generateReceiptQRData(purchase *models.Purchase) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := generateReceiptSignature(purchase.ID, purchase.UserID, secretKey)
	return fmt.Sprintf("purchase:%s;status:%s;signature:%s",
		purchase.ID.String(),
		purchase.Status,
		signature,
	)
}

// GenerateReceiptQR renders a signed QR for the purchase receipt.
func GenerateReceiptQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.First(&purchase, purchaseID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	if purchase.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this receipt.")
		return
	}

	qrImage, err := qrcode.Encode(generateReceiptQRData(&purchase), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func AdminListPurchases(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pageNum, limitNum, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Purchase{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var purchases []models.Purchase
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Items").Offset(offset).Limit(limitNum).Order("purchased_at DESC").Find(&purchases).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases":   purchases,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangePurchaseStatus sets the purchase status to any of the five allowed
// values. There is no transition graph: completed may go back to pending.
// Marking a purchase completed enrolls the buyer in every course on it.
func ChangePurchaseStatus(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Status is required.")
		return
	}

	if !models.ValidStatus(req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown status value.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.Preload("Items").First(&purchase, purchaseID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&purchase).Update("status", req.Status).Error; err != nil {
			return err
		}

		if req.Status != models.StatusCompleted {
			return nil
		}

		return checkout.EnrollPurchase(c.Request.Context(), checkout.NewGormRepository(tx), &purchase)
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase status updated.",
		"status":  req.Status,
	})
}

func DeletePurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", purchaseID).Delete(&models.Purchase{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete purchase.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase deleted successfully.",
	})
}
