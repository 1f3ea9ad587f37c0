package api

import (
	"errors"                            // Error inspection
	"net/http"                          // HTTP status codes
	"strings"                           // String manipulation
	"time"                              // Token lifetime
	"waste_tracker/internal/domain"     // Importing domain models
	"waste_tracker/internal/middleware" // Claims stored by the auth middleware
	"waste_tracker/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Username   string `json:"username" binding:"required"` // Username must be provided
	Password   string `json:"password" binding:"required"` // Password must be provided
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	ExtName    string `json:"ext_name"`
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"` // JWT token
}

// RegisterHandler creates a viewer account. The username is checked first and
// the unique index catches a concurrent insert that slips past the check.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		tx := db.WithContext(c.Request.Context())

		// Check if the username already exists
		var existing domain.User
		err := tx.Where("username = ?", req.Username).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Failed to look up username")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if errors.Is(err, utils.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to hash password")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		user := domain.User{
			Username:   req.Username,
			Password:   hash,
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			LastName:   req.LastName,
			ExtName:    req.ExtName,
			Roles:      domain.RoleViewer,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists."})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, user) // Password hash is never serialized
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		err := db.WithContext(c.Request.Context()).
			Where("username = ?", strings.TrimSpace(req.Username)).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Not a Registered User"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Failed to look up user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Password"})
			return
		}
		token, err := utils.GenerateJWT(user, jwtSecret, ttl)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Message: "Login successful", Token: token})
	}
}

// UserInfoHandler echoes the verified token claims
func UserInfoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": claims})
	}
}
