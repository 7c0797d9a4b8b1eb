package middelware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles JWT token operations
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	ProfRepo          repository.ProfessionalRepositoryInterface
	BlacklistedTokens map[string]time.Time // Token revocation blacklist (for immediate invalidation)
	TokenMutex        sync.RWMutex
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger, profRepo repository.ProfessionalRepositoryInterface) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		ProfRepo:          profRepo,
		BlacklistedTokens: make(map[string]time.Time),
	}
}

// GenerateToken generates a JWT token for an authenticated caller
func (j *JWTManager) GenerateToken(userID, email string, userType models.UserType, organizationID string) (string, error) {
	claims := models.JWTClaims{
		UserID:         userID,
		Email:          email,
		UserType:       userType,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.Config.JWTExpiresIn)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for user: %s", userID)
	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(j.Config.JWTSecret), nil
	})
	if err != nil {
		j.Logger.Errorf("Failed to parse JWT token: %v", err)
		return nil, err
	}

	if !token.Valid {
		j.Logger.Error("Invalid JWT token")
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		j.Logger.Error("Failed to extract JWT claims")
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.After(time.Now()) {
		return nil, fmt.Errorf("token not yet valid")
	}

	j.TokenMutex.RLock()
	if expiry, exists := j.BlacklistedTokens[claims.ID]; exists && expiry.After(time.Now()) {
		j.TokenMutex.RUnlock()
		return nil, fmt.Errorf("token has been revoked")
	}
	j.TokenMutex.RUnlock()

	j.Logger.Debugf("Successfully validated JWT token for user: %s", claims.UserID)
	return claims, nil
}

// RevokeToken adds a token to the blacklist (logout)
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()
	j.BlacklistedTokens[tokenID] = expiry
}

// CleanupExpiredTokens removes expired tokens from blacklist
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
}

func (j *JWTManager) unauthorized(c *gin.Context, message, details string) {
	c.JSON(http.StatusUnauthorized, models.APIResponse{
		Status:  "error",
		Code:    http.StatusUnauthorized,
		Message: message,
		Error: &models.APIError{
			Type:    "AuthenticationError",
			Details: details,
		},
	})
	c.Abort()
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("authorization header must be in format: Bearer <token>")
	}
	return strings.TrimSpace(parts[1]), nil
}

// AuthMiddleware validates the JWT token from the Authorization header
// and stores the resulting session in the request context.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			j.Logger.Errorf("Authentication rejected: %v", err)
			j.unauthorized(c, "Authentication required", err.Error())
			return
		}

		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			j.Logger.Errorf("Token validation failed: %v", err)
			j.unauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set("session", claims.Session())
		c.Set("jwt_claims", claims)

		j.Logger.Debugf("User authenticated: %s", claims.UserID)
		c.Next()
	}
}

// OptionalAuth parses a token when one is present but lets anonymous
// requests through. Signup endpoints use this: an organization session
// changes what the operation does, a missing one does not reject it.
func (j *JWTManager) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			j.unauthorized(c, "Invalid Authorization header", err.Error())
			return
		}
		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			j.unauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set("session", claims.Session())
		c.Set("jwt_claims", claims)
		c.Next()
	}
}

// SessionFrom extracts the authenticated session from the request
// context. Nil for anonymous requests.
func SessionFrom(c *gin.Context) *models.Session {
	value, exists := c.Get("session")
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// LoginCredentials is the login request body
type LoginCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginEndpoint authenticates a professional by email and password and
// returns a bearer token.
func (j *JWTManager) LoginEndpoint(c *gin.Context) {
	var req LoginCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	professional, err := j.ProfRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to look up account",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	if professional == nil || !utils.CheckPassword(professional.PasswordHash, req.Password) {
		j.unauthorized(c, "Invalid email or password", "Invalid email or password")
		return
	}
	if professional.DeactivatedAt != nil || professional.SuspendedAt != nil {
		c.JSON(http.StatusForbidden, models.APIResponse{
			Status:  "error",
			Code:    http.StatusForbidden,
			Message: "Account is not active",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Account has been deactivated or suspended",
			},
		})
		return
	}

	tokenString, err := j.GenerateToken(professional.ID, professional.Email, models.UserTypeProfessional, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Token generation failed",
			Error: &models.APIError{
				Type:    "TokenError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Token generated successfully",
		Data: map[string]interface{}{
			"access_token": tokenString,
			"token_type":   "Bearer",
			"expires_in":   int(j.Config.JWTExpiresIn.Seconds()),
			"user": map[string]interface{}{
				"id":         professional.ID,
				"email":      professional.Email,
				"first_name": professional.FirstName,
				"last_name":  professional.LastName,
			},
		},
	})
}
