package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/config"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

// CasdoorAuthMiddleware authenticates requests against the Casdoor
// identity provider and mirrors each signed-in user into our own
// users table.
type CasdoorAuthMiddleware struct {
	client   *casdoorsdk.Client
	userRepo repositories.UserRepository
	cfg      *config.Config
	logger   utils.Logger
}

func NewCasdoorAuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository, logger utils.Logger) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Casdoor.Endpoint,
		cfg.Casdoor.ClientID,
		cfg.Casdoor.ClientSecret,
		cfg.Casdoor.Cert,
		cfg.Casdoor.Organization,
		cfg.Casdoor.Application,
	)

	return &CasdoorAuthMiddleware{
		client:   client,
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// AuthMiddleware rejects requests without a valid bearer token.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
			c.Abort()
			return
		}

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
			c.Abort()
			return
		}

		user, err := cam.resolveUser(c.Request.Context(), identityFromClaims(claims))
		if err != nil {
			cam.logger.Error("Failed to resolve authenticated user", "error", err)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)
		c.Next()
	}
}

// AdminMiddleware gates the admin surface on the email allow-list.
// It must run after AuthMiddleware.
func (cam *CasdoorAuthMiddleware) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		if email == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Non authentifié"})
			c.Abort()
			return
		}

		if !cam.cfg.IsAdmin(email) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Non autorisé - accès administrateur requis"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveUser mirrors the identity into our users table. Repeat
// requests are served through the cached GetByID; the row is only
// upserted on a cache/database miss or when the identity claims
// changed. The stored role is authoritative; claims never overwrite
// it.
func (cam *CasdoorAuthMiddleware) resolveUser(ctx context.Context, incoming *models.User) (*models.User, error) {
	stored, err := cam.userRepo.GetByID(ctx, incoming.ID)
	if err == nil && identityMatches(stored, incoming) {
		return stored, nil
	}
	return cam.userRepo.UpsertFromIdentity(ctx, incoming)
}

// identityFromClaims builds the user row a token asserts.
func identityFromClaims(claims *casdoorsdk.Claims) *models.User {
	user := &models.User{
		ID:    claims.Id,
		Name:  claims.User.DisplayName,
		Email: claims.User.Email,
	}
	if user.Name == "" {
		user.Name = claims.User.Name
	}
	if claims.User.Avatar != "" {
		avatar := claims.User.Avatar
		user.Image = &avatar
	}
	return user
}

func identityMatches(stored, incoming *models.User) bool {
	if stored.Name != incoming.Name || stored.Email != incoming.Email {
		return false
	}
	if (stored.Image == nil) != (incoming.Image == nil) {
		return false
	}
	return stored.Image == nil || *stored.Image == *incoming.Image
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// IdentityFromContext builds the service-layer caller identity from
// what AuthMiddleware stored.
func IdentityFromContext(c *gin.Context) *services.Identity {
	userID := c.GetString("user_id")
	if userID == "" {
		return nil
	}

	identity := &services.Identity{
		ID:    userID,
		Email: c.GetString("user_email"),
	}
	if u, exists := c.Get("user"); exists {
		if user, ok := u.(*models.User); ok {
			identity.Name = user.Name
		}
	}
	return identity
}
