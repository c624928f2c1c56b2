package web

import (
	"net/http"
	"strings"
	"time"

	"contentfield/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Value-Encoding")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// JWTAuthMiddleware validates field tokens and populates the entry context.
// The host passes the token either as a Bearer header (API calls) or as the
// token query parameter (the iframe URL). A missing or invalid token leaves
// the request unauthenticated; handlers decide whether that matters.
func JWTAuthMiddleware(c rweb.Context) error {
	tokenString := ""
	if authHeader := c.Request().Header("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else {
		tokenString = c.Request().QueryParam("token")
	}

	if tokenString == "" {
		c.Set("entry_id", "")
		c.Set("authenticated", false)
		return c.Next()
	}

	claims, err := models.ValidateToken(tokenString)
	if err != nil {
		// Don't log every invalid token attempt
		c.Set("entry_id", "")
		c.Set("authenticated", false)
		return c.Next()
	}

	c.Set("entry_id", claims.EntryID)
	c.Set("field_id", claims.FieldID)
	c.Set("authenticated", true)
	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses.
// The widget lives inside the host's iframe, so framing is allowed.
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	csp := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"frame-ancestors *",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// LoggingMiddleware records each request once it has been handled.
// Runs after JWTAuthMiddleware so the entry is known.
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()
	err := c.Next()

	entryID, _ := c.Get("entry_id").(string)
	if err != nil {
		logger.LogErr(err, "request failed",
			"method", c.Request().Method(),
			"path", c.Request().Path(),
			"entry_id", entryID,
		)
		return err
	}

	logger.Debug("Request handled",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"entry_id", entryID,
		"duration", time.Since(start).String(),
	)
	return nil
}
