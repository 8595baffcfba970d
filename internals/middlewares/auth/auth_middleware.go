// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"laporanku_backend/internals/constants"
)

// Principal adalah aktor terotentikasi yang dikirim identity provider
// eksternal lewat JWT: username, nama tampilan, dan role.
type Principal struct {
	Username    string
	DisplayName string
	Role        string
}

// PrincipalFromLocals membaca principal yang di-set AuthMiddleware.
func PrincipalFromLocals(c *fiber.Ctx) Principal {
	p := Principal{}
	if v, ok := c.Locals("user_name").(string); ok {
		p.Username = v
	}
	if v, ok := c.Locals("full_name").(string); ok {
		p.DisplayName = v
	}
	if v, ok := c.Locals("userRole").(string); ok {
		p.Role = v
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	return p
}

// AuthMiddleware memverifikasi token dari identity provider eksternal.
// Login/session bukan urusan service ini; yang dipercaya hanya klaim token.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) Parse & verifikasi JWT
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) Simpan klaim ke context; role harus termasuk himpunan tertutup
		storeBasicClaimsToLocals(c, claims)
		if role, _ := c.Locals("userRole").(string); !constants.IsKnownRole(role) {
			log.Printf("[ERROR] Role tidak dikenal: %q", role)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Unknown role")
		}

		return c.Next()
	}
}
