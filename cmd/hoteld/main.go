// Command hoteld runs the hotel identity and access service: registration,
// login, token issuance, role administration, and the guarded hotels API.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/moncef-ajmani/hotel-auth"
	"github.com/moncef-ajmani/hotel-auth/hotels"
)

// Config holds runtime settings for the service.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: sqlite DSN.
//   - SigningKey: HMAC secret for signing tokens (HS256). Required; the
//     service refuses to start without it.
type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	SigningKey  string
}

// LoadConfig applies development defaults and overlays environment values.
// The signing key has no default on purpose.
func LoadConfig() *Config {
	cfg := &Config{
		HTTPAddr:    ":3000",
		DatabaseDSN: "file:hotel.db?cache=shared&_pragma=foreign_keys(1)",
	}

	if v := os.Getenv("HOTEL_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("HOTEL_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	cfg.SigningKey = os.Getenv("HOTEL_JWT_SECRET")

	return cfg
}

func main() {
	cfg := LoadConfig()

	tokens, err := auth.NewTokenService([]byte(cfg.SigningKey), nil)
	if err != nil {
		log.Fatalf("token service: %v (set HOTEL_JWT_SECRET)", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()

	repos := auth.NewRepositoryManager(db)
	repos.MustValidate()
	if err := repos.InitSchema(ctx); err != nil {
		log.Fatalf("init identity schema: %v", err)
	}

	hotelRepo := hotels.NewRepository(db)
	if err := hotelRepo.InitSchema(ctx); err != nil {
		log.Fatalf("init hotels schema: %v", err)
	}

	assembler := auth.NewClaimsAssembler(repos.Users(), repos.Roles())
	authenticator := auth.NewAuthenticator(repos.Users(), assembler, tokens)
	roleManager := auth.NewRoleManager(repos.Users(), repos.Roles())

	app := fiber.New()

	auth.RegisterRoutes(app,
		auth.NewAuthController(authenticator),
		auth.NewSetupController(roleManager),
	)
	hotels.RegisterRoutes(app,
		hotels.NewController(hotelRepo),
		auth.ProtectedRoute(tokens, auth.RoleClient),
	)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
