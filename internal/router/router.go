package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"premam/internal/config"
	"premam/internal/handler"
	"premam/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	admins service.AdminService,
	creatorHandler *handler.CreatorHandler,
	accountHandler *handler.AccountHandler,
	messageHandler *handler.MessageHandler,
	voteHandler *handler.VoteHandler,
	verifyHandler *handler.VerifyHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Creator pages and moderation session
	api.POST("/creators", creatorHandler.Create)
	api.GET("/creators/:slug", creatorHandler.GetBySlug)
	api.POST("/login", creatorHandler.Login)
	api.POST("/logout", creatorHandler.Logout)

	// Sender accounts: one registration protocol per deployment
	switch cfg.AuthMode {
	case config.AuthDirect:
		api.POST("/auth/signup", accountHandler.Signup)
		api.POST("/auth/login", accountHandler.Login)
	default:
		api.POST("/auth/signup/otp", accountHandler.SendSignupOTP)
		api.POST("/auth/signup/verify", accountHandler.VerifySignupOTP)
		api.POST("/auth/login/otp", accountHandler.SendLoginOTP)
		api.POST("/auth/login/verify", accountHandler.VerifyLoginOTP)
	}

	// Identity collaborator
	api.POST("/auth/verify-instagram", verifyHandler.VerifyInstagram)
	api.POST("/auth/instagram", verifyHandler.InstagramExchange)

	// Messages and votes
	api.POST("/messages", messageHandler.Send)
	api.GET("/messages/public", messageHandler.ListPublic)
	api.GET("/messages/:id/votes", voteHandler.Tally)
	api.POST("/messages/:id/votes", voteHandler.Cast)

	// Secured user routes (require a sender JWT)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	secured.GET("/me", accountHandler.Me)

	// Moderation routes (require a live admin session)
	admin := api.Group("", handler.AdminRequired(admins))
	admin.GET("/creators/:id/messages", messageHandler.Inbox)
	admin.PATCH("/messages/:id/visibility", messageHandler.SetVisibility)
	admin.PATCH("/messages/:id/read", messageHandler.SetRead)
	admin.PATCH("/messages/:id/archive", messageHandler.SetArchived)
	admin.DELETE("/messages/:id", messageHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
