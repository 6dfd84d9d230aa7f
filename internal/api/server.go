package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/uac/cafeteria-api/docs"
	v1 "github.com/uac/cafeteria-api/internal/api/handler/v1"
	"github.com/uac/cafeteria-api/internal/api/middleware"
	"github.com/uac/cafeteria-api/internal/config"
	"github.com/uac/cafeteria-api/internal/persistence"
	"github.com/uac/cafeteria-api/internal/props"
	"github.com/uac/cafeteria-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Registry *persistence.Registry

	accountHandler *v1.AccountHandler
	studentHandler *v1.StudentHandler
	menuHandler    *v1.MenuHandler
	authHandler    *v1.AuthHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)

	if err := persistence.InitTables(db); err != nil {
		return nil, fmt.Errorf("persistence.InitTables -> %w", err)
	}

	registry := persistence.NewRegistry(db)

	settings := props.NewStore(conf.Cafeteria.PropertiesFile, map[string]string{
		"account.seq": "1000",
	})

	ticketPrice, err := decimal.NewFromString(conf.Cafeteria.TicketPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket price %q -> %w", conf.Cafeteria.TicketPrice, err)
	}

	accountSvc := service.NewAccountService(registry.Accounts(), registry.Transactions())
	studentSvc := service.NewStudentService(
		registry.Students(),
		registry.Addresses(),
		registry.Accounts(),
		settings,
		service.NopNotifier{},
	)
	menuSvc := service.NewMenuService(registry.Menus())
	authSvc := service.NewAuthService(registry.Administrators())

	if err = authSvc.EnsureDefaultAdministrator(); err != nil {
		return nil, fmt.Errorf("authSvc.EnsureDefaultAdministrator -> %w", err)
	}

	s := &Server{
		Config:   conf,
		Router:   gin.New(),
		Registry: registry,

		accountHandler: v1.NewAccountHandler(accountSvc, menuSvc, studentSvc, service.FlatPricer{Price: ticketPrice}),
		studentHandler: v1.NewStudentHandler(studentSvc),
		menuHandler:    v1.NewMenuHandler(menuSvc),
		authHandler:    v1.NewAuthHandler(conf.API, authSvc),
	}

	s.MountMiddlewares()
	s.MountHandlers()

	return s, nil
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers() {
	s.Router.GET("/", v1.HandleHealthcheck)

	docs.SwaggerInfo.BasePath = "/api/v1"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	apiV1 := s.Router.Group("api/v1")
	{
		apiV1.POST("/auth/login", s.authHandler.HandleLogin)

		// Account self-service, guarded by the account PIN.
		apiV1.POST("/accounts/:accountID/authenticate", s.accountHandler.HandleAuthenticate)
		apiV1.POST("/accounts/:accountID/tickets", s.accountHandler.HandleBuyTicket)
		apiV1.PUT("/accounts/:accountID/pin", s.accountHandler.HandleChangePin)

		apiV1.GET("/menus", s.menuHandler.HandleGetMenu)

		admin := apiV1.Group("", authenticator.VerifyJWT())
		{
			admin.POST("/accounts/:accountID/credits", s.accountHandler.HandleCredit)
			admin.POST("/accounts/:accountID/unlock", s.accountHandler.HandleUnlock)

			admin.POST("/students", s.studentHandler.HandleEnroll)
			admin.GET("/students/:studentID", s.studentHandler.HandleGetStudent)
			admin.PUT("/students/:studentID", s.studentHandler.HandleUpdateStudent)
			admin.DELETE("/students/:studentID", s.studentHandler.HandleArchiveStudent)

			admin.POST("/menus", s.menuHandler.HandleCreateMenu)
			admin.DELETE("/menus", s.menuHandler.HandleDeleteMenu)
		}
	}
}
