package main

import (
	"encoding/base64"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"smarthourly.com/smarthourly/core"
	hourly "smarthourly.com/smarthourly/hourly/core"
	"smarthourly.com/smarthourly/hourly/model"
	"smarthourly.com/smarthourly/hourly/web/handlers"
	"smarthourly.com/smarthourly/infrastructure/devops"
	v1 "smarthourly.com/smarthourly/kimbal/v1"
	"smarthourly.com/smarthourly/utils"
	web "smarthourly.com/smarthourly/web/common"
	"smarthourly.com/smarthourly/web/middlewares"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file found")
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 10)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}
	defer dm.Close()

	cfg, err := devops.LoadAppConfig()
	if err != nil {
		logrus.WithError(err).Fatal("config unavailable")
	}

	base64Secret := os.Getenv("SMARTHOURLY_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		logrus.WithError(err).Fatal("failed to decode JWT secret")
	}

	kimbal := v1.NewKimbalClient(cfg.Kimbal.BaseURL, cfg.Kimbal.TenantID)
	factory := handlers.NewFactoryEndpoint(kimbal)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	factory.RegisterLogin(r)

	protected := r.Group("/api/hourly/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		factory.Register(protected)

		protected.GET("/lines", func(c *gin.Context) {
			c.JSON(http.StatusOK, web.NewSuccessResponse(cfg.Lines))
		})

		protected.GET("/current-shift", func(c *gin.Context) {
			date, shift := hourly.CurrentShiftAndDate(hourly.PlantNow())
			c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
				"date":  date.Format(utils.DateLayout),
				"shift": shift,
			}))
		})

		operator := protected.Group("")
		operator.Use(middlewares.RequireRole(dm, model.RoleOperator, model.RoleSupervisor, model.RoleAdmin))
		{
			handlers.RegisterEntries(operator, dm)
			handlers.RegisterRoster(operator, dm)
		}

		supervisor := protected.Group("")
		supervisor.Use(middlewares.RequireRole(dm, model.RoleSupervisor, model.RoleAdmin))
		{
			handlers.RegisterReview(supervisor, dm)
			handlers.RegisterReport(supervisor, dm)
		}

		admin := protected.Group("")
		admin.Use(middlewares.RequireRole(dm, model.RoleAdmin))
		{
			handlers.RegisterAdmin(admin, dm)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8090"
	}
	logrus.WithField("addr", addr).Info("starting server")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
