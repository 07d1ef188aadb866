package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	hourly "smarthourly.com/smarthourly/hourly/core"
	v1 "smarthourly.com/smarthourly/kimbal/v1"
	web "smarthourly.com/smarthourly/web/common"
)

// FactoryEndpoint proxies the Kimbal factory API. Credentials stay server
// side; the browser only sees our own bearer token. MO lists are cached by
// the client for the life of the process.
type FactoryEndpoint struct {
	client *v1.KimbalClient
	log    *logrus.Entry
}

func NewFactoryEndpoint(client *v1.KimbalClient) *FactoryEndpoint {
	return &FactoryEndpoint{
		client: client,
		log:    logrus.WithField("component", "factory"),
	}
}

// RegisterLogin wires the public login proxy; the rest of the factory
// routes sit behind authentication.
func (ep *FactoryEndpoint) RegisterLogin(r gin.IRouter) {
	r.POST("/api/login", ep.Login)
}

func (ep *FactoryEndpoint) Register(r *gin.RouterGroup) {
	r.GET("/clients", ep.Clients)
	r.GET("/mo-numbers", ep.MONumbers)
}

// Login authenticates against the factory API with server-side credentials
// and relays the token.
func (ep *FactoryEndpoint) Login(c *gin.Context) {
	token, err := ep.client.Authenticate(os.Getenv("KIMBAL_API_USER"), os.Getenv("KIMBAL_API_PASS"))
	if err != nil {
		ep.log.WithError(err).Error("factory login failed")
		web.RespondError(c, &hourly.RemoteUnavailableError{Op: "factory login", Err: err})
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"accessToken": token}))
}

// Clients relays the factory's customer list.
func (ep *FactoryEndpoint) Clients(c *gin.Context) {
	clients, err := ep.client.GetAllClients()
	if err != nil {
		ep.log.WithError(err).Error("fetch clients failed")
		web.RespondError(c, &hourly.RemoteUnavailableError{Op: "fetch clients", Err: err})
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(clients))
}

// MONumbers relays the MO numbers for one customer; repeats hit the cache.
func (ep *FactoryEndpoint) MONumbers(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Query("clientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("clientId is required"))
		return
	}

	numbers, err := ep.client.GetMONumbersByClient(clientID)
	if err != nil {
		ep.log.WithError(err).WithField("clientId", clientID).Error("fetch MO numbers failed")
		web.RespondError(c, &hourly.RemoteUnavailableError{Op: "fetch MO numbers", Err: err})
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(numbers))
}
