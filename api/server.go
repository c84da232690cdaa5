package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/roadside-api/background"
	"github.com/bitmark-inc/roadside-api/coordinator"
	"github.com/bitmark-inc/roadside-api/logmodule"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store      store.RoadsideCore
	mongoStore store.MongoStore

	// request and chat commands
	coordinator *coordinator.Coordinator

	// notification bus
	hub          *realtime.Hub
	socketRouter *realtime.Router

	// JWT public key of the token issuer
	jwtPublicKey *rsa.PublicKey

	// Background task queue
	background background.TaskSender
}

// NewServer new instance of server
func NewServer(
	accounts store.RoadsideCore,
	mongoStore store.MongoStore,
	coord *coordinator.Coordinator,
	hub *realtime.Hub,
	jwtKey *rsa.PublicKey,
	taskSender background.TaskSender) *Server {
	return &Server{
		store:        accounts,
		mongoStore:   mongoStore,
		coordinator:  coord,
		hub:          hub,
		socketRouter: realtime.NewRouter(hub, coord),
		jwtPublicKey: jwtKey,
		background:   taskSender,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Geo-Position", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	// the socket reads its token from the query when the client cannot set headers
	apiRoute.GET("/socket", s.socket)

	// api route other than `/socket` will apply the following middleware
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.updateGeoPositionMiddleware)

	accountRoute := apiRoute.Group("/accounts")
	{
		accountRoute.POST("", s.accountRegister)
	}

	accountRoute.Use(s.recognizeAccountMiddleware())
	{
		accountRoute.GET("/me", s.accountDetail)
		accountRoute.PATCH("/me/location", s.accountUpdateLocation)
		accountRoute.GET("/me/requests", s.listMyRequests)
	}

	requestRoute := apiRoute.Group("/requests")
	requestRoute.Use(s.recognizeAccountMiddleware())
	{
		requestRoute.POST("", s.createRequest)
		requestRoute.GET("", s.nearbyRequests)
		requestRoute.GET("/:id", s.getRequest)
		requestRoute.DELETE("/:id", s.deleteRequest)
		requestRoute.POST("/:id/request-help", s.proposeHelp)
		requestRoute.POST("/:id/confirm-helper", s.confirmHelper)
		requestRoute.POST("/:id/reject-helper", s.rejectHelper)
		requestRoute.PATCH("/:id/status", s.updateRequestStatus)
		requestRoute.PATCH("/:id/payment", s.recordPayment)
	}

	chatRoute := apiRoute.Group("/chat")
	chatRoute.Use(s.recognizeAccountMiddleware())
	{
		chatRoute.GET("/conversations", s.listConversations)
		chatRoute.GET("/conversations/:id", s.getConversation)
		chatRoute.GET("/conversation/request/:requestId", s.getOrCreateConversation)
		chatRoute.POST("/conversation/:id/messages", s.sendMessage)
		chatRoute.PATCH("/conversation/:id/read", s.markConversationRead)
		chatRoute.PATCH("/conversation/:id/archive", s.archiveConversation)
		chatRoute.GET("/unread-count", s.unreadCount)
	}

	if s.background != nil {
		secretRoute := r.Group("/secret")
		secretRoute.Use(logmodule.Ginrus("Secret"))
		secretRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
		{
			secretRoute.POST("/expire-requests", s.adminExpireRequests)
		}
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
