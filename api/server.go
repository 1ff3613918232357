package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherbot.app/config"
	weathererr "weatherbot.app/errors"
	"weatherbot.app/models"
	"weatherbot.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router            *gin.Engine
	config            *config.Config
	forecastService   service.ForecastServiceInterface
	subscriberService service.SubscriberServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	forecastService service.ForecastServiceInterface,
	subscriberService service.SubscriberServiceInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:            router,
		config:            config,
		forecastService:   forecastService,
		subscriberService: subscriberService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.POST("/subscriptions", s.subscribe)
		api.GET("/subscriptions/:chatID", s.getSubscription)
		api.DELETE("/subscriptions/:chatID", s.unsubscribe)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, weathererr.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("Getting forecast digest for city", "city", city)
	digest, err := s.forecastService.GetDigestByCity(city)
	if err != nil {
		slog.Error("Forecast service error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, digest)
}

func (s *Server) subscribe(c *gin.Context) {
	var req models.SubscriptionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Subscription request received", "chat_id", req.ChatID, "city", req.City)

	profile, err := s.subscriberService.Subscribe(&req)
	if err != nil {
		slog.Error("Subscription error", "error", err, "chat_id", req.ChatID, "city", req.City)
		s.handleError(c, err)
		return
	}

	slog.Debug("Subscription created", "chat_id", profile.ID, "city", profile.City)
	c.JSON(http.StatusCreated, profile)
}

func (s *Server) getSubscription(c *gin.Context) {
	id, ok := s.chatIDParam(c)
	if !ok {
		return
	}

	profile, err := s.subscriberService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) unsubscribe(c *gin.Context) {
	id, ok := s.chatIDParam(c)
	if !ok {
		return
	}

	if err := s.subscriberService.Unsubscribe(id); err != nil {
		slog.Error("Unsubscribe error", "error", err, "chat_id", id)
		s.handleError(c, err)
		return
	}

	slog.Debug("Unsubscribed", "chat_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

func (s *Server) chatIDParam(c *gin.Context) (models.ChatID, bool) {
	raw := c.Param("chatID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.handleError(c, weathererr.NewValidationError("chatID must be an integer"))
		return 0, false
	}
	return models.ChatID(id), true
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case weathererr.ConfigurationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case weathererr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case weathererr.EmailError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to send email"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
