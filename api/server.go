package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"graniteapi.app/config"
	graniteerr "graniteapi.app/errors"
	"graniteapi.app/imaging"
	"graniteapi.app/models"
	"graniteapi.app/pkg/validation"
	"graniteapi.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	db             *gorm.DB
	config         *config.Config
	catalogService service.CatalogServiceInterface
	imageService   service.ImageServiceInterface
	contactService service.ContactServiceInterface
	metricsHandler http.Handler
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	catalogService service.CatalogServiceInterface,
	imageService service.ImageServiceInterface,
	contactService service.ContactServiceInterface,
	metricsHandler http.Handler,
) *Server {
	router := gin.Default()

	registerValidators()

	server := &Server{
		router:         router,
		db:             db,
		config:         config,
		catalogService: catalogService,
		imageService:   imageService,
		contactService: contactService,
		metricsHandler: metricsHandler,
	}

	server.setupRoutes()
	return server
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("imgformat", func(fl validator.FieldLevel) bool {
			return validation.IsValidImageFormat(fl.Field().String())
		})
	}
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/products", s.getProducts)
		api.GET("/products/:category", s.getCategoryImages)
		api.GET("/colors", s.getColors)
		api.GET("/search", s.search)
		api.GET("/image", s.getImage)
		api.GET("/images/*path", s.transformImage)
		api.POST("/contact", s.submitContact)
		api.GET("/debug", s.debugEndpoint)
	}

	if s.metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getProducts(c *gin.Context) {
	slog.Debug("Getting product categories")

	resp, err := s.catalogService.GetCategories(c.Request.Context())
	if err != nil {
		slog.Error("Catalog service error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getCategoryImages(c *gin.Context) {
	category := c.Param("category")
	slog.Debug("Getting category images", "category", category)

	resp, err := s.catalogService.GetCategoryImages(c.Request.Context(), category)
	if err != nil {
		slog.Error("Catalog service error", "error", err, "category", category)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getColors(c *gin.Context) {
	slog.Debug("Getting color varieties")

	colors, err := s.catalogService.GetColorVarieties(c.Request.Context())
	if err != nil {
		slog.Error("Catalog service error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, colors)
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	slog.Debug("Searching products", "query", query)

	resp, err := s.catalogService.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("Search error", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type imageQuery struct {
	Path    string `form:"path" binding:"required"`
	Width   int    `form:"width" binding:"omitempty,min=1"`
	Height  int    `form:"height" binding:"omitempty,min=1"`
	Format  string `form:"format" binding:"omitempty,imgformat"`
	Quality int    `form:"quality" binding:"omitempty,min=1,max=100"`
	Fit     string `form:"fit"`
}

func (s *Server) getImage(c *gin.Context) {
	var req imageQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Error("Image query binding error", "error", err)
		s.handleError(c, graniteerr.NewValidationError("invalid image request parameters"))
		return
	}
	// The binding validator skips zero ints as empty, so an explicit "0"
	// needs its own rejection.
	if hasExplicitZero(c, "width", "height", "quality") {
		s.handleError(c, graniteerr.NewValidationError("invalid image request parameters"))
		return
	}

	opts, err := buildOptions(req.Width, req.Height, req.Format, req.Quality, req.Fit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	result, err := s.imageService.GetImage(c.Request.Context(), req.Path, opts)
	if err != nil {
		slog.Error("Image service error", "error", err, "path", req.Path)
		s.handleError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("ETag", result.ETag)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

type transformQuery struct {
	Width   int    `form:"w" binding:"omitempty,min=1"`
	Height  int    `form:"h" binding:"omitempty,min=1"`
	Format  string `form:"f" binding:"omitempty,imgformat"`
	Quality int    `form:"q" binding:"omitempty,min=1,max=100"`
	Fit     string `form:"fit"`
}

// transformImage serves the catchall variant route. When no explicit format
// is requested the output format is negotiated from the Accept header, so
// responses vary by it.
func (s *Server) transformImage(c *gin.Context) {
	var req transformQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Error("Transform query binding error", "error", err)
		s.handleError(c, graniteerr.NewValidationError("invalid image request parameters"))
		return
	}
	if hasExplicitZero(c, "w", "h", "q") {
		s.handleError(c, graniteerr.NewValidationError("invalid image request parameters"))
		return
	}

	opts, err := buildOptions(req.Width, req.Height, req.Format, req.Quality, req.Fit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if opts.Format == "" {
		opts.Format = imaging.NegotiateFormat(c.GetHeader("Accept"))
	}

	path := c.Param("path")
	result, err := s.imageService.GetImage(c.Request.Context(), path, opts)
	if err != nil {
		slog.Error("Image service error", "error", err, "path", path)
		s.handleError(c, err)
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d, stale-while-revalidate=%d",
		s.config.Image.MaxAgeSeconds, s.config.Image.MaxAgeSeconds, s.config.Image.StaleWhileRevalidate))
	c.Header("Vary", "Accept")
	c.Header("ETag", result.ETag)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func hasExplicitZero(c *gin.Context, names ...string) bool {
	for _, name := range names {
		if raw, ok := c.GetQuery(name); ok {
			if n, err := strconv.Atoi(raw); err == nil && n == 0 {
				return true
			}
		}
	}
	return false
}

func buildOptions(width, height int, format string, quality int, fit string) (imaging.Options, error) {
	parsedFormat, ok := imaging.ParseFormat(format)
	if !ok {
		return imaging.Options{}, graniteerr.NewValidationError("unsupported image format")
	}

	parsedFit, ok := imaging.ParseFit(fit)
	if !ok {
		return imaging.Options{}, graniteerr.NewValidationError("unsupported fit mode")
	}

	return imaging.Options{
		Width:   width,
		Height:  height,
		Format:  parsedFormat,
		Quality: quality,
		Fit:     parsedFit,
	}, nil
}

func (s *Server) submitContact(c *gin.Context) {
	var req models.InquiryRequest
	slog.Debug("Handling contact request")

	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, graniteerr.NewValidationError("invalid request format"))
		return
	}

	resp, err := s.contactService.SubmitInquiry(&req)
	if err != nil {
		slog.Error("Contact error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}

	slog.Debug("Inquiry submitted successfully", "reference", resp.ReferenceID)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) debugEndpoint(c *gin.Context) {
	slog.Debug("Debug endpoint called")

	var inquiryCount int64
	dbErr := s.db.Model(&models.Inquiry{}).Count(&inquiryCount).Error

	_, rootErr := os.Stat(s.config.Catalog.ImagesRoot)

	categoriesResp, catalogErr := s.catalogService.GetCategories(c.Request.Context())
	categoryCount := 0
	if catalogErr == nil {
		categoryCount = len(categoriesResp.Categories)
	}

	response := gin.H{
		"database": map[string]interface{}{
			"connected":    dbErr == nil,
			"error":        dbErr,
			"inquiryCount": inquiryCount,
		},
		"catalog": map[string]interface{}{
			"imagesRootPresent": rootErr == nil,
			"connected":         catalogErr == nil,
			"categoryCount":     categoryCount,
			"providers":         s.catalogService.GetProviderInfo(),
		},
		"smtp": map[string]string{
			"host":        s.config.Email.SMTPHost,
			"port":        fmt.Sprintf("%d", s.config.Email.SMTPPort),
			"username":    s.config.Email.SMTPUsername,
			"fromAddress": s.config.Email.FromAddress,
			"fromName":    s.config.Email.FromName,
		},
		"config": map[string]string{
			"appBaseURL":    s.config.AppBaseURL,
			"catalogSource": s.config.Catalog.Source,
			"cacheType":     s.config.Cache.Type,
		},
	}

	c.JSON(http.StatusOK, response)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *graniteerr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case graniteerr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case graniteerr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case graniteerr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case graniteerr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case graniteerr.EmailError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to send email"
		case graniteerr.TransformError:
			statusCode = http.StatusInternalServerError
			message = "Unable to process image"
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
