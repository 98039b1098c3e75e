package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/protokollhq/protokoll/pkg/config"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/handler"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/service"
	"github.com/protokollhq/protokoll/pkg/utils"
	"gorm.io/gorm"
)

type Server struct {
	ginEngine *gin.Engine
	cfg       *config.AppConfig
	logger    *slog.Logger
	port      int
}

func NewServer(cfg *config.AppConfig, database *gorm.DB) *Server {
	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())

	// CORS middleware: allow common localhost dev origins.
	ginEngine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// If there's no Origin header, it's not a browser CORS request.
		if origin != "" {
			allowed := strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "http://127.0.0.1") ||
				strings.HasPrefix(origin, "https://localhost") ||
				strings.HasPrefix(origin, "https://127.0.0.1")

			if allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Org-ID")
			} else {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	server := &Server{
		ginEngine: ginEngine,
		cfg:       cfg,
		logger:    utils.GetLogger(),
		port:      0,
	}

	server.SetupRoutes(database)

	return server
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host(), s.cfg.Port())
	srv := &http.Server{Addr: addr, Handler: s.ginEngine}

	// Attempt to listen first; if the port is occupied return immediately.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	} else {
		s.port = s.cfg.Port()
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	// Listen for context cancellation for graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	default:
	}

	s.logger.Info("Server listening", "addr", addr)
	return nil
}

// orgMiddleware resolves the tenant from the X-Org-ID header. Authentication
// happens upstream; the header is trusted here.
func orgMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		org := strings.TrimSpace(c.GetHeader("X-Org-ID"))
		if org == "" {
			org = "default"
		}
		c.Set(handler.OrgIDKey, org)
		c.Next()
	}
}

func (s *Server) SetupRoutes(database *gorm.DB) {
	// Services
	modelService := service.NewModelService()
	protocolService := service.NewProtocolService(database)
	registryService := service.NewRegistryService(database)
	taskService := service.NewTaskService(database)
	draftService := service.NewDraftService(s.cfg, modelService, protocolService)
	exportService := service.NewExportService(protocolService, registryService)
	mailService := service.NewMailService(s.cfg, protocolService, registryService, exportService)

	// Handlers
	protocolHandler := handler.NewProtocolHandler(protocolService)
	registryHandler := handler.NewRegistryHandler(registryService)
	taskHandler := handler.NewTaskHandler(taskService)
	draftHandler := handler.NewDraftHandler(draftService)
	exportHandler := handler.NewExportHandler(exportService, mailService)
	wsHandler := event.NewWSHandler()

	// API group
	// /api
	apiGroup := s.ginEngine.Group("/api")
	apiGroup.Use(orgMiddleware())

	// Runtime info (for clients to discover correct base URLs)
	apiGroup.GET("/runtime", func(c *gin.Context) {
		host := s.cfg.Host()
		port := s.port
		if port == 0 {
			port = s.cfg.Port()
		}

		c.JSON(http.StatusOK, models.RuntimeInfo{
			HTTPBaseURL: fmt.Sprintf("http://%s:%d", host, port),
			WSBaseURL:   fmt.Sprintf("ws://%s:%d", host, port),
			Port:        port,
		})
	})

	// Event notifications over WebSocket
	// /api/events/ws
	apiGroup.GET("/events/ws", wsHandler.Handle)

	// Model management API routes
	// /api/models
	apiGroup.GET("/models", modelService.GetModelList)
	apiGroup.POST("/models", modelService.AddModel)
	apiGroup.PUT("/models/:id", modelService.EditModel)
	apiGroup.DELETE("/models/:id", modelService.DeleteModel)
	apiGroup.POST("/models/test", modelService.TestModelConnection)

	// Protocol management API routes
	// /api/protocols
	protocolsGroup := apiGroup.Group("/protocols")
	{
		protocolsGroup.POST("", protocolHandler.Create)
		protocolsGroup.GET("", protocolHandler.List)
		protocolsGroup.GET(":id", protocolHandler.Get)
		protocolsGroup.PUT(":id", protocolHandler.Update)
		protocolsGroup.DELETE(":id", protocolHandler.Delete)
		protocolsGroup.POST(":id/attachments", protocolHandler.AddAttachment)
		protocolsGroup.DELETE(":id/attachments/:attachmentId", protocolHandler.DeleteAttachment)
		protocolsGroup.GET(":id/export", exportHandler.ExportPDF)
		protocolsGroup.GET(":id/preview", exportHandler.Preview)
		protocolsGroup.POST(":id/invite", exportHandler.SendInvitations)
		protocolsGroup.POST(":id/send", exportHandler.SendProtocol)
	}

	// Drafting chat API routes
	// /api/drafts
	draftsGroup := apiGroup.Group("/drafts")
	{
		draftsGroup.POST("", draftHandler.Start)
		draftsGroup.GET(":id", draftHandler.Get)
		draftsGroup.POST(":id/turns", draftHandler.SubmitTurn)
		draftsGroup.POST(":id/reset", draftHandler.Reset)
		draftsGroup.POST(":id/confirm", draftHandler.Confirm)
		draftsGroup.DELETE(":id", draftHandler.Close)
	}

	// Registry API routes
	// /api/committees, /api/companies, /api/members
	committeesGroup := apiGroup.Group("/committees")
	{
		committeesGroup.POST("", registryHandler.CreateCommittee)
		committeesGroup.GET("", registryHandler.ListCommittees)
		committeesGroup.GET(":id", registryHandler.GetCommittee)
		committeesGroup.PUT(":id", registryHandler.UpdateCommittee)
		committeesGroup.DELETE(":id", registryHandler.DeleteCommittee)
	}

	companiesGroup := apiGroup.Group("/companies")
	{
		companiesGroup.POST("", registryHandler.CreateCompany)
		companiesGroup.GET("", registryHandler.ListCompanies)
		companiesGroup.GET(":id", registryHandler.GetCompany)
		companiesGroup.PUT(":id", registryHandler.UpdateCompany)
		companiesGroup.DELETE(":id", registryHandler.DeleteCompany)
	}

	membersGroup := apiGroup.Group("/members")
	{
		membersGroup.POST("", registryHandler.CreateMember)
		membersGroup.GET("", registryHandler.ListMembers)
		membersGroup.GET(":id", registryHandler.GetMember)
		membersGroup.PUT(":id", registryHandler.UpdateMember)
		membersGroup.DELETE(":id", registryHandler.DeleteMember)
	}

	// Task management API routes
	// /api/tasks
	tasksGroup := apiGroup.Group("/tasks")
	{
		tasksGroup.POST("", taskHandler.Create)
		tasksGroup.GET("", taskHandler.List)
		tasksGroup.GET(":id", taskHandler.Get)
		tasksGroup.PUT(":id", taskHandler.Update)
		tasksGroup.DELETE(":id", taskHandler.Delete)
	}
}
