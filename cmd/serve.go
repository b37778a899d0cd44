package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Scalingo/sclng-top-languages/controller"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	var listenPort string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the languages of a profile over http",
		Long:  `Start an http server answering GET /languages?url=<profile-url> with the most used languages as json.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *opts.cfg
			if listenPort != "" {
				cfg.API.ListenPort = listenPort
			}

			languagesService, err := newLanguagesService(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			// setup server and define all routes
			gin.SetMode(gin.ReleaseMode)
			router := controller.NewRouter(controller.NewAPIController(cfg, languagesService))

			server := &http.Server{
				Addr:              ":" + cfg.API.ListenPort,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			return runServer(cmd.Context(), server)
		},
	}

	serveCmd.Flags().StringVarP(&listenPort, "port", "p", "", "listen port, overrides the configuration")

	return serveCmd
}

// runServer serves until ctx is done then shuts the server down gracefully
func runServer(ctx context.Context, server *http.Server) error {
	serverErr := make(chan error, 1)

	go func() {
		log.Info("server listening on " + server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("error while starting server")
		}
		return err
	case <-ctx.Done():
	}

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	// the server has a few seconds to finish the requests it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Application stopped gracefully !")
	return nil
}
