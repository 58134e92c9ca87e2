package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/prevsim/internal/api"
	"github.com/rgehrsitz/prevsim/internal/store/sqlite"
)

// serveSettings are resolved from flags, then environment, then defaults
type serveSettings struct {
	Port           int
	DBPath         string
	AllowedOrigins []string
}

func resolveServeSettings(cmd *cobra.Command) (serveSettings, error) {
	s := serveSettings{Port: 8080, DBPath: "prevsim.db"}

	if v := os.Getenv("PREVSIM_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("invalid PREVSIM_PORT %q: %w", v, err)
		}
		s.Port = port
	}
	if v := os.Getenv("PREVSIM_DB"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("PREVSIM_ALLOWED_ORIGINS"); v != "" {
		s.AllowedOrigins = splitList(v)
	}

	if cmd.Flags().Changed("port") {
		s.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("db") {
		s.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("origins") {
		origins, _ := cmd.Flags().GetString("origins")
		s.AllowedOrigins = splitList(origins)
	}
	return s, nil
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API backed by a sqlite draft store.

Settings come from flags, then PREVSIM_PORT, PREVSIM_DB and
PREVSIM_ALLOWED_ORIGINS (a .env file in the working directory is loaded
first). Use --db=":memory:" for an in-memory database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		settings, err := resolveServeSettings(cmd)
		if err != nil {
			return err
		}

		store, err := sqlite.New(settings.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		handler := api.NewHandler(store, engine)
		handler.Version = version
		router := api.NewRouter(handler, settings.AllowedOrigins)

		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", settings.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			log.Printf("Server starting on http://localhost:%d", settings.Port)
			log.Printf("API available at http://localhost:%d/api", settings.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-serverErr:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Println("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().String("db", "prevsim.db", "SQLite database path")
	serveCmd.Flags().String("origins", "", "Comma-separated list of allowed CORS origins")
	serveCmd.Flags().String("env-file", ".env", "Environment file to load before reading PREVSIM_* variables")
	serveCmd.Flags().String("rules", "", "Path to a rule catalog file (default: built-in catalog)")
	serveCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
