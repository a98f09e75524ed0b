package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	httpadapter "svw.info/birthdayos/internal/adapters/http"
	"svw.info/birthdayos/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the candle game and collection over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// newRouter wires the JSON API and the page assets.
func newRouter(a *app) http.Handler {
	hub := httpadapter.NewHub(a.log)
	h := httpadapter.New(a.uc, hub)

	r := mux.NewRouter()
	r.Use(httpadapter.RequestLogger(a.log))
	h.Register(r)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	r.Handle("/", web.Index(web.Templates(), web.IndexData{
		Title:   "BirthdayOS",
		Size:    a.cfg.Grid.Size,
		Version: Version,
	})).Methods(http.MethodGet)
	return r
}

func runServe(cmd *cobra.Command, opts *rootOptions, addr string) error {
	a, err := openApp(cmd, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", addr, "driver", a.cfg.Storage.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
