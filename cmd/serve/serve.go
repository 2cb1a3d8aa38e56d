/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command for snipfmt.
package serve

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipfmt/cmd/options"
	"bennypowers.dev/snipfmt/internal/httpapi"
	"bennypowers.dev/snipfmt/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve snippet formatting over HTTP",
	Long: `Serve snippet formatting over HTTP.

Routes:
  POST /format   format a snippet file given as {"content": ..., "format": "json"}
  POST /inspect  list the markers of a snippet file
  GET  /healthz  liveness probe`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
	options.AddFormatting(Cmd.Flags())
}

func run(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	cfg, err := options.Config(cmd)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
