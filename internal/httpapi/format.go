/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bennypowers.dev/snipfmt/config"
	"bennypowers.dev/snipfmt/internal/service"
	"bennypowers.dev/snipfmt/load"
)

type formatRequest struct {
	Content         string `json:"content"`
	Format          string `json:"format"`
	Formatter       string `json:"formatter"`
	Body            string `json:"body"`
	ContinueOnError bool   `json:"continueOnError"`

	Parser      string `json:"parser"`
	PrintWidth  int    `json:"printWidth"`
	TabWidth    int    `json:"tabWidth"`
	UseTabs     *bool  `json:"useTabs"`
	Semi        *bool  `json:"semi"`
	SingleQuote *bool  `json:"singleQuote"`
}

type failure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type formatResponse struct {
	Content  string    `json:"content"`
	Failures []failure `json:"failures,omitempty"`
}

type inspectRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"`
}

type inspectResponse struct {
	Snippets []service.Report `json:"snippets"`
}

type errorResponse struct {
	Error    string    `json:"error"`
	Failures []failure `json:"failures,omitempty"`
}

// options merges request fields over the server defaults.
func (req formatRequest) options(base *config.Config) (config.Config, config.FileOptions) {
	cfg := *base
	if req.Formatter != "" {
		cfg.Formatter = req.Formatter
	}
	if req.ContinueOnError {
		cfg.ContinueOnError = true
	}

	opts := config.FileOptions{Formatting: cfg.Formatting, Body: cfg.Body}
	if req.Body != "" {
		opts.Body = req.Body
	}
	f := &opts.Formatting
	if req.Parser != "" {
		f.Parser = req.Parser
	}
	if req.PrintWidth > 0 {
		f.PrintWidth = req.PrintWidth
	}
	if req.TabWidth > 0 {
		f.TabWidth = req.TabWidth
	}
	if req.UseTabs != nil {
		f.UseTabs = req.UseTabs
	}
	if req.Semi != nil {
		f.Semi = req.Semi
	}
	if req.SingleQuote != nil {
		f.SingleQuote = req.SingleQuote
	}
	return cfg, opts
}

func failuresOf(err error) []failure {
	var out []failure
	for _, e := range service.SnippetErrors(err) {
		out = append(out, failure{Name: e.Name, Error: e.Err.Error()})
	}
	return out
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	format, err := load.ParseFormat(req.Format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cfg, opts := req.options(h.cfg)
	data, err := service.FormatDocument(r.Context(), &cfg, opts, format, []byte(req.Content))
	if data == nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, service.ErrUnknownFormatter) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error(), Failures: failuresOf(err)})
		return
	}

	writeJSON(w, http.StatusOK, formatResponse{Content: string(data), Failures: failuresOf(err)})
}

func (h *handler) inspect(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	format, err := load.ParseFormat(req.Format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	c, err := load.Decode(format, []byte(req.Content))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, inspectResponse{Snippets: service.Inspect(c)})
}

// decodeRequest reads a JSON body of at most load.DefaultMaxSize bytes,
// answering 413 or 400 itself when it cannot.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, load.DefaultMaxSize)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
