package server

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/apexkit/pkg/buildinfo"
	"github.com/matzehuels/apexkit/pkg/chart/embed"
	"github.com/matzehuels/apexkit/pkg/pipeline"
)

// DataResponse is the body of the data endpoint. The embed script polls
// it and passes Data to updateOptions.
type DataResponse struct {
	ID      string          `json:"id"`
	Refresh int             `json:"refresh"`
	Data    json.RawMessage `json:"data"`
}

// ListResponse is the body of the chart list endpoint.
type ListResponse struct {
	Charts []string `json:"charts"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{Charts: s.Registry.Names()})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	result, err := s.execute(r, pipeline.Options{Formats: []string{pipeline.FormatOptions}})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", result.Artifacts[pipeline.FormatOptions])
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	result, err := s.execute(r, pipeline.Options{Formats: []string{pipeline.FormatData}})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, DataResponse{
		ID:      result.Chart.ID(),
		Refresh: result.Chart.Config().RefreshTime,
		Data:    result.Artifacts[pipeline.FormatData],
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := r.URL.Query().Get("key")

	dataURL := "/api/charts/" + url.PathEscape(name) + "/data"
	if key != "" {
		dataURL += "?key=" + url.QueryEscape(key)
	}
	result, err := s.execute(r, pipeline.Options{
		Formats: []string{pipeline.FormatHTML},
		DataURL: dataURL,
		Height:  r.URL.Query().Get("height"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	snippet := template.HTML(result.Artifacts[pipeline.FormatHTML])
	if err := embed.Page(&buf, embed.PageOptions{Title: name}, snippet); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// execute looks up the chart named in the route and runs the pipeline for
// the key in the query string.
func (s *Server) execute(r *http.Request, opts pipeline.Options) (*pipeline.Result, error) {
	def, err := s.Registry.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		return nil, err
	}
	opts.Key = r.URL.Query().Get("key")
	opts.Config = s.Config
	return s.Runner.Execute(r.Context(), def, opts)
}
