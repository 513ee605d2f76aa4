package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/extract"
	"github.com/fwojciec/nerview/fs"
)

// errorStatuses maps application error codes to HTTP status codes.
var errorStatuses = map[string]int{
	nerview.EINVALID:     http.StatusBadRequest,
	nerview.ENOTFOUND:    http.StatusNotFound,
	nerview.EUNAVAILABLE: http.StatusBadGateway,
	nerview.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error.
func ErrorStatusCode(code string) int {
	if v, ok := errorStatuses[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON response. Internal errors are logged and
// their details withheld.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := nerview.ErrorCode(err)
	if code == nerview.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, ErrorStatusCode(code), map[string]string{"error": nerview.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fileParam(r *http.Request) (string, error) {
	path := r.URL.Query().Get("file")
	if path == "" {
		return "", nerview.Errorf(nerview.EINVALID, "file parameter required")
	}
	return path, nil
}

// view is everything known about one document.
type view struct {
	Document *nerview.Document
	Result   *extract.Result
	Stats    json.RawMessage
}

func (s *Server) loadView(ctx context.Context, path string) (*view, error) {
	doc, err := s.Documents.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	result, err := s.Extractor.Extract(ctx, doc.Content)
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.IncExtracted()
	}

	v := &view{Document: doc, Result: result}
	stats, err := s.Documents.LoadStats(doc.Path)
	switch {
	case err == nil:
		v.Stats = stats
	case nerview.ErrorCode(err) != nerview.ENOTFOUND:
		s.Logger.Warn("load stats", "path", doc.Path, "err", err)
	}
	return v, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	paths, err := s.Documents.FindDocuments()
	if err != nil && nerview.ErrorCode(err) != nerview.ENOTFOUND {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = s.tmpl.ExecuteTemplate(w, "index.html", map[string]any{
		"Paths":  paths,
		"Layout": fs.LayoutHint,
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	path, err := fileParam(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	v, err := s.loadView(r.Context(), path)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	var stats string
	if v.Stats != nil {
		var buf bytes.Buffer
		if err := json.Indent(&buf, v.Stats, "", "  "); err == nil {
			stats = buf.String()
		}
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "view.html", map[string]any{
		"Document":    v.Document,
		"Entities":    v.Result.Entities,
		"Counts":      nerview.SortedCounts(v.Result.Counts),
		"Diagnostics": v.Result.Diagnostics,
		"Warning":     v.Result.Warning(),
		"Stats":       stats,
	}); err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	path, err := fileParam(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	doc, err := s.Documents.LoadDocument(path)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "markdown" && s.Converter != nil {
		md, err := s.Converter.Convert(doc.Content)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(md))
		return
	}

	// Annotated documents are shown as-is; the sandbox keeps their scripts
	// away from the viewer's origin.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "sandbox")
	_, _ = w.Write([]byte(doc.Content))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	path, err := fileParam(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	v, err := s.loadView(r.Context(), path)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, v.Result.Map()); err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	path, err := fileParam(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	v, err := s.loadView(r.Context(), path)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          v.Result.ID,
		"entities":    v.Result.Entities,
		"diagnostics": v.Result.Diagnostics,
		"warning":     v.Result.Warning(),
		"map":         v.Result.Map(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	path, err := fileParam(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	doc, err := s.Documents.LoadDocument(path)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	spans, err := s.Extractor.Parser.Parse(doc.Content)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resp := map[string]any{"counts": nerview.SortedCounts(nerview.CountKinds(spans))}
	stats, err := s.Documents.LoadStats(doc.Path)
	switch {
	case err == nil:
		resp["sidecar"] = stats
	case nerview.ErrorCode(err) == nerview.ENOTFOUND:
		resp["sidecar"] = nil
	default:
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	place, err := nerview.Ping(r.Context(), s.Resolver)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"ok":    false,
			"error": err.Error(),
			"hints": nerview.TroubleshootingHints,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "label": place.Label})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Metrics == nil {
		http.NotFound(w, r)
		return
	}
	s.Metrics.Handler().ServeHTTP(w, r)
}
