package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/moddengine/pixabay-assetsource/assetsource"
	"github.com/moddengine/pixabay-assetsource/internal/logger"
	"github.com/moddengine/pixabay-assetsource/pixabay"
)

// UserChecker validates basic auth credentials.
type UserChecker interface {
	TestUser(user, pass string) bool
}

type Options struct {
	// Users enables basic auth when set.
	Users      UserChecker
	Logger     logrus.FieldLogger
	PrettyJSON bool
	// StaticDir is served below /static/ when set.
	StaticDir string
}

// Server is a small CMS stand-in that browses and imports assets through
// an asset source.
type Server struct {
	source *pixabay.AssetSource
	users  UserChecker
	log    *logrus.Entry
	pretty bool
	mux    *http.ServeMux
}

func New(source *pixabay.AssetSource, opts Options) *Server {
	s := &Server{
		source: source,
		users:  opts.Users,
		log:    logger.WithComponent(opts.Logger, "server"),
		pretty: opts.PrettyJSON,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not Found")
	})
	s.mux.HandleFunc("GET /source", s.handleSource)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("GET /assets/{id}", s.handleAsset)
	s.mux.HandleFunc("GET /assets/{id}/original", s.handleOriginal)
	if opts.StaticDir != "" {
		s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.requestLog(s.basicAuth(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Starting Server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type sourceInfo struct {
	Identifier  string `json:"identifier"`
	Label       string `json:"label"`
	Description string `json:"description"`
	IconURI     string `json:"iconUri"`
	ReadOnly    bool   `json:"readOnly"`
	CountAll    int    `json:"countAll"`
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	icon, err := s.source.IconURI()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, sourceInfo{
		Identifier:  s.source.Identifier(),
		Label:       s.source.Label(),
		Description: s.source.Description(),
		IconURI:     icon,
		ReadOnly:    s.source.ReadOnly(),
		CountAll:    s.source.AssetProxyRepository().CountAll(),
	})
}

type searchPage struct {
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Items []assetDescriptor `json:"items"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var page int = 1
	if qPage := r.URL.Query().Get("page"); qPage != "" {
		n, err := strconv.ParseInt(qPage, 10, 0)
		if err == nil && n > 0 {
			page = int(n)
		}
	}

	query := pixabay.NewAssetProxyQuery(s.source)
	query.SetSearchTerm(r.URL.Query().Get("q"))
	query.SetOffset(pixabay.OffsetForPage(page, query.Limit()))

	res, err := query.Execute(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := searchPage{Total: res.Count(), Page: page, Items: []assetDescriptor{}}
	for res.Rewind(); res.Valid(); res.Next() {
		proxy, err := res.Current()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out.Items = append(out.Items, describe(proxy))
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	proxy, err := s.source.AssetProxyRepository().GetAssetProxy(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, describe(proxy))
}

func (s *Server) handleOriginal(w http.ResponseWriter, r *http.Request) {
	proxy, err := s.source.AssetProxyRepository().GetAssetProxy(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stream, err := proxy.ImportStream(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", proxy.MediaType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", proxy.Filename()))
	if _, err := io.Copy(w, stream); err != nil {
		s.log.WithError(err).Warn("Import stream interrupted")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	body := brotli.HTTPCompressor(w, r)
	defer body.Close()
	w.WriteHeader(status)

	enc := json.NewEncoder(body)
	indent := ""
	if s.pretty {
		indent = "  "
	}
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		s.log.WithError(err).Warn("Failed to encode response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := s.log.WithError(err).WithField(logger.FieldStatus, status)
	if id := w.Header().Get(requestIDHeader); id != "" {
		entry = entry.WithField(logger.FieldRequestID, id)
	}
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request failed")
	}
	s.writeJSON(w, r, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, assetsource.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, assetsource.ErrConnection), errors.Is(err, pixabay.ErrParse):
		return http.StatusBadGateway
	case errors.Is(err, pixabay.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			logger.FieldRequestID:  id,
			logger.FieldStatus:     rec.status,
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
			"method":               r.Method,
			"path":                 r.URL.Path,
		}).Debug("Request")
	})
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	if s.users == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !s.users.TestUser(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="pixabaysource"`)
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
