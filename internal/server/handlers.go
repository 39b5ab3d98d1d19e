package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/dotkit/pkg/buildinfo"
	"github.com/matzehuels/dotkit/pkg/engine"
	"github.com/matzehuels/dotkit/pkg/errors"
)

// Response headers of /v1/render.
const (
	HeaderCache   = "X-Dotkit-Cache"
	HeaderWarning = "X-Dotkit-Warning"
)

// maxBodySize leaves room for JSON escaping of a maximal source.
const maxBodySize = 2*errors.MaxSourceSize + 64<<10

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Source  string          `json:"source"`
	Options json.RawMessage `json:"options,omitempty"`
}

// FormatInfo describes one entry of GET /v1/formats.
type FormatInfo struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MIMEType  string `json:"mime_type"`
	Image     bool   `json:"image"`
}

// FormatsResponse is the body of GET /v1/formats.
type FormatsResponse struct {
	Formats []FormatInfo `json:"formats"`
	Engines []string     `json:"engines"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	var resp FormatsResponse
	for _, f := range engine.Formats() {
		resp.Formats = append(resp.Formats, FormatInfo{
			Name:      f.String(),
			Extension: f.Extension(),
			MIMEType:  f.MIMEType(),
			Image:     f.IsImage(),
		})
	}
	for _, l := range engine.Layouts() {
		resp.Engines = append(resp.Engines, l.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts, err := s.requestOptions(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.renderer.RenderSource(r.Context(), req.Source, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.Format.MIMEType())
	h.Set("Content-Length", strconv.Itoa(len(res.Data())))
	if res.Cached {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	for _, warning := range res.Warnings {
		h.Add(HeaderWarning, warning)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = res.WriteTo(w)
}

// requestOptions decodes the options field. Missing options mean the
// server defaults. The base directory is always the server's; image paths
// must be relative to it.
func (s *Server) requestOptions(raw json.RawMessage) (engine.Options, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return s.defaults, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return engine.Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "options")
		}
	}
	if strings.TrimSpace(text) == "" {
		return s.defaults, nil
	}

	opts, err := engine.ParseOptions(text)
	if err != nil {
		return engine.Options{}, err
	}

	images := opts.Images
	opts.Images = nil
	opts = opts.WithBaseDir(s.defaults.BaseDir)
	for _, img := range images {
		if err := errors.ValidatePath(img.Path); err != nil {
			return engine.Options{}, err
		}
		if img.Width == 0 && img.Height == 0 {
			if opts, err = opts.WithImage(img.Path); err != nil {
				return engine.Options{}, err
			}
			continue
		}
		img.Path = filepath.Join(opts.BaseDir, img.Path)
		opts = opts.WithImageHint(img)
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", RequestID(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:      string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
