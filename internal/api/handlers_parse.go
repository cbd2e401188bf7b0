package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/scriptmentor/scriptparse/internal/markup"
	"github.com/scriptmentor/scriptparse/internal/parser"
	"github.com/scriptmentor/scriptparse/internal/projector"
)

// handleParse parses a script synchronously and returns the canonical model
// together with every derived view. Nothing is stored. The document comes
// either as a multipart "file" field or as the raw request body; the
// optional format hint comes from the "format" form value or query param.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	data, hint, err := readDocument(r, s.cfg.MaxUploadBytes)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		jsonError(w, "empty document", http.StatusBadRequest)
		return
	}

	doc, err := parser.Parse(data, hint)
	if err != nil {
		var unsupported *parser.UnsupportedFormatError
		switch {
		case errors.As(err, &unsupported):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, markup.ErrUnavailable):
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
		default:
			jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"format":     detectedLabel(data, hint),
		"screenplay": doc,
		"web":        projector.Web(doc),
		"analysis":   projector.Analyze(doc),
		"fountain":   projector.Fountain(doc),
	})
}

func detectedLabel(data []byte, hint string) string {
	if hint != "" {
		return hint
	}
	return string(parser.Detect(data))
}

// readDocument pulls raw bytes plus the format hint from either a
// multipart form or the plain request body.
func readDocument(r *http.Request, maxBytes int64) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, "", errors.New("invalid multipart form: " + err.Error())
		}
		defer r.MultipartForm.RemoveAll()

		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New("file is required: " + err.Error())
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			return nil, "", errors.New("failed to read file")
		}
		if int64(len(data)) > maxBytes {
			return nil, "", errors.New("file exceeds max size")
		}
		return data, r.FormValue("format"), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, "", errors.New("failed to read body")
	}
	if int64(len(data)) > maxBytes {
		return nil, "", errors.New("body exceeds max size")
	}
	return data, r.URL.Query().Get("format"), nil
}
