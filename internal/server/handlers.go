package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extract"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Multipart form fields
const (
	fieldResume  = "resume"
	fieldJobRole = "job_role"
)

// maxMultipartMemory is kept in memory before spilling parts to disk
const maxMultipartMemory = 8 << 20

// AnalyzeRequest is the JSON body accepted by POST /analyze
type AnalyzeRequest struct {
	Text    string `json:"text" validate:"required"`
	JobRole string `json:"job_role,omitempty"`
}

// RoleInfo describes one selectable role
type RoleInfo struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

// RolesResponse is returned by GET /roles
type RolesResponse struct {
	Roles   []RoleInfo `json:"roles"`
	Default string     `json:"default"`
	Formats []string   `json:"formats"`
}

// handleAnalyze analyzes an uploaded résumé file or a JSON text body
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		s.analyzeJSON(w, r)
		return
	}

	if err := s.parseMultipart(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.analyzer.AnalyzeDocument(r.Context(), doc, jobRole(r.FormValue(fieldJobRole)))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) analyzeJSON(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, &ErrTooLarge{Limit: maxErr.Limit})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "text", Message: "text is required"})
		return
	}

	result, err := s.analyzer.AnalyzeText(extract.CleanText(req.Text), jobRole(req.JobRole))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeBatch analyzes every uploaded résumé and streams one SSE
// event per file followed by a completion event.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := s.parseMultipart(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	headers := r.MultipartForm.File[fieldResume]
	if len(headers) == 0 {
		s.writeError(w, r, &ErrValidation{Field: fieldResume, Message: "No file provided"})
		return
	}

	role := jobRole(r.FormValue(fieldJobRole))
	if err := s.analyzer.ValidateRole(role); err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	failed := 0
	for _, header := range headers {
		if r.Context().Err() != nil {
			return
		}

		result, err := s.analyzeUpload(r, header, role)
		if err != nil {
			failed++
			if werr := sse.WriteError(header.Filename, publicMessage(err)); werr != nil {
				return
			}
			continue
		}

		if werr := sse.WriteEvent(eventResult, map[string]any{"file": header.Filename, "analysis": result}); werr != nil {
			return
		}
	}

	if err := sse.WriteComplete(len(headers), failed); err != nil {
		s.logger.Warn("failed to write completion event",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
}

func (s *Server) analyzeUpload(r *http.Request, header *multipart.FileHeader, role string) (*types.AnalysisResult, error) {
	doc, err := documentFrom(header)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeDocument(r.Context(), doc, role)
}

// handleRoles lists the selectable roles
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	cat := s.analyzer.Catalog()
	keys := cat.RoleKeys()

	roles := make([]RoleInfo, 0, len(keys))
	for _, key := range keys {
		role, _ := cat.Role(key)
		roles = append(roles, RoleInfo{
			Key:      key,
			Title:    catalog.HumanizeRole(key),
			Keywords: role.Keywords,
		})
	}

	s.jsonResponse(w, http.StatusOK, RolesResponse{
		Roles:   roles,
		Default: analysis.DefaultRole,
		Formats: extract.Formats(),
	})
}

// parseMultipart parses the form, mapping body-size overruns to ErrTooLarge
func (s *Server) parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrTooLarge{Limit: maxErr.Limit}
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return &ErrValidation{Field: fieldResume, Message: "No file provided"}
		}
		return &ErrValidation{Field: "body", Message: "Invalid multipart form"}
	}
	return nil
}

// readUpload validates the single résumé upload and reads it
func (s *Server) readUpload(r *http.Request) (extract.Document, error) {
	headers := r.MultipartForm.File[fieldResume]
	if len(headers) == 0 {
		// A file input submitted with nothing chosen arrives as an empty value
		if _, ok := r.MultipartForm.Value[fieldResume]; ok {
			return extract.Document{}, &ErrValidation{Field: fieldResume, Message: "No file selected"}
		}
		return extract.Document{}, &ErrValidation{Field: fieldResume, Message: "No file provided"}
	}

	return documentFrom(headers[0])
}

// documentFrom checks the file name and extension and reads the part
func documentFrom(header *multipart.FileHeader) (extract.Document, error) {
	if strings.TrimSpace(header.Filename) == "" {
		return extract.Document{}, &ErrValidation{Field: fieldResume, Message: "No file selected"}
	}
	if !extract.AllowedFormat(header.Filename) {
		return extract.Document{}, &ErrValidation{
			Field:   fieldResume,
			Message: fmt.Sprintf("File type not allowed. Allowed types: %s", strings.Join(extract.Formats(), ", ")),
		}
	}

	f, err := header.Open()
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to read upload: %w", err)
	}

	return extract.Document{Name: header.Filename, Data: data}, nil
}

// jobRole applies the default role to an empty selection
func jobRole(role string) string {
	if role = strings.TrimSpace(role); role == "" {
		return analysis.DefaultRole
	}
	return role
}
