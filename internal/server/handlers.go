package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
)

const (
	fieldResume         = "resume"
	fieldJobDescription = "job_description"

	msgNoResume        = "No resume file provided"
	msgNoJD            = "No job description provided"
	msgUnsupportedType = "Unsupported file type. Please upload PDF or DOCX."
	msgInvalidForm     = "Invalid multipart form: "
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, healthMessage)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(s.logger, requestIDFrom(r.Context()))

	resumeText, jdText, err := s.readAnalyzeRequest(w, r)
	if err != nil {
		log.Warn("analyze request rejected", zap.Error(err))
		s.errorResponse(w, analyzer.HTTPStatus(err), err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), resumeText, jdText)
	if err != nil {
		var aerr *analyzer.Error
		if !errors.As(err, &aerr) {
			err = analyzer.Processing(err)
		}
		log.Error("analysis failed", zap.Error(err))
		s.errorResponse(w, analyzer.HTTPStatus(err), err.Error())
		return
	}

	log.Info("analysis completed",
		zap.Float64("match_score", result.MatchScore),
		zap.Int("missing_skills", len(result.MissingSkills)),
		zap.Int("strongest_matches", len(result.StrongestMatches)),
		zap.Bool("ai_feedback", result.GeminiFeedback != nil),
	)

	s.jsonResponse(w, http.StatusOK, result)
}

// readAnalyzeRequest validates the multipart upload and returns the resume text and job
// description. Errors are *analyzer.Error carrying the user-facing message.
func (s *Server) readAnalyzeRequest(w http.ResponseWriter, r *http.Request) (string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", "", analyzer.InputValidation(msgNoResume)
		}
		return "", "", analyzer.InputValidation(msgInvalidForm + err.Error())
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[fieldResume]
	if len(headers) == 0 {
		return "", "", analyzer.InputValidation(msgNoResume)
	}

	values, ok := r.MultipartForm.Value[fieldJobDescription]
	if !ok || len(values) == 0 {
		return "", "", analyzer.InputValidation(msgNoJD)
	}
	jdText := values[0]

	header := headers[0]
	kind, err := document.KindFromFilename(header.Filename)
	if err != nil {
		return "", "", analyzer.InputValidation(msgUnsupportedType)
	}

	file, err := header.Open()
	if err != nil {
		return "", "", analyzer.Extraction(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", analyzer.Extraction(err)
	}

	resumeText, err := s.documents.Extract(data, kind)
	if err != nil {
		return "", "", analyzer.Extraction(err)
	}
	if resumeText == "" {
		return "", "", analyzer.EmptyContent()
	}

	return resumeText, jdText, nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
