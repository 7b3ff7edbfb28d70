package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inventa-labs/inventa/internal/server/services"
)

// readFormFile pulls the named multipart file, bounded by the upload limit.
func (s *HTTPServer) readFormFile(r *http.Request, field string) (*services.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", s.maxUploadBytes)
	}

	return &services.UploadedFile{Filename: header.Filename, Data: data}, nil
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	content, err := s.readFormFile(r, "file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if content == nil {
		writeErrorMessage(w, http.StatusBadRequest, "file is required")
		return
	}

	proofOfWork, err := s.readFormFile(r, "proof_of_work")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	in := services.RegisterInput{
		Filename:     content.Filename,
		OwnerName:    r.FormValue("owner_name"),
		Description:  r.FormValue("description"),
		DocumentType: r.FormValue("document_type"),
		WorkType:     r.FormValue("work_type"),
		ProofOfWork:  proofOfWork,
	}

	doc, err := s.documents.Register(ctx, callerID(ctx), content.Data, in)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info(ctx, "document registered", "document_id", doc.ID, "hash", doc.ContentHash)

	writeJSON(w, http.StatusCreated, doc.PublicFields())
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request) {

	docs, err := s.documents.ListByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *HTTPServer) handleProof(w http.ResponseWriter, r *http.Request) {

	proof, err := s.documents.BuildProof(r.Context(), chi.URLParam(r, "id"), callerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, proof)
}

// handleVerifyUpload is the public check: the caller posts raw content
// (multipart "file") or a JSON body with a "hash" field.
func (s *HTTPServer) handleVerifyUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		content, err := s.readFormFile(r, "file")
		if err != nil || content == nil {
			writeErrorMessage(w, http.StatusBadRequest, "file is required")
			return
		}

		result, err := s.documents.VerifyBytes(ctx, content.Data)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	var req struct {
		Hash string `json:"hash"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := s.documents.VerifyHash(ctx, req.Hash)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleVerifyHash(w http.ResponseWriter, r *http.Request) {

	result, err := s.documents.VerifyHash(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleDownload(w http.ResponseWriter, r *http.Request) {

	filename, data, err := s.documents.Download(r.Context(), chi.URLParam(r, "id"), callerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	serveFile(w, filename, data)
}

func (s *HTTPServer) handleAttachment(w http.ResponseWriter, r *http.Request) {

	filename, data, err := s.documents.Attachment(r.Context(), chi.URLParam(r, "id"), callerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	serveFile(w, filename, data)
}

func serveFile(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
