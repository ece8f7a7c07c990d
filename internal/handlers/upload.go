package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxUploadBytes caps multipart uploads for candidate lists and profile pictures.
const MaxUploadBytes = 10 << 20

const uploadField = "file"

type uploadedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var errNoFile = errors.New("no file uploaded")

func readUpload(w http.ResponseWriter, r *http.Request) (*uploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &uploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
