package handler

import (
	"context"
	"net/http"

	"github.com/inovuslabs/certanchor/internal/api/request"
	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/media"
)

// UploadSigner signs direct-upload URLs for certificate assets.
type UploadSigner interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (*media.UploadURL, error)
}

type Media struct {
	signer UploadSigner
}

func NewMedia(signer UploadSigner) *Media {
	return &Media{signer: signer}
}

// UploadURL returns a pre-signed PUT URL for a certificate asset. Returns
// 503 when object storage is not configured.
func (h *Media) UploadURL(w http.ResponseWriter, r *http.Request) {
	if h.signer == nil {
		response.WriteError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	var req request.UploadURL
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.signer.PresignUpload(r.Context(), req.FileName, req.ContentType)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, url)
}
