package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/stemsi/mentora-cli/internal/model"
)

// downloadTimeout is generous because certificate PDFs are opaque blobs of
// unknown size served by the backend.
const downloadTimeout = 2 * time.Minute

type certificatesResponse struct {
	status
	Certificates []model.Certificate `json:"certificates"`
}

// ListCertificates returns the user's earned certificates.
func (c *Client) ListCertificates(ctx context.Context) ([]model.Certificate, error) {
	var resp certificatesResponse
	if err := c.get(ctx, "/certificates", nil, &resp); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return resp.Certificates, nil
}

// DownloadCertificate fetches the PDF behind cert.URL into dir and returns
// the written path. The URL is opaque and backend-provided; it may point at
// a different host than the API, so the bearer token is only attached when
// the download stays on the API origin.
func (c *Client) DownloadCertificate(ctx context.Context, cert model.Certificate, dir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cert.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	if token := c.tokens.Token(); token != "" && len(cert.URL) >= len(c.baseURL) && cert.URL[:len(c.baseURL)] == c.baseURL {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download certificate: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Status: resp.StatusCode, Code: codeForStatus(resp.StatusCode), Message: "certificate download failed"}
	}

	path := filepath.Join(dir, fmt.Sprintf("certificate-%s.pdf", cert.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write certificate: %w", err)
	}
	return path, nil
}
