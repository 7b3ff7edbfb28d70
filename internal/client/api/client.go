// Package api is the HTTP client for the Inventa server. It speaks the
// server's JSON API and keeps the bearer token for authenticated calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable indicates the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken stores the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.accessToken = token
}

// Token returns the current bearer token, empty if not logged in.
func (c *Client) Token() string {
	return c.accessToken
}

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	PublicKey string `json:"publicKey"`
	CreatedAt string `json:"createdAt"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Document struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Filename    string   `json:"filename"`
	ContentHash string   `json:"hash"`
	CreatedAt   string   `json:"registeredAt"`
	Signature   string   `json:"signature"`
	PlainSize   int64    `json:"fileSize"`
	Metadata    Metadata `json:"metadata"`
}

type Metadata struct {
	OwnerName    string `json:"owner_name"`
	Description  string `json:"description"`
	DocumentType string `json:"document_type"`
	WorkType     string `json:"work_type"`
}

type Proof struct {
	DocumentID         string   `json:"document_id"`
	DocumentHash       string   `json:"document_hash"`
	Filename           string   `json:"filename"`
	OwnerID            string   `json:"owner_id"`
	OwnerName          string   `json:"owner_name"`
	OwnerUsername      string   `json:"owner_username"`
	OwnerEmail         string   `json:"owner_email"`
	OwnerPublicKey     string   `json:"owner_public_key"`
	Timestamp          string   `json:"timestamp"`
	Signature          string   `json:"signature"`
	Metadata           Metadata `json:"metadata"`
	VerificationStatus string   `json:"verification_status"`
	GeneratedAt        string   `json:"generated_at"`
}

type VerificationResult struct {
	Verified       bool      `json:"verified"`
	SignatureValid bool      `json:"signatureValid"`
	Hash           string    `json:"hash"`
	Document       *Document `json:"document,omitempty"`
	Owner          *struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		PublicKey string `json:"publicKey"`
	} `json:"owner,omitempty"`
}

// UploadRequest describes a document registration.
type UploadRequest struct {
	Filename        string
	Content         []byte
	OwnerName       string
	Description     string
	DocumentType    string
	WorkType        string
	ProofOfWorkName string
	ProofOfWorkData []byte
}

func (c *Client) Ping(ctx context.Context) error {
	var resp map[string]string
	return c.doJSON(ctx, http.MethodGet, "/ping", nil, &resp)
}

func (c *Client) Register(ctx context.Context, username, email string, password []byte) (*AuthResponse, error) {
	req := map[string]string{"username": username, "email": email, "password": string(password)}
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", req, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.AccessToken
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email string, password []byte) (*AuthResponse, error) {
	req := map[string]string{"email": email, "password": string(password)}
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.AccessToken
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp User
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload registers a document and returns the created record.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*Document, error) {

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fw, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(req.Content); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"owner_name":    req.OwnerName,
		"description":   req.Description,
		"document_type": req.DocumentType,
		"work_type":     req.WorkType,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if len(req.ProofOfWorkData) > 0 {
		pw, err := mw.CreateFormFile("proof_of_work", req.ProofOfWorkName)
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write(req.ProofOfWorkData); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/documents", buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var doc Document
	if err := c.do(httpReq, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) List(ctx context.Context) ([]Document, error) {
	var resp struct {
		Documents []Document `json:"documents"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

func (c *Client) Proof(ctx context.Context, documentID string) (*Proof, error) {
	var resp Proof
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents/"+documentID+"/proof", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyHash runs the public hash check; no authentication required.
func (c *Client) VerifyHash(ctx context.Context, hash string) (*VerificationResult, error) {
	var resp VerificationResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/verify/"+hash, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download fetches the decrypted original content of an owned document.
func (c *Client) Download(ctx context.Context, documentID string) (string, []byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents/"+documentID+"/download", nil)
	if err != nil {
		return "", nil, err
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}

	return filename, data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {

	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		envelope.Error = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
}
