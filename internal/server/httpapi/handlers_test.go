package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/logging"
	"github.com/inventa-labs/inventa/internal/server/auth"
	"github.com/inventa-labs/inventa/internal/server/models"
	"github.com/inventa-labs/inventa/internal/server/services"
)

const testSecret = "test-secret"

type fakeUsers struct {
	registerFn func(username, email, password string) (*models.User, *services.TokenPair, error)
	loginFn    func(email, password string) (*models.User, *services.TokenPair, error)
	user       *models.User
	history    []*models.LoginEvent
}

func (f *fakeUsers) Register(_ context.Context, username, email, password, _ string) (*models.User, *services.TokenPair, error) {
	return f.registerFn(username, email, password)
}

func (f *fakeUsers) Login(_ context.Context, email, password, _ string) (*models.User, *services.TokenPair, error) {
	return f.loginFn(email, password)
}

func (f *fakeUsers) GetByID(_ context.Context, userID string) (*models.User, error) {
	if f.user != nil && f.user.ID == userID {
		return f.user, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) LoginHistory(_ context.Context, _ int) ([]*models.LoginEvent, error) {
	return f.history, nil
}

type fakeDocuments struct {
	registerFn func(ownerID string, content []byte, in services.RegisterInput) (*models.Document, error)
	verifyFn   func(hash string) (*models.VerificationResult, error)
	doc        *models.Document
	plain      []byte
}

func (f *fakeDocuments) Register(_ context.Context, ownerID string, content []byte, in services.RegisterInput) (*models.Document, error) {
	return f.registerFn(ownerID, content, in)
}

func (f *fakeDocuments) ListByOwner(_ context.Context, ownerID string) ([]models.PublicDocument, error) {
	if f.doc == nil || f.doc.OwnerID != ownerID {
		return nil, nil
	}
	return []models.PublicDocument{f.doc.PublicFields()}, nil
}

func (f *fakeDocuments) BuildProof(_ context.Context, documentID, callerID string) (*models.OwnershipProof, error) {
	if f.doc == nil || f.doc.ID != documentID {
		return nil, common.ErrorNotFound
	}
	if f.doc.OwnerID != callerID {
		return nil, common.ErrorUnauthorized
	}
	return &models.OwnershipProof{
		DocumentID:         f.doc.ID,
		DocumentHash:       f.doc.ContentHash,
		VerificationStatus: models.VerificationStatus,
	}, nil
}

func (f *fakeDocuments) VerifyBytes(ctx context.Context, content []byte) (*models.VerificationResult, error) {
	return f.verifyFn("")
}

func (f *fakeDocuments) VerifyHash(_ context.Context, hash string) (*models.VerificationResult, error) {
	return f.verifyFn(hash)
}

func (f *fakeDocuments) Download(_ context.Context, documentID, callerID string) (string, []byte, error) {
	if f.doc == nil || f.doc.ID != documentID {
		return "", nil, common.ErrorNotFound
	}
	if f.doc.OwnerID != callerID {
		return "", nil, common.ErrorUnauthorized
	}
	return f.doc.Filename, f.plain, nil
}

func (f *fakeDocuments) Attachment(ctx context.Context, documentID, callerID string) (string, []byte, error) {
	return f.Download(ctx, documentID, callerID)
}

func (f *fakeDocuments) Stats(_ context.Context) (*models.Stats, error) {
	return &models.Stats{Users: 1, Documents: 2}, nil
}

func newTestServer(us *fakeUsers, ds *fakeDocuments) *HTTPServer {
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewHTTPServer(":0", l, us, ds, testSecret, 1<<20, nil)
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandleRegister(t *testing.T) {
	us := &fakeUsers{
		registerFn: func(username, email, password string) (*models.User, *services.TokenPair, error) {
			return &models.User{ID: "user_aaaa0000bbbb", Username: username, Email: email},
				&services.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
		},
	}
	srv := newTestServer(us, &fakeDocuments{})

	body := `{"username":"alice","email":"alice@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "at", resp.AccessToken)
	assert.Equal(t, "rt", resp.RefreshToken)
}

func TestHandleRegister_Conflict(t *testing.T) {
	us := &fakeUsers{
		registerFn: func(_, _, _ string) (*models.User, *services.TokenPair, error) {
			return nil, nil, common.ErrorAlreadyExists
		},
	}
	srv := newTestServer(us, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"username":"a","email":"b","password":"c"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleLogin_Unauthorized(t *testing.T) {
	us := &fakeUsers{
		loginFn: func(_, _ string) (*models.User, *services.TokenPair, error) {
			return nil, nil, common.ErrorUnauthorized
		},
	}
	srv := newTestServer(us, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a","password":"b"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: "user_aaaa0000bbbb", Username: "alice"}
	srv := newTestServer(&fakeUsers{user: user}, &fakeDocuments{})
	router := srv.Router()

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", bearerToken(t, user.ID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp userResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
	})
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	ds := &fakeDocuments{
		registerFn: func(ownerID string, content []byte, in services.RegisterInput) (*models.Document, error) {
			return &models.Document{
				ID:          "doc_0011223344556677",
				OwnerID:     ownerID,
				Filename:    in.Filename,
				ContentHash: strings.Repeat("ab", 32),
				Signature:   "sig",
				PlainSize:   int64(len(content)),
			}, nil
		},
	}
	srv := newTestServer(&fakeUsers{}, ds)

	body, contentType := multipartBody(t,
		map[string]string{"description": "my work"},
		map[string][]byte{"file": []byte("payload")})

	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, "user_aaaa0000bbbb"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.PublicDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "doc_0011223344556677", resp.ID)
	assert.Equal(t, int64(len("payload")), resp.PlainSize)
}

func TestHandleUpload_MissingFile(t *testing.T) {
	srv := newTestServer(&fakeUsers{}, &fakeDocuments{})

	body, contentType := multipartBody(t, map[string]string{"description": "x"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, "user_aaaa0000bbbb"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload_Duplicate(t *testing.T) {
	ds := &fakeDocuments{
		registerFn: func(_ string, _ []byte, _ services.RegisterInput) (*models.Document, error) {
			return nil, &common.DuplicateContentError{
				ExistingID:   "doc_ffeeddccbbaa9988",
				OwnerID:      "user_cccc1111dddd",
				RegisteredAt: "2024-05-01T10:00:00.000000Z",
			}
		},
	}
	srv := newTestServer(&fakeUsers{}, ds)

	body, contentType := multipartBody(t, nil, map[string][]byte{"file": []byte("dup")})

	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, "user_aaaa0000bbbb"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "doc_ffeeddccbbaa9988", resp["existing_document_id"])
	assert.Equal(t, "user_cccc1111dddd", resp["owner_id"])
}

func TestHandleVerifyHash_Public(t *testing.T) {
	hash := strings.Repeat("0", 64)
	ds := &fakeDocuments{
		verifyFn: func(h string) (*models.VerificationResult, error) {
			return &models.VerificationResult{Verified: false, Hash: h}, nil
		},
	}
	srv := newTestServer(&fakeUsers{}, ds)

	// no Authorization header at all
	req := httptest.NewRequest(http.MethodGet, "/api/verify/"+hash, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Verified)
	assert.Equal(t, hash, resp.Hash)
}

func TestHandleVerifyUpload_JSONHash(t *testing.T) {
	ds := &fakeDocuments{
		verifyFn: func(h string) (*models.VerificationResult, error) {
			return &models.VerificationResult{Verified: true, SignatureValid: true, Hash: h}, nil
		},
	}
	srv := newTestServer(&fakeUsers{}, ds)

	body := `{"hash":"` + strings.Repeat("a", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Verified)
	assert.True(t, resp.SignatureValid)
}

func TestHandleDownload(t *testing.T) {
	owner := "user_aaaa0000bbbb"
	ds := &fakeDocuments{
		doc:   &models.Document{ID: "doc_0011223344556677", OwnerID: owner, Filename: "work.txt"},
		plain: []byte("the content"),
	}
	srv := newTestServer(&fakeUsers{}, ds)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc_0011223344556677/download", nil)
	req.Header.Set("Authorization", bearerToken(t, owner))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the content", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `"work.txt"`)

	// another caller is rejected
	req = httptest.NewRequest(http.MethodGet, "/api/documents/doc_0011223344556677/download", nil)
	req.Header.Set("Authorization", bearerToken(t, "user_eeee2222ffff"))
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleStats_Public(t *testing.T) {
	srv := newTestServer(&fakeUsers{}, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(2), stats.Documents)
}

func TestHandleLoginHistory_RequiresAuth(t *testing.T) {
	us := &fakeUsers{history: []*models.LoginEvent{{ID: "login_aabbccddeeff", Status: "success"}}}
	srv := newTestServer(us, &fakeDocuments{})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/login-history", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/login-history?limit=10", nil)
	req.Header.Set("Authorization", bearerToken(t, "user_aaaa0000bbbb"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Events []models.LoginEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "login_aabbccddeeff", resp.Events[0].ID)
}

func TestHandlePing(t *testing.T) {
	srv := newTestServer(&fakeUsers{}, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}
