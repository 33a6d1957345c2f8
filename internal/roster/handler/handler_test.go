package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rizalarf/matchday/internal/roster/model"
	"github.com/rizalarf/matchday/internal/roster/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateMatch(
	ctx context.Context,
	req *model.CreateMatchRequest,
) (*model.RosterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RosterResponse), args.Error(1)
}

func (m *mockService) ReplaceMatch(
	ctx context.Context,
	req *model.CreateMatchRequest,
) (*model.RosterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RosterResponse), args.Error(1)
}

func (m *mockService) ListMatches(ctx context.Context) (*model.MatchListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MatchListResponse), args.Error(1)
}

func (m *mockService) GetRoster(
	ctx context.Context,
	date, fieldName string,
) (*model.RosterResponse, error) {
	args := m.Called(ctx, date, fieldName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RosterResponse), args.Error(1)
}

func (m *mockService) UpdateStatus(
	ctx context.Context,
	req *model.UpdateStatusRequest,
) (*model.UpdateStatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateStatusResponse), args.Error(1)
}

func (m *mockService) UploadProof(
	ctx context.Context,
	date, fieldName, playerName string,
	image []byte,
) (*model.UpdateStatusResponse, error) {
	args := m.Called(ctx, date, fieldName, playerName, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpdateStatusResponse), args.Error(1)
}

func (m *mockService) ProofPath(
	ctx context.Context,
	date, fieldName, playerName string,
) (string, error) {
	args := m.Called(ctx, date, fieldName, playerName)
	return args.String(0), args.Error(1)
}

func (m *mockService) ArchiveProofs(
	ctx context.Context,
	date, fieldName string,
	w io.Writer,
) (int, error) {
	args := m.Called(ctx, date, fieldName, w)
	return args.Int(0), args.Error(1)
}

func (m *mockService) DeleteMatch(
	ctx context.Context,
	date, fieldName string,
) (*model.DeleteMatchResponse, error) {
	args := m.Called(ctx, date, fieldName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteMatchResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// pngBytes is a minimal payload carrying the PNG signature, enough for
// content sniffing.
var pngBytes = []byte("\x89PNG\r\n\x1a\n00000000")

func TestHandler_CreateMatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/matches", handler.CreateMatch)

		req := &model.CreateMatchRequest{
			Date:      "2026-08-30",
			FieldName: "Arena North",
			Names:     "1. Ann\n2. Bob",
		}
		resp := &model.RosterResponse{
			Date:      "2026-08-30",
			FieldName: "Arena North",
			Entries: []model.RosterEntry{
				{PlayerName: "Ann", Status: model.StatusUnpaid, EffectiveStatus: model.StatusUnpaid, Editable: true},
				{PlayerName: "Bob", Status: model.StatusUnpaid, EffectiveStatus: model.StatusUnpaid, Editable: true},
			},
		}

		mockSvc.On("CreateMatch", mock.Anything, req).Return(resp, nil)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/matches", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response model.RosterResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-30", response.Date)
		assert.Len(t, response.Entries, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("match already exists", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/matches", handler.CreateMatch)

		req := &model.CreateMatchRequest{
			Date:      "2026-08-30",
			FieldName: "Arena North",
			Names:     "Ann",
		}

		mockSvc.On("CreateMatch", mock.Anything, req).Return(nil, model.ErrMatchExists)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/matches", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusConflict, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "MATCH_EXISTS", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/matches", handler.CreateMatch)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/matches", bytes.NewBufferString("{"))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
	})
}

func TestHandler_GetRoster(t *testing.T) {
	t.Run("success without field", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches/roster", handler.GetRoster)

		resp := &model.RosterResponse{
			Date:      "2026-08-30",
			FieldName: "Arena North",
			Entries: []model.RosterEntry{
				{PlayerName: "Ann", Status: model.StatusCash, EffectiveStatus: model.StatusCash, Editable: true, Paid: true},
			},
			AllPaid: true,
		}
		mockSvc.On("GetRoster", mock.Anything, "2026-08-30", "").Return(resp, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches/roster?date=2026-08-30", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response model.RosterResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response.AllPaid)
		assert.Equal(t, "Arena North", response.FieldName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("ambiguous date", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches/roster", handler.GetRoster)

		mockSvc.On("GetRoster", mock.Anything, "2026-08-30", "").
			Return(nil, model.ErrAmbiguousMatch)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches/roster?date=2026-08-30", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "AMBIGUOUS_MATCH", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing date parameter", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches/roster", handler.GetRoster)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches/roster", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/status", handler.UpdateStatus)

		req := &model.UpdateStatusRequest{
			Date:       "2026-08-30",
			FieldName:  "Arena North",
			PlayerName: "Ann",
			Status:     "CASH",
		}
		resp := &model.UpdateStatusResponse{
			Entry: model.RosterEntry{
				PlayerName:      "Ann",
				Status:          model.StatusCash,
				EffectiveStatus: model.StatusCash,
				Editable:        true,
				Paid:            true,
			},
		}
		mockSvc.On("UpdateStatus", mock.Anything, req).Return(resp, nil)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/status", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("record locked", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/status", handler.UpdateStatus)

		req := &model.UpdateStatusRequest{
			Date:       "2026-08-30",
			FieldName:  "Arena North",
			PlayerName: "Bob",
			Status:     "CASH",
		}
		mockSvc.On("UpdateStatus", mock.Anything, req).Return(nil, model.ErrRecordLocked)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/status", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusConflict, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "RECORD_LOCKED", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid status value", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/status", handler.UpdateStatus)

		req := &model.UpdateStatusRequest{
			Date:       "2026-08-30",
			FieldName:  "Arena North",
			PlayerName: "Ann",
			Status:     "WIRE",
		}
		mockSvc.On("UpdateStatus", mock.Anything, req).Return(nil, model.ErrInvalidStatus)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/status", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INVALID_STATUS", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func buildProofForm(t *testing.T, date, field, player string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("date", date))
	require.NoError(t, writer.WriteField("field_name", field))
	require.NoError(t, writer.WriteField("player_name", player))
	part, err := writer.CreateFormFile("proof", "proof.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandler_UploadProof(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/proof", handler.UploadProof)

		resp := &model.UpdateStatusResponse{
			Entry: model.RosterEntry{
				PlayerName:      "Bob",
				Status:          model.StatusTransfer,
				EffectiveStatus: model.StatusTransfer,
				Editable:        false,
				Paid:            true,
				HasProof:        true,
			},
		}
		mockSvc.On("UploadProof", mock.Anything, "2026-08-30", "Arena North", "Bob", pngBytes).
			Return(resp, nil)

		body, contentType := buildProofForm(t, "2026-08-30", "Arena North", "Bob", pngBytes)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/proof", body)
		httpReq.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response model.UpdateStatusResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.False(t, response.Entry.Editable)
		assert.Equal(t, model.StatusTransfer, response.Entry.EffectiveStatus)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file too large", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 16)
		router := setupRouter()
		router.POST("/payments/proof", handler.UploadProof)

		image := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte("x"), 64)...)
		body, contentType := buildProofForm(t, "2026-08-30", "Arena North", "Bob", image)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/proof", body)
		httpReq.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "FILE_TOO_LARGE", response.Error.Code)
	})

	t.Run("not an image", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/proof", handler.UploadProof)

		body, contentType := buildProofForm(t, "2026-08-30", "Arena North", "Bob", []byte("just text"))
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/proof", body)
		httpReq.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "UNSUPPORTED_MEDIA", response.Error.Code)
	})

	t.Run("missing player field", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.POST("/payments/proof", handler.UploadProof)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("date", "2026-08-30"))
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/payments/proof", body)
		httpReq.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetProof(t *testing.T) {
	t.Run("proof not found", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/payments/proof", handler.GetProof)

		mockSvc.On("ProofPath", mock.Anything, "2026-08-30", "Arena North", "Bob").
			Return("", model.ErrProofNotFound)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET",
			"/payments/proof?date=2026-08-30&field=Arena+North&player=Bob", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "NOT_FOUND", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandler_DeleteMatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.DELETE("/matches", handler.DeleteMatch)

		resp := &model.DeleteMatchResponse{
			Date:           "2026-08-30",
			FieldName:      "Arena North",
			RecordsDeleted: 12,
		}
		mockSvc.On("DeleteMatch", mock.Anything, "2026-08-30", "Arena North").Return(resp, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/matches?date=2026-08-30&field=Arena+North", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response model.DeleteMatchResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, 12, response.RecordsDeleted)
		mockSvc.AssertExpectations(t)
	})

	t.Run("match not found", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.DELETE("/matches", handler.DeleteMatch)

		mockSvc.On("DeleteMatch", mock.Anything, "2026-08-30", "Arena North").
			Return(nil, model.ErrMatchNotFound)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/matches?date=2026-08-30&field=Arena+North", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandler_ArchiveProofs(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches/proofs", handler.ArchiveProofs)

		mockSvc.On("ArchiveProofs", mock.Anything, "2026-08-30", "Arena North", mock.Anything).
			Return(1, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches/proofs?date=2026-08-30&field=Arena+North", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "_proofs.zip")
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown match gets a JSON error, not download headers", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches/proofs", handler.ArchiveProofs)

		mockSvc.On("ArchiveProofs", mock.Anything, "2026-08-30", "Arena North", mock.Anything).
			Return(0, model.ErrMatchNotFound)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches/proofs?date=2026-08-30&field=Arena+North", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Header().Get("Content-Disposition"))
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "NOT_FOUND", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandler_ListMatches(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar(), 5<<20)
		router := setupRouter()
		router.GET("/matches", handler.ListMatches)

		resp := &model.MatchListResponse{
			Matches: []model.MatchSummary{
				{Date: "2026-08-30", FieldName: "Arena North"},
				{Date: "2026-08-23", FieldName: "Arena South"},
			},
		}
		mockSvc.On("ListMatches", mock.Anything).Return(resp, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/matches", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response model.MatchListResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Len(t, response.Matches, 2)
		mockSvc.AssertExpectations(t)
	})
}
