package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	registerFunc func(ctx context.Context, req RegisterRequest) (*User, error)
	loginFunc    func(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

func (m *mockService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

// Test Register Handler

func TestHandlerRegister_Success(t *testing.T) {
	mockSvc := &mockService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, error) {
			return &User{
				ID:        "user-123",
				Username:  req.Username,
				CreatedAt: time.Now(),
			}, nil
		},
	}

	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(RegisterRequest{Username: "reception1", Password: "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}

	var resp RegisterResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success response")
	}
	if resp.Username != "reception1" {
		t.Errorf("Expected username 'reception1', got '%s'", resp.Username)
	}
}

func TestHandlerRegister_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("invalid json")))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerRegister_ValidationError(t *testing.T) {
	mockSvc := &mockService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, error) {
			return nil, ErrMissingPassword
		},
	}

	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(RegisterRequest{Username: "reception1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerRegister_Duplicate(t *testing.T) {
	mockSvc := &mockService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, error) {
			return nil, ErrDuplicateUser
		},
	}

	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(RegisterRequest{Username: "reception1", Password: "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["error"] != "duplicate_user" {
		t.Errorf("Expected error 'duplicate_user', got '%v'", resp["error"])
	}
}

// Test Login Handler

func TestHandlerLogin_Success(t *testing.T) {
	mockSvc := &mockService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
			return &LoginResponse{
				Success:   true,
				Token:     "token-abc",
				Username:  req.Username,
				ExpiresIn: 3600,
			}, nil
		},
	}

	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(LoginRequest{Username: "reception1", Password: "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var resp LoginResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token != "token-abc" {
		t.Errorf("Expected token 'token-abc', got '%s'", resp.Token)
	}
}

func TestHandlerLogin_InvalidCredentials(t *testing.T) {
	mockSvc := &mockService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
			return nil, ErrInvalidCredentials
		},
	}

	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(LoginRequest{Username: "reception1", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestHandlerLogin_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
