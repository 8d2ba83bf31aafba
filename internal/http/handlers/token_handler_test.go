package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cdvtrack/internal/models"
	"cdvtrack/internal/service"
)

type fakeIssuer struct {
	userID   int64
	username string
}

func (f *fakeIssuer) Generate(userID int64, username string) (string, error) {
	f.userID = userID
	f.username = username
	return "signed-token", nil
}

func postToken(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestTokenIssuedForValidCredentials(t *testing.T) {
	auth := &fakeAuth{user: &models.User{ID: 5, Username: "robo"}}
	issuer := &fakeIssuer{}
	h := NewTokenHandler(auth, issuer)

	rec := postToken(h, `{"username":"robo","password":"secret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token != "signed-token" || resp.TokenType != "Bearer" {
		t.Errorf("response = %+v", resp)
	}
	if issuer.userID != 5 || issuer.username != "robo" {
		t.Errorf("issued for %d/%q", issuer.userID, issuer.username)
	}
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	h := NewTokenHandler(&fakeAuth{err: service.ErrInvalidCredentials}, &fakeIssuer{})

	if rec := postToken(h, `{"username":"robo","password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTokenValidatesBody(t *testing.T) {
	h := NewTokenHandler(&fakeAuth{}, &fakeIssuer{})

	if rec := postToken(h, `{"username":`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d", rec.Code)
	}
	if rec := postToken(h, `{"username":"  ","password":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("blank username: status = %d", rec.Code)
	}
}
