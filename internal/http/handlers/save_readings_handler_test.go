package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"cdvtrack/internal/http/middleware"
	"cdvtrack/internal/service"
)

type fakeSaver struct {
	err   error
	batch service.Batch
	calls int
}

func (f *fakeSaver) SaveBatch(_ context.Context, batch service.Batch) error {
	f.calls++
	f.batch = batch
	return f.err
}

type fakeGuard struct {
	allow bool
	err   error
	key   string
}

func (f *fakeGuard) AllowSubmission(_ context.Context, key string) (bool, error) {
	f.key = key
	return f.allow, f.err
}

func postReadings(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/salvar_dados_cdv/", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{
		UserID:    1,
		Username:  "tecnico",
		SessionID: "sess-1",
	}))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestSaveReadingsSuccess(t *testing.T) {
	saver := &fakeSaver{}
	guard := &fakeGuard{allow: true}
	h := NewSaveReadingsHandler(saver, guard, zap.NewNop())

	rec := postReadings(h, `{"estacao":"ETV Norte","transmissores":[{"num_circuito":"C1"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeStatus(t, rec)
	if resp.Status != "success" || resp.Message != "Dados salvos com sucesso!" {
		t.Errorf("response = %+v", resp)
	}
	if saver.batch.Station != "ETV Norte" || len(saver.batch.Transmitters) != 1 {
		t.Errorf("batch = %+v", saver.batch)
	}
	if guard.key != "sess-1" {
		t.Errorf("guard keyed on %q, want the session id", guard.key)
	}
}

func TestSaveReadingsDuplicateSubmission(t *testing.T) {
	saver := &fakeSaver{}
	h := NewSaveReadingsHandler(saver, &fakeGuard{allow: false}, zap.NewNop())

	rec := postReadings(h, `{"estacao":"ETV Norte"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeStatus(t, rec)
	if resp.Status != "error" || resp.Message != "Requisição ignorada (duplicada)." {
		t.Errorf("response = %+v", resp)
	}
	if saver.calls != 0 {
		t.Error("duplicate submissions must not reach the service")
	}
}

func TestSaveReadingsBadJSON(t *testing.T) {
	h := NewSaveReadingsHandler(&fakeSaver{}, &fakeGuard{allow: true}, zap.NewNop())

	rec := postReadings(h, `{"estacao":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeStatus(t, rec); resp.Message != "Dados JSON inválidos." {
		t.Errorf("response = %+v", resp)
	}
}

func TestSaveReadingsErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   int
		wantPrefix string
	}{
		{"missing station name", service.ErrStationNameMissing, http.StatusBadRequest, "Nome da estação não fornecido."},
		{"unknown station", &service.StationNotFoundError{Name: "ETV Sul"}, http.StatusNotFound, `Estação "ETV Sul" não encontrada.`},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "Ocorreu um erro inesperado no servidor: disk on fire"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSaveReadingsHandler(&fakeSaver{err: tc.err}, &fakeGuard{allow: true}, zap.NewNop())
			rec := postReadings(h, `{"estacao":"ETV Norte"}`)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			resp := decodeStatus(t, rec)
			if resp.Status != "error" || resp.Message != tc.wantPrefix {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}
