package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/models"
	"github.com/mmynk/serralheria/internal/service"
	"github.com/mmynk/serralheria/internal/storage/sqlite"
)

var fixedNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func setupServer(t *testing.T) (*httptest.Server, *service.QuoteService) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := service.NewQuoteService(store, service.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, svc.Load(context.Background()))

	srv := httptest.NewServer(New(svc, func() time.Time { return fixedNow }).Routes())
	t.Cleanup(srv.Close)
	return srv, svc
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const validDraft = `{
	"clientName": "Maria Souza",
	"clientPhone": "(11) 99999-0000",
	"items": [
		{"id": "i1", "name": "Portão", "quantity": 2, "material": "Ferro", "pricePerUnit": "1500"},
		{"id": "i2", "name": "Grade", "quantity": "", "material": "Alumínio", "pricePerUnit": 300}
	],
	"laborCost": "250.5"
}`

func TestCalculate(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/calculate", `{
		"items": [
			{"quantity": 2, "pricePerUnit": 100},
			{"quantity": "abc", "pricePerUnit": 50},
			{"quantity": 1.5, "pricePerUnit": ""}
		],
		"laborCost": 50
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[CalculateResponse](t, resp)
	assert.Equal(t, 200.0, got.Subtotal)
	assert.Equal(t, 250.0, got.Total)
	assert.Equal(t, []float64{200, 0, 0}, got.LineTotals)
}

func TestCalculateEmptyDraft(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/calculate", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[CalculateResponse](t, resp)
	assert.Zero(t, got.Total)
	assert.NotNil(t, got.LineTotals)
}

func TestSaveAndGetQuote(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/quotes", validDraft)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[models.Quote](t, resp)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "10/05/2024", saved.Date)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, 3250.5, saved.Total)

	resp = do(t, srv, http.MethodGet, "/api/quotes/"+saved.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.Quote](t, resp)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.Total, got.Total)
}

func TestSaveQuoteValidation(t *testing.T) {
	srv, svc := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/quotes", `{"clientName": "  ", "items": []}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "validation_failed", body.Error)
	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", details["clientName"])
	assert.Equal(t, "required", details["clientPhone"])

	assert.Empty(t, svc.Quotes(), "nothing is stored")
}

func TestSaveQuoteIgnoresPostedIdentity(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/quotes", `{
		"clientName": "Ana", "clientPhone": "1",
		"status": "completed", "date": "01/01/1900",
		"items": [{"name": "Grade", "quantity": 1, "pricePerUnit": 10}, {"name": "Portão", "quantity": 1, "pricePerUnit": 20}]
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[models.Quote](t, resp)

	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, "10/05/2024", saved.Date)
	require.Len(t, saved.Items, 2)
	assert.NotEmpty(t, saved.Items[0].ID)
	assert.NotEmpty(t, saved.Items[1].ID)
	assert.NotEqual(t, saved.Items[0].ID, saved.Items[1].ID)
	assert.Equal(t, models.MaterialIron, saved.Items[0].Material)
}

func TestSaveQuoteRejectsUnknownStatus(t *testing.T) {
	srv, svc := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/quotes", `{"clientName": "Ana", "clientPhone": "1", "status": "bogus", "items": []}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[ErrorResponse](t, resp)
	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "status", details["status"])
	assert.Empty(t, svc.Quotes())
}

func TestSaveQuoteInvalidJSON(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/quotes", `{"clientName":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_json", decode[ErrorResponse](t, resp).Error)
}

func TestResaveKeepsPosition(t *testing.T) {
	srv, svc := setupServer(t)

	first := decode[models.Quote](t, do(t, srv, http.MethodPost, "/api/quotes", validDraft))
	second := decode[models.Quote](t, do(t, srv, http.MethodPost, "/api/quotes",
		`{"clientName": "João", "clientPhone": "1234", "items": []}`))

	edit := service.EditDraft(first)
	edit.ClientAddress = "Rua Nova, 5"
	body, err := json.Marshal(edit)
	require.NoError(t, err)

	resp := do(t, srv, http.MethodPost, "/api/quotes", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	quotes := svc.Quotes()
	require.Len(t, quotes, 2)
	assert.Equal(t, second.ID, quotes[0].ID)
	assert.Equal(t, first.ID, quotes[1].ID)
	assert.Equal(t, "Rua Nova, 5", quotes[1].ClientAddress)
}

func TestListQuotesSearch(t *testing.T) {
	srv, _ := setupServer(t)

	do(t, srv, http.MethodPost, "/api/quotes", validDraft)
	do(t, srv, http.MethodPost, "/api/quotes", `{"clientName": "João Lima", "clientPhone": "2222", "items": []}`)

	all := decode[[]models.Quote](t, do(t, srv, http.MethodGet, "/api/quotes", ""))
	assert.Len(t, all, 2)

	found := decode[[]models.Quote](t, do(t, srv, http.MethodGet, "/api/quotes?q=maria", ""))
	require.Len(t, found, 1)
	assert.Equal(t, "Maria Souza", found[0].ClientName)

	none := decode[[]models.Quote](t, do(t, srv, http.MethodGet, "/api/quotes?q=zzz", ""))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDeleteQuote(t *testing.T) {
	srv, svc := setupServer(t)
	saved := decode[models.Quote](t, do(t, srv, http.MethodPost, "/api/quotes", validDraft))

	resp := do(t, srv, http.MethodDelete, "/api/quotes/"+saved.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, svc.Quotes())

	resp = do(t, srv, http.MethodDelete, "/api/quotes/"+saved.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetStatus(t *testing.T) {
	srv, _ := setupServer(t)
	saved := decode[models.Quote](t, do(t, srv, http.MethodPost, "/api/quotes", validDraft))

	resp := do(t, srv, http.MethodPut, "/api/quotes/"+saved.ID+"/status", `{"status": "approved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Quote](t, resp)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, saved.Total, updated.Total)

	resp = do(t, srv, http.MethodPut, "/api/quotes/"+saved.ID+"/status", `{"status": "archived"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_status", decode[ErrorResponse](t, resp).Error)

	resp = do(t, srv, http.MethodPut, "/api/quotes/missing/status", `{"status": "approved"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuotePDF(t *testing.T) {
	srv, _ := setupServer(t)
	saved := decode[models.Quote](t, do(t, srv, http.MethodPost, "/api/quotes", validDraft))

	resp := do(t, srv, http.MethodGet, "/api/quotes/"+saved.ID+"/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pdfContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Orcamento_Maria_Souza.pdf")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	resp = do(t, srv, http.MethodPost, "/api/pdf", `{"clientName": "João Silva", "items": [{"quantity": 1, "pricePerUnit": 10}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename*=UTF-8''Orcamento_Jo%C3%A3o_Silva.pdf`)

	resp = do(t, srv, http.MethodGet, "/api/quotes/missing/pdf", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreviewPDF(t *testing.T) {
	srv, svc := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/pdf", `{"clientName": "Ana", "items": [{"id": "x", "quantity": 1, "pricePerUnit": 10, "material": "Vidro"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Orcamento_Ana.pdf")
	assert.Empty(t, svc.Quotes(), "previews are not saved")

	resp = do(t, srv, http.MethodPost, "/api/pdf", `{"clientName": "Ana", "items": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "empty_quote", decode[ErrorResponse](t, resp).Error)

	resp = do(t, srv, http.MethodPost, "/api/pdf", `{"items": [{"id": "x"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHistoryXLSX(t *testing.T) {
	srv, _ := setupServer(t)
	do(t, srv, http.MethodPost, "/api/quotes", validDraft)

	resp := do(t, srv, http.MethodGet, "/api/export.xlsx", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Orcamentos.xlsx")
}

func TestBusinessProfile(t *testing.T) {
	srv, svc := setupServer(t)

	got := decode[models.BusinessProfile](t, do(t, srv, http.MethodGet, "/api/business", ""))
	assert.Empty(t, got.CompanyName)

	resp := do(t, srv, http.MethodPut, "/api/business", `{"companyName": "Serralheria Silva", "phone": "3333-4444"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Serralheria Silva", decode[models.BusinessProfile](t, resp).CompanyName)
	assert.Equal(t, "3333-4444", svc.Business().Phone)
}

func TestSummaryAndClear(t *testing.T) {
	srv, svc := setupServer(t)
	do(t, srv, http.MethodPost, "/api/quotes", validDraft)
	do(t, srv, http.MethodPut, "/api/business", `{"companyName": "Silva"}`)

	summary := decode[calculator.Summary](t, do(t, srv, http.MethodGet, "/api/summary", ""))
	assert.Equal(t, 1, summary.QuoteCount)
	assert.Equal(t, 1, summary.PendingCount)
	assert.Equal(t, 3250.5, summary.TotalQuoted)
	assert.Equal(t, 3000.0, summary.Categories.MaterialsValue)
	assert.Equal(t, 250.5, summary.Categories.LaborValue)

	resp := do(t, srv, http.MethodDelete, "/api/data", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, svc.Quotes())
	assert.Empty(t, svc.Business().CompanyName)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupServer(t)
	do(t, srv, http.MethodPost, "/api/quotes", validDraft)

	resp := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "serralheria_quotes_saved_total")
	assert.Contains(t, buf.String(), "serralheria_quotes_stored")
}

func TestUnknownMethod(t *testing.T) {
	srv, _ := setupServer(t)

	resp := do(t, srv, http.MethodPatch, "/api/quotes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
