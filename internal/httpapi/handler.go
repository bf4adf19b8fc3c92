// Package httpapi exposes the quoting operations as a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/export"
	"github.com/mmynk/serralheria/internal/metrics"
	"github.com/mmynk/serralheria/internal/models"
	"github.com/mmynk/serralheria/internal/service"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler serves the quoting API on top of a QuoteService.
type Handler struct {
	quotes *service.QuoteService
	now    func() time.Time
}

// New creates a Handler. now supplies the date printed on draft previews;
// nil means time.Now.
func New(quotes *service.QuoteService, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	h := &Handler{quotes: quotes, now: now}
	h.observeHistory()
	return h
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/calculate", h.calculate)

	mux.HandleFunc("GET /api/quotes", h.listQuotes)
	mux.HandleFunc("POST /api/quotes", h.saveQuote)
	mux.HandleFunc("GET /api/quotes/{id}", h.getQuote)
	mux.HandleFunc("DELETE /api/quotes/{id}", h.deleteQuote)
	mux.HandleFunc("PUT /api/quotes/{id}/status", h.setStatus)

	mux.HandleFunc("GET /api/quotes/{id}/pdf", h.quotePDF)
	mux.HandleFunc("POST /api/pdf", h.previewPDF)
	mux.HandleFunc("GET /api/export.xlsx", h.historyXLSX)

	mux.HandleFunc("GET /api/business", h.getBusiness)
	mux.HandleFunc("PUT /api/business", h.updateBusiness)

	mux.HandleFunc("GET /api/summary", h.summary)
	mux.HandleFunc("DELETE /api/data", h.clearData)

	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// CalculateResponse carries the live totals of a draft.
type CalculateResponse struct {
	Subtotal   float64   `json:"subtotal"`
	Total      float64   `json:"total"`
	LineTotals []float64 `json:"lineTotals"`
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var d service.Draft
	if !decodeJSON(w, r, &d) {
		return
	}
	lines := calculator.LineTotals(d.Items)
	if lines == nil {
		lines = []float64{}
	}
	writeJSON(w, http.StatusOK, CalculateResponse{
		Subtotal:   d.Subtotal(),
		Total:      d.Total(),
		LineTotals: lines,
	})
}

func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	quotes := h.quotes.Search(r.URL.Query().Get("q"))
	if quotes == nil {
		quotes = []models.Quote{}
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (h *Handler) saveQuote(w http.ResponseWriter, r *http.Request) {
	var d service.Draft
	if !decodeJSON(w, r, &d) {
		return
	}

	q, replaced, err := h.quotes.Upsert(r.Context(), &d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.QuotesSaved.Inc()
	h.observeHistory()

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	writeJSON(w, status, q)
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Quote(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := h.quotes.DeleteQuote(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	metrics.QuotesDeleted.Inc()
	h.observeHistory()
	w.WriteHeader(http.StatusNoContent)
}

// StatusRequest is the body of PUT /api/quotes/{id}/status.
type StatusRequest struct {
	Status models.Status `json:"status"`
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	q, err := h.quotes.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.observeHistory()
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) quotePDF(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotes.Quote(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPDF(w, r, q)
}

func (h *Handler) previewPDF(w http.ResponseWriter, r *http.Request) {
	var d service.Draft
	if !decodeJSON(w, r, &d) {
		return
	}
	q, err := d.Preview(h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPDF(w, r, q)
}

func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request, q models.Quote) {
	doc, err := export.QuotePDF(q, h.quotes.Business())
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.DocumentsExported.WithLabelValues("pdf").Inc()
	writeDocument(w, pdfContentType, export.PDFFilename(q.ClientName), doc)
}

func (h *Handler) historyXLSX(w http.ResponseWriter, r *http.Request) {
	doc, err := export.HistoryXLSX(h.quotes.Search(r.URL.Query().Get("q")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.DocumentsExported.WithLabelValues("xlsx").Inc()
	writeDocument(w, xlsxContentType, export.HistoryFilename, doc)
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quotes.Business())
}

func (h *Handler) updateBusiness(w http.ResponseWriter, r *http.Request) {
	var profile models.BusinessProfile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if err := h.quotes.UpdateBusiness(r.Context(), profile); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.quotes.Business())
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quotes.Summary())
}

func (h *Handler) clearData(w http.ResponseWriter, r *http.Request) {
	if err := h.quotes.ClearAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	h.observeHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) observeHistory() {
	s := h.quotes.Summary()
	metrics.ObserveHistory(s.QuoteCount, s.TotalQuoted)
}
