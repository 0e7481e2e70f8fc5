package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tally/internal/export"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	txs, err := s.svc.ListTransactions(r.Context(), key, r.URL.Query().Get("month"))
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, txs); err != nil {
		slog.Error("csv export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	if err := s.svc.RecordExport(r.Context(), key, "CSV"); err != nil {
		slog.Warn("failed to record export", "error", err)
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	txs, err := s.svc.ListTransactions(r.Context(), key, r.URL.Query().Get("month"))
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, txs); err != nil {
		slog.Error("pdf export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	if err := s.svc.RecordExport(r.Context(), key, "PDF"); err != nil {
		slog.Warn("failed to record export", "error", err)
	}

	filename := fmt.Sprintf("transactions_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
