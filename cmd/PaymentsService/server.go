package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/PaymentsService/internal/payment/interfaces"
)

const requestIDHeader = "X-Request-ID"

type Response struct {
	Message string `json:"message"`
}

// HealthChecker reports the state of a backing dependency, the database in production.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		log.Printf("[%s] Started %s %s", requestID, r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("[%s] Completed %s %d in %v", requestID, r.URL.Path, rec.status, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	respondJSON(w, status, payload)
}

type Server struct {
	router         *http.ServeMux
	paymentHandler *interfaces.PaymentHandler
	receiptHandler *interfaces.ReceiptHandler
	health         HealthChecker
	metrics        http.Handler
}

func NewServer(paymentHandler *interfaces.PaymentHandler, receiptHandler *interfaces.ReceiptHandler, health HealthChecker, metrics http.Handler) *Server {
	return &Server{
		paymentHandler: paymentHandler,
		receiptHandler: receiptHandler,
		health:         health,
		metrics:        metrics,
		router:         http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not ready",
			"database": stats,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"database": stats,
	})
}

func (s *Server) RegisterRoutes() {
	// Payments API
	paymentRoutes := http.NewServeMux()
	paymentRoutes.Handle("POST /api/payments", http.HandlerFunc(s.paymentHandler.CreatePayment))
	paymentRoutes.Handle("GET /api/payments", http.HandlerFunc(s.paymentHandler.FilterPayments))
	paymentRoutes.Handle("GET /api/payments/{paymentID}", http.HandlerFunc(s.paymentHandler.GetPayment))
	paymentRoutes.Handle("PATCH /api/payments/{paymentID}", http.HandlerFunc(s.paymentHandler.UpdatePayment))
	paymentRoutes.Handle("GET /api/payments/{paymentID}/receipt", http.HandlerFunc(s.receiptHandler.DownloadReceipt))

	// Artist views over payments
	artistRoutes := http.NewServeMux()
	artistRoutes.Handle("GET /api/artists/{artistID}/payments", http.HandlerFunc(s.paymentHandler.GetPaymentsByArtist))
	artistRoutes.Handle("GET /api/artists/{artistID}/payments/ordered", http.HandlerFunc(s.paymentHandler.GetPaymentsByArtistOrdered))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/payments", paymentRoutes)
	mainRouter.Handle("/api/payments/", paymentRoutes)
	mainRouter.Handle("/api/artists/", artistRoutes)
	mainRouter.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	mainRouter.Handle("GET /metrics", s.metrics)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.router)
}
