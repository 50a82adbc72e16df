package api

import (
	"net/http"
	"time"

	_ "github.com/AlexZinkM/wallet-connect/docs"
	"github.com/AlexZinkM/wallet-connect/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(wallet *handler.WalletHandler, keystore *handler.KeystoreHandler, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/list", wallet.List)
	mux.HandleFunc("/wallet/session", wallet.Session)
	mux.HandleFunc("/wallet/connect", wallet.Connect)
	mux.HandleFunc("/wallet/derive", wallet.Derive)
	mux.HandleFunc("/wallet/reconnect", wallet.Reconnect)
	mux.HandleFunc("/wallet/disconnect", wallet.Disconnect)
	mux.HandleFunc("/wallet/signature-input", wallet.SignatureInput)
	mux.HandleFunc("/wallet/balance", wallet.Balance)

	// Keystore endpoints
	if keystore != nil {
		mux.HandleFunc("/keystore/generate", keystore.Generate)
		mux.HandleFunc("/keystore/list", keystore.List)
	}

	return logRequests(mux, log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler, log *zap.Logger) http.Handler {
	if log == nil {
		return next
	}
	log = log.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
