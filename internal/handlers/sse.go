package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// StreamGame streams live game state to a connected client. Every engine
// event for the game triggers a fresh snapshot patch.
func (h *Handler) StreamGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	if _, err := h.ctrl.GetGame(gameID); err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	log.Printf("SSE connection established for game %s", gameID)

	sse := datastar.NewSSE(w, r)

	events := h.eventBus.Subscribe(gameID)
	defer func() {
		h.eventBus.Unsubscribe(gameID, events)
		log.Printf("SSE connection closed for game %s", gameID)
	}()

	// Initial sync so a reconnecting client doesn't wait for the next
	// engine event.
	if err := h.patchGameSignals(sse, gameID); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(map[string]any{
				"lastEvent": event,
			}); err != nil {
				return
			}
			if err := h.patchGameSignals(sse, gameID); err != nil {
				return
			}
		}
	}
}

// errGameGone terminates a stream whose game was torn down.
var errGameGone = errors.New("game torn down")

func (h *Handler) patchGameSignals(sse *datastar.ServerSentEventGenerator, gameID string) error {
	g, err := h.ctrl.GetGame(gameID)
	if err != nil {
		// The host tore the game down; tell the client and stop.
		if err := sse.MarshalAndPatchSignals(map[string]any{"gameGone": true}); err != nil {
			return err
		}
		return errGameGone
	}

	return sse.MarshalAndPatchSignals(map[string]any{
		"game": g.Snapshot(),
	})
}

// GameQR serves a QR code PNG for the game's join link.
func (h *Handler) GameQR(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	if _, err := h.ctrl.GetGame(gameID); err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	url := getBaseURL(r) + "/api/games/" + gameID + "/join"
	png, err := generateQRCode(url)
	if err != nil {
		log.Printf("failed to generate QR code for game %s: %v", gameID, err)
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// generateQRCode renders a QR code for the given URL as PNG bytes.
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// The standard writer only targets files, so round-trip through a
	// temp file.
	tmpFile := fmt.Sprintf("%s/qr_%d.png", os.TempDir(), time.Now().UnixNano())
	wr, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}

	if err := qrc.Save(wr); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	os.Remove(tmpFile)

	return data, nil
}

// getBaseURL constructs the base URL from the request.
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}
