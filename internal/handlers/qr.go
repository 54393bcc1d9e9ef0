package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// joinURL is the landing page with the join form pre-filled
func (ctx *Context) joinURL(roomCode string) string {
	return strings.TrimSuffix(ctx.PublicURL, "/") + "/?code=" + url.QueryEscape(roomCode)
}

// HandleQR serves a PNG QR code of the lobby's join link
func (ctx *Context) HandleQR(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("code")
	if !ctx.LobbyStore.Exists(roomCode) {
		http.Error(w, "Lobby not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(ctx.joinURL(roomCode), qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("HandleQR: encode %s: %v", roomCode, err)
		http.Error(w, "Could not generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
