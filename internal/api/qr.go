package api

import (
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/avasiliev/personal-planner-backend/internal/config"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultQRSize = 256

func (a *Api) qrHandler(w http.ResponseWriter, r *http.Request) {
	data := r.URL.Query().Get("data")
	if data == "" {
		a.badRequestResponse(w, r, errors.New("data parameter must be provided"))
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > config.QRMaxSize() {
			a.badRequestResponse(w, r, errors.New("invalid size parameter"))
			return
		}
		size = parsed
	}

	code, err := qr.Encode(data, qr.M, qr.Auto)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, scaled); err != nil {
		a.logError(r, err)
	}
}
