package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/services"
	"github.com/yeremiapane/table-order-app/utils"
)

type SessionController struct {
	Sessions      *services.SessionService
	Carts         *services.CartService
	StorefrontURL string
}

func NewSessionController(sessions *services.SessionService, carts *services.CartService, storefrontURL string) *SessionController {
	return &SessionController{
		Sessions:      sessions,
		Carts:         carts,
		StorefrontURL: storefrontURL,
	}
}

// GetSessionByQR -> GET /public/session/id/:id (id = token QR).
// Jika meja sudah punya sesi aktif, redirect hanya membawa token QR:
// peserta berikutnya tetap harus memasukkan tmp code sendiri. Jika belum,
// sesi dibuat dan pembuatnya otomatis masuk dengan tmp code di URL.
func (sc *SessionController) GetSessionByQR(c *gin.Context) {
	token := c.Param("id")

	session, created, err := sc.Sessions.GetOrCreateSession(token)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	query := url.Values{}
	query.Set("qrcode", token)
	if created {
		query.Set("tmpcode", session.TmpCode)
	}

	target := fmt.Sprintf("%s/store/%d?%s", sc.StorefrontURL, session.Table.StoreID, query.Encode())
	c.Redirect(http.StatusFound, target)
}

// ValidateSession -> GET /public/session/validate/:id?code=
// 1. Token QR tidak cocok dengan meja manapun -> 400
// 2. Tidak ada sesi aktif -> 404
// 3. Tanpa code (atau literal "null") -> valid, tapi code masih diperlukan
// 4. Dengan code -> dicocokkan dengan sesi aktif
func (sc *SessionController) ValidateSession(c *gin.Context) {
	token := c.Param("id")
	code := c.Query("code")

	if !sc.Sessions.ValidateQRCode(token) {
		utils.RespondWithError(c, utils.NewValidationError("Invalid QR code"))
		return
	}

	session, ok := sc.Sessions.FindActiveSession(token)
	if !ok {
		utils.RespondWithError(c, utils.NewNotFoundError("No active session found"))
		return
	}

	if code == "" || code == "null" {
		utils.RespondJSON(c, http.StatusOK, "Session requires a code", gin.H{
			"valid":        true,
			"requiresCode": true,
			"tableId":      session.Table.Identifier,
		})
		return
	}

	if !sc.Sessions.ValidateSessionCode(session.ID, code) {
		utils.RespondWithError(c, utils.NewValidationError("Invalid session code"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session is valid", gin.H{
		"valid":        true,
		"requiresCode": false,
		"tableId":      session.Table.Identifier,
	})
}

// GetCart -> GET /public/session/cart?qrcode=&code=
func (sc *SessionController) GetCart(c *gin.Context) {
	qrToken := c.Query("qrcode")
	code := c.Query("code")
	if qrToken == "" || code == "" {
		utils.RespondWithError(c, utils.NewValidationError("qrcode and code are required"))
		return
	}

	cart, err := sc.Carts.GetCart(c.Request.Context(), qrToken, code)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart detail", cart)
}

// CreateCart -> POST /public/session/cart
func (sc *SessionController) CreateCart(c *gin.Context) {
	var req struct {
		QRCode  string      `json:"qr_code" binding:"required"`
		TmpCode string      `json:"tmp_code" binding:"required"`
		Cart    models.Cart `json:"cart" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Carts.CreateCart(c.Request.Context(), req.QRCode, req.TmpCode, &req.Cart); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Cart created", req.Cart)
}

// UpdateSession -> PATCH /admin/sessions/:session_id
// Dipakai staff untuk menutup atau membatalkan sesi.
func (sc *SessionController) UpdateSession(c *gin.Context) {
	idStr := c.Param("session_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewValidationError("Invalid session id"))
		return
	}

	var req struct {
		Status        *string `json:"status"`
		CustomerCount *int    `json:"customer_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.UpdateTableSession(uint(id), services.SessionUpdate{
		Status:        req.Status,
		CustomerCount: req.CustomerCount,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session updated", session)
}
