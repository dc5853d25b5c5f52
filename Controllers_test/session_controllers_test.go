package Controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/controllers"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/services"
	"github.com/yeremiapane/table-order-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// fakeCartStore in-memory, pengganti Redis untuk test controller
type fakeCartStore struct {
	data map[string]map[string]string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{data: make(map[string]map[string]string)}
}

func (f *fakeCartStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields, ok := f.data[key]
	if !ok {
		return map[string]string{}, nil
	}
	return fields, nil
}

func (f *fakeCartStore) HSet(_ context.Context, key string, values map[string]string) error {
	if f.data[key] == nil {
		f.data[key] = make(map[string]string)
	}
	for k, v := range values {
		f.data[key][k] = v
	}
	return nil
}

func (f *fakeCartStore) HExists(_ context.Context, key, field string) (bool, error) {
	fields, ok := f.data[key]
	if !ok {
		return false, nil
	}
	_, exists := fields[field]
	return exists, nil
}

func (f *fakeCartStore) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func setupSessionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Store{}, &models.Table{}, &models.TableSession{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTableWithQR(t *testing.T, db *gorm.DB, identifier string) (*models.Table, string) {
	store := models.Store{Name: "Kedai Uji", Slug: "kedai-uji-" + identifier, IsActive: true}
	assert.NoError(t, db.Create(&store).Error)

	table := models.Table{StoreID: store.ID, Identifier: identifier, Capacity: 4, IsActive: true}
	assert.NoError(t, db.Create(&table).Error)

	token, err := utils.EncryptJSON(models.QRPayload{
		TableID:    table.ID,
		Identifier: table.Identifier,
		StoreID:    table.StoreID,
	})
	assert.NoError(t, err)
	table.QRCode = token
	assert.NoError(t, db.Save(&table).Error)

	return &table, token
}

func setupSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	sessionSvc := services.NewSessionService(db)
	cartSvc := services.NewCartService(sessionSvc, newFakeCartStore())
	sessionCtrl := controllers.NewSessionController(sessionSvc, cartSvc, "http://localhost:3000")

	r.GET("/public/session/id/:id", sessionCtrl.GetSessionByQR)
	r.GET("/public/session/validate/:id", sessionCtrl.ValidateSession)
	r.GET("/public/session/cart", sessionCtrl.GetCart)
	r.POST("/public/session/cart", sessionCtrl.CreateCart)
	return r
}

func doRequest(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateSessionInvalidQR(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	w := doRequest(r, "GET", "/public/session/validate/token-ngawur")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid QR code", response["message"])
	assert.Nil(t, response["data"])
}

func TestValidateSessionNoActiveSession(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	_, token := seedTableWithQR(t, db, "V1")

	w := doRequest(r, "GET", "/public/session/validate/"+url.PathEscape(token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No active session found", response["message"])
}

func TestValidateSessionWithoutCode(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	_, token := seedTableWithQR(t, db, "V2")
	svc := services.NewSessionService(db)
	_, _, err := svc.GetOrCreateSession(token)
	assert.NoError(t, err)

	// Tanpa code: sesi ada tapi code masih diperlukan
	w := doRequest(r, "GET", "/public/session/validate/"+url.PathEscape(token))
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, true, data["requiresCode"])
	assert.Equal(t, "V2", data["tableId"])

	// Literal "null" diperlakukan sama seperti tanpa code
	w = doRequest(r, "GET", "/public/session/validate/"+url.PathEscape(token)+"?code=null")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Equal(t, true, data["requiresCode"])
}

func TestValidateSessionWithCode(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	_, token := seedTableWithQR(t, db, "V3")
	svc := services.NewSessionService(db)
	session, _, err := svc.GetOrCreateSession(token)
	assert.NoError(t, err)

	// Code benar
	w := doRequest(r, "GET", "/public/session/validate/"+url.PathEscape(token)+"?code="+session.TmpCode)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, false, data["requiresCode"])
	assert.Equal(t, "V3", data["tableId"])

	// Code salah -> 400, tanpa field valid
	w = doRequest(r, "GET", "/public/session/validate/"+url.PathEscape(token)+"?code=000000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	response = map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid session code", response["message"])
	assert.Nil(t, response["data"])
}

func TestGetSessionByQRCreatesAndRedirects(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	table, token := seedTableWithQR(t, db, "R1")

	w := doRequest(r, "GET", "/public/session/id/"+url.PathEscape(token))
	assert.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Contains(t, location.Path, "/store/")
	assert.Equal(t, token, location.Query().Get("qrcode"))

	// Pembuat sesi otomatis membawa tmp code
	tmpCode := location.Query().Get("tmpcode")
	assert.Len(t, tmpCode, 6)

	var session models.TableSession
	assert.NoError(t, db.Where("table_id = ?", table.ID).First(&session).Error)
	assert.Equal(t, tmpCode, session.TmpCode)
	assert.Equal(t, models.SessionStatusActive, session.Status)
}

func TestGetSessionByQRReusesActiveSession(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	_, token := seedTableWithQR(t, db, "R2")

	// Scan pertama membuat sesi
	w := doRequest(r, "GET", "/public/session/id/"+url.PathEscape(token))
	assert.Equal(t, http.StatusFound, w.Code)

	// Scan kedua: redirect tanpa tmpcode, peserta harus memasukkan code
	w = doRequest(r, "GET", "/public/session/id/"+url.PathEscape(token))
	assert.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, token, location.Query().Get("qrcode"))
	assert.Empty(t, location.Query().Get("tmpcode"))

	var count int64
	db.Model(&models.TableSession{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetSessionByQRInvalidToken(t *testing.T) {
	db := setupSessionTestDB(t)
	r := setupSessionRouter(db)

	w := doRequest(r, "GET", "/public/session/id/bukan-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
