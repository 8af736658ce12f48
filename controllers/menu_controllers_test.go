package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/controllers"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/services"
	"gorm.io/gorm"
)

func setupMenuRouter(db *gorm.DB, dir string) *gin.Engine {
	router := gin.New()
	menuCtrl := controllers.NewMenuController(
		services.NewMenuService(db, nil, services.NopPublisher{}),
		services.NewLocalStorage(dir, "http://localhost:8080"),
	)
	router.GET("/menus", menuCtrl.GetAvailableMenus)
	router.GET("/menus/:id", menuCtrl.GetAvailableMenu)
	router.GET("/admin/menus", menuCtrl.GetAllMenus)
	router.POST("/admin/menus", menuCtrl.CreateMenu)
	router.PUT("/admin/menus/:id", menuCtrl.UpdateMenu)
	router.PATCH("/admin/menus/:id/availability", menuCtrl.SetAvailability)
	router.DELETE("/admin/menus/:id", menuCtrl.DeleteMenu)
	router.POST("/admin/uploads", menuCtrl.UploadImage)
	return router
}

func TestCustomerCatalogHidesUnavailableMenus(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db, "Ayam Geprek Original", 15000, models.CategoryMain, true)
	hidden := seedMenu(t, db, "Es Jeruk", 5000, models.CategoryDrink, false)
	router := setupMenuRouter(db, t.TempDir())

	w := doJSON(router, http.MethodGet, "/menus", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Ayam Geprek Original", data[0].(map[string]interface{})["name"])

	w = doJSON(router, http.MethodGet, "/menus/"+strconv.Itoa(int(hidden.ID)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/admin/menus", nil)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 2)
}

func TestCreateUpdateDeleteMenu(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(db, t.TempDir())

	w := doJSON(router, http.MethodPost, "/admin/menus", map[string]interface{}{
		"name":         "Tahu Crispy",
		"price":        3000,
		"category":     "side",
		"is_available": false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, created["is_available"])
	id := strconv.Itoa(int(created["id"].(float64)))

	w = doJSON(router, http.MethodPut, "/admin/menus/"+id, map[string]interface{}{
		"name":     "Tahu Crispy Jumbo",
		"price":    4000,
		"category": "side",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Tahu Crispy Jumbo", updated["name"])
	assert.Equal(t, float64(4000), updated["price"])

	w = doJSON(router, http.MethodPatch, "/admin/menus/"+id+"/availability", map[string]interface{}{"is_available": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["data"].(map[string]interface{})["is_available"])

	w = doJSON(router, http.MethodDelete, "/admin/menus/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/admin/menus/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(db, t.TempDir())

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"price": 1000, "category": "main"}},
		{"unknown category", map[string]interface{}{"name": "Kopi", "price": 1000, "category": "dessert"}},
		{"negative price", map[string]interface{}{"name": "Kopi", "price": -1, "category": "drink"}},
		{"spicy out of range", map[string]interface{}{"name": "Ayam", "price": 1000, "category": "main", "spicy_level": 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/admin/menus", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, decodeBody(t, w)["status"])
		})
	}
}

func TestUploadImage(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(db, t.TempDir())

	upload := func(filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		part.Write([]byte("\x89PNG fake image"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := upload("ayam.png")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url := decodeBody(t, w)["data"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "http://localhost:8080/uploads/")
	assert.Contains(t, url, ".png")

	w = upload("script.exe")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/admin/uploads", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
