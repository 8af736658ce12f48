package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

const maxImageSize = 5 << 20

type MenuController struct {
	Menus   *services.MenuService
	Storage services.FileStorage
}

func NewMenuController(menus *services.MenuService, storage services.FileStorage) *MenuController {
	return &MenuController{Menus: menus, Storage: storage}
}

// GetAvailableMenus -> katalog pelanggan
func (mc *MenuController) GetAvailableMenus(c *gin.Context) {
	items, err := mc.Menus.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetAvailableMenu: menu yang disembunyikan dianggap tidak ada
func (mc *MenuController) GetAvailableMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := mc.Menus.Get(c.Request.Context(), id)
	if err == nil && !item.IsAvailable {
		err = services.ErrNotFound
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", item)
}

// GetAllMenus -> semua menu termasuk yang tidak tersedia
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	items, err := mc.Menus.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req services.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := mc.Menus.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", item)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := mc.Menus.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}

func (mc *MenuController) SetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := mc.Menus.SetAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", item)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := mc.Menus.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

// UploadImage menerima field multipart "image" dan mengembalikan URL publik
func (mc *MenuController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file gambar wajib diisi"))
		return
	}
	if file.Size > maxImageSize {
		utils.RespondError(c, http.StatusBadRequest, errors.New("ukuran gambar maksimal 5MB"))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error processing form"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageSize+1))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error reading image"))
		return
	}

	url, err := mc.Storage.Upload(c.Request.Context(), file.Filename, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Image uploaded", gin.H{"url": url})
}
