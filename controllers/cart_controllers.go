package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/yeremiapane/geprek-app/cart"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

const (
	cartSessionName = "geprek_cart"
	cartSessionKey  = "cart_id"
)

// CartController: cookie session hanya membawa ID keranjang,
// isi keranjang disimpan di CartStore (Redis atau database)
type CartController struct {
	Store   sessions.Store
	Carts   services.CartStore
	Menus   *services.MenuService
	Orders  *services.OrderService
	Confirm ConfirmationSettings
}

func NewCartController(store sessions.Store, carts services.CartStore, menus *services.MenuService, orders *services.OrderService, confirm ConfirmationSettings) *CartController {
	return &CartController{Store: store, Carts: carts, Menus: menus, Orders: orders, Confirm: confirm}
}

// NewCookieStore membuat store session keranjang dengan opsi cookie standar
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 24,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

type cartView struct {
	Items          []cart.Line `json:"items"`
	TotalPrice     int64       `json:"total_price"`
	TotalFormatted string      `json:"total_formatted"`
	TotalItems     int         `json:"total_items"`
}

func viewOf(cc *cart.Cart) cartView {
	return cartView{
		Items:          cc.Lines(),
		TotalPrice:     cc.TotalPrice(),
		TotalFormatted: utils.FormatRupiah(cc.TotalPrice()),
		TotalItems:     cc.TotalItems(),
	}
}

type cartSession struct {
	session *sessions.Session
	id      string
	cart    *cart.Cart
}

// load mengembalikan false jika sudah merespons error
func (ctl *CartController) load(c *gin.Context) (*cartSession, bool) {
	session, err := ctl.Store.Get(c.Request, cartSessionName)
	if err != nil {
		// cookie rusak atau secret berganti: mulai dari keranjang kosong
		utils.InfoLogger.Debugf("Discarding cart session: %v", err)
	}
	cs := &cartSession{session: session, cart: cart.New()}
	cs.id, _ = session.Values[cartSessionKey].(string)
	if cs.id == "" {
		return cs, true
	}

	lines, err := ctl.Carts.Load(c.Request.Context(), cs.id)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	cs.cart = cart.FromLines(lines)
	return cs, true
}

func (ctl *CartController) persist(c *gin.Context, cs *cartSession) error {
	if cs.id == "" {
		if cs.cart.IsEmpty() {
			return nil
		}
		cs.id = uuid.NewString()
		cs.session.Values[cartSessionKey] = cs.id
	}
	if err := cs.session.Save(c.Request, c.Writer); err != nil {
		return err
	}
	return ctl.Carts.Save(c.Request.Context(), cs.id, cs.cart.Lines())
}

func (ctl *CartController) save(c *gin.Context, cs *cartSession) bool {
	if err := ctl.persist(c, cs); err != nil {
		if services.IsPersistence(err) {
			respondServiceError(c, err)
			return false
		}
		utils.ErrorLogger.Errorf("Failed to save cart session: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("gagal menyimpan keranjang"))
		return false
	}
	return true
}

func (ctl *CartController) GetCart(c *gin.Context) {
	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", viewOf(cs.cart))
}

func (ctl *CartController) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		SpicyLevel int  `json:"spicy_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := ctl.Menus.Get(c.Request.Context(), req.MenuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	if err := cs.cart.AddMenuItem(*item, req.SpicyLevel); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !ctl.save(c, cs) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item ditambahkan ke keranjang", viewOf(cs.cart))
}

// UpdateItem: quantity <= 0 menghapus menu dari keranjang
func (ctl *CartController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "menu_item_id")
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	cs.cart.UpdateQuantity(id, *req.Quantity)
	if !ctl.save(c, cs) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Keranjang diperbarui", viewOf(cs.cart))
}

func (ctl *CartController) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "menu_item_id")
	if !ok {
		return
	}
	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	cs.cart.Remove(id)
	if !ctl.save(c, cs) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item dihapus dari keranjang", viewOf(cs.cart))
}

func (ctl *CartController) ClearCart(c *gin.Context) {
	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	cs.cart.Clear()
	if !ctl.save(c, cs) {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Keranjang dikosongkan", viewOf(cs.cart))
}

// Checkout mengirim isi keranjang session sebagai pesanan online.
// Keranjang hanya dikosongkan jika pesanan tersimpan.
func (ctl *CartController) Checkout(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone" binding:"required"`
		Notes         string `json:"notes"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cs, ok := ctl.load(c)
	if !ok {
		return
	}
	order, err := ctl.Orders.SubmitOnline(c.Request.Context(), cs.cart, services.CustomerInfo{
		Name:          req.CustomerName,
		Phone:         req.CustomerPhone,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// pesanan sudah tersimpan, gagal simpan session tidak membatalkannya
	if err := ctl.persist(c, cs); err != nil {
		utils.ErrorLogger.Errorf("Order #%d placed but cart session not cleared: %v", order.ID, err)
	}

	utils.RespondJSON(c, http.StatusCreated, "Pesanan berhasil dibuat", ctl.Confirm.build(order))
}
