package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

// ConfirmationSettings mengatur payload konfirmasi setelah pesanan dibuat
type ConfirmationSettings struct {
	PublicBaseURL string
	AutoDismiss   time.Duration
}

type orderConfirmation struct {
	Order              *models.Order `json:"order"`
	Total              int64         `json:"total"`
	TotalFormatted     string        `json:"total_formatted"`
	AutoDismissSeconds int           `json:"auto_dismiss_seconds"`
	QRCodeURL          string        `json:"qrcode_url"`
}

func (s ConfirmationSettings) build(order *models.Order) orderConfirmation {
	return orderConfirmation{
		Order:              order,
		Total:              order.TotalAmount,
		TotalFormatted:     utils.FormatRupiah(order.TotalAmount),
		AutoDismissSeconds: int(s.AutoDismiss / time.Second),
		QRCodeURL:          fmt.Sprintf("%s/orders/%d/qrcode", s.PublicBaseURL, order.ID),
	}
}

type orderRequest struct {
	CustomerName  string                 `json:"customer_name" binding:"required"`
	CustomerPhone string                 `json:"customer_phone" binding:"required"`
	Notes         string                 `json:"notes"`
	PaymentMethod string                 `json:"payment_method"`
	Items         []services.LineRequest `json:"items" binding:"required,dive"`
}

func (r orderRequest) customer() services.CustomerInfo {
	return services.CustomerInfo{
		Name:          r.CustomerName,
		Phone:         r.CustomerPhone,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
	}
}

type OrderController struct {
	Orders  *services.OrderService
	Confirm ConfirmationSettings
}

func NewOrderController(orders *services.OrderService, confirm ConfirmationSettings) *OrderController {
	return &OrderController{Orders: orders, Confirm: confirm}
}

// CreateOnlineOrder -> pesanan pelanggan dengan item dikirim langsung
func (oc *OrderController) CreateOnlineOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	cart, err := oc.Orders.BuildCart(ctx, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := oc.Orders.SubmitOnline(ctx, cart, req.customer())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Pesanan berhasil dibuat", oc.Confirm.build(order))
}

// CreateOfflineOrder -> input kasir, langsung berstatus completed
func (oc *OrderController) CreateOfflineOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	cart, err := oc.Orders.BuildCart(ctx, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := oc.Orders.SubmitOffline(ctx, cart, req.customer(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Pesanan offline berhasil ditambahkan", order)
}

// GetOrderQRCode -> PNG QR berisi URL pelacakan pesanan
func (oc *OrderController) GetOrderQRCode(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	if _, err := oc.Orders.Get(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	png, err := services.OrderQRCode(oc.Confirm.PublicBaseURL, id)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to render QR for order #%d: %v", id, err)
		respondServiceError(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, int64(len(png)), "image/png", bytes.NewReader(png), nil)
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus: status apa pun ke status valid apa pun
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}
	if err := oc.Orders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}
