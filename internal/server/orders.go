package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/providers/pdf"
	"go.uber.org/zap"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Place(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "Order placed successfully",
	})
}

func (s *Server) GetOrder(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrderReceipt(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := s.orderSvc.Get(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	names := s.receiptProductNames(ctx, resp.Items)

	doc, err := s.receipts.GenerateReceipt(ctx, pdf.NewReceiptData(storeName, *resp.Order, resp.Items, names))
	if err != nil {
		s.log.Error("render receipt failed", zap.Int64("order_id", resp.Order.ID), zap.Error(err))
		AbortWithError(c, err)
		return
	}

	filename := "receipt-" + strconv.FormatInt(resp.Order.ID, 10) + ".pdf"
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// receiptProductNames resolves item names by product id only. Deleted
// products are left out and print labelled by id.
func (s *Server) receiptProductNames(ctx context.Context, items []orderdomain.OrderItem) map[int64]string {
	names := make(map[int64]string, len(items))
	if s.storage == nil {
		return names
	}
	for _, item := range items {
		if _, seen := names[item.ProductID]; seen {
			continue
		}
		product, err := s.storage.GetProductByID(ctx, item.ProductID)
		if err != nil || product == nil {
			continue
		}
		names[item.ProductID] = product.Name
	}
	return names
}
