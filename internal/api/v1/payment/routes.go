package payment

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.POST("/payments", h.CreatePayment)
	r.GET("/payments/:paymentId", h.GetPayment)
}
