package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"rentabarrio/src/config"
	"rentabarrio/src/lib"
	"rentabarrio/src/types"
	"rentabarrio/src/utils"

	"github.com/gin-gonic/gin"
)

const returnPageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0;url=%s">
<title>Volviendo a la aplicación</title>
</head>
<body>
<p>Volviendo a la aplicación&hellip; <a href="%s">Tocar aquí si no redirige</a></p>
<script>window.location.replace(%q);</script>
</body>
</html>`

const missingTokenPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Pago</title></head>
<body><p>No se recibió el comprobante del pago. Puede cerrar esta ventana y revisar el estado de su reserva desde la aplicación.</p></body>
</html>`

func paymentHandlers(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	webpay := apiv1.Group("/payments/webpay")
	webpay.
		GET("/return", func(ctx *gin.Context) {
			token := ctx.Query("token_ws")
			if token == "" {
				log.Println("[webpay] return callback arrived without token_ws")
				ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(missingTokenPage))
				return
			}
			// The payer's browser is mid-redirect: confirm on a bounded
			// deadline and bounce back to the app no matter the outcome.
			cctx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
			defer cancel()
			if _, err := utils.ConfirmOrderPayment(cctx, token); err != nil {
				log.Printf("[webpay] best-effort confirmation failed for token [%s]: %s\n", token, err.Error())
			}
			target := fmt.Sprintf("%s://payments/return?token_ws=%s", config.AppScheme(), url.QueryEscape(token))
			page := fmt.Sprintf(returnPageTemplate, target, target, target)
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		}).
		POST("/confirm", func(ctx *gin.Context) {
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "token_ws is required"})
				return
			}
			confirmation, err := utils.ConfirmOrderPayment(ctx.Request.Context(), body.TokenWS)
			if err != nil {
				var gwErr *lib.GatewayError
				if errors.As(err, &gwErr) {
					log.Printf("[webpay] confirmation rejected for token [%s]: %s\n", body.TokenWS, gwErr.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "payment could not be confirmed", "detalle": gwErr.Raw})
					return
				}
				log.Printf("[webpay] confirmation failed for token [%s]: %s\n", body.TokenWS, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "payment could not be confirmed", "detalle": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, confirmation)
		})
	return apiv1
}
