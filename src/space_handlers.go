package main

import (
	"net/http"

	"rentabarrio/src/db"
	"rentabarrio/src/models"
	"rentabarrio/src/types"

	"github.com/gin-gonic/gin"
)

func spaceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/spaces", func(ctx *gin.Context) {
			db := db.GetDb()
			var spaces []models.Space
			if err := db.
				Model(&models.Space{}).
				Where(&models.Space{Status: types.SPACE_OPEN}).
				Order("name asc").
				Find(&spaces).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": spaces, "count": len(spaces)})
		}).
		GET("/spaces/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var space models.Space
			if err := db.
				Model(&models.Space{}).
				Where(&models.Space{ID: params.ID}).
				First(&space).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": space})
		})
	return g
}
