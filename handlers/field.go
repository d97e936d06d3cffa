package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardserver/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func FieldList(c *gin.Context) {
	side := c.Query("side")
	if side != "" {
		if !models.ValidSide(side) {
			c.JSON(http.StatusBadRequest, Response{"'side' must be 'front' or 'back'"})
			return
		}
		fields, err := models.FieldsForSide(side)
		if err != nil {
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
		c.JSON(http.StatusOK, fields)
		return
	}
	front, err := models.FieldsForSide(models.SideFront)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	back, err := models.FieldsForSide(models.SideBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"front": front, "back": back})
}

type fieldUpdate struct {
	ID          uint64 `json:"id" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Editable    bool   `json:"editable"`
}

type fieldSaveRequest struct {
	Fields []fieldUpdate `json:"fields" binding:"required"`
}

// FieldSave applies operator edits to the schema: display names (form
// labels) and editable flags. Positions and original names always come from
// the template and cannot be edited here.
func FieldSave(c *gin.Context) {
	var req fieldSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	for _, f := range req.Fields {
		if err := models.UpdateFieldConfig(f.ID, f.DisplayName, f.Editable); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, Response{"no such field: " + strconv.FormatUint(f.ID, 10)})
				return
			}
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
	}
	c.JSON(http.StatusOK, OKResponse)
}
