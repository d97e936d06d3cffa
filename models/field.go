package models

import (
	"image"

	"cardserver/db"
	"cardserver/psd"

	"gorm.io/gorm"
)

const (
	SideFront = "front"
	SideBack  = "back"
)

func ValidSide(side string) bool {
	return side == SideFront || side == SideBack
}

// Field is one operator-configurable text region of a template side.
// OriginalName is the layer name as authored in the design tool and is the
// canonical key for submitted values; DisplayName is only the form label.
type Field struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt    int64  `json:"-"`
	UpdatedAt    int64  `json:"-"`
	Side         string `gorm:"type:varchar(10);index:side_name,priority:1;not null" json:"side"`
	OriginalName string `gorm:"type:varchar(300);index:side_name,priority:2;not null" json:"original_name"`
	DisplayName  string `gorm:"type:varchar(300)" json:"display_name"`
	X1           int    `json:"x1"`
	Y1           int    `json:"y1"`
	X2           int    `json:"x2"`
	Y2           int    `json:"y2"`
	Editable     bool   `json:"editable"`
	SortOrder    int    `json:"sort_order"`
}

func (f *Field) BBox() image.Rectangle {
	return image.Rect(f.X1, f.Y1, f.X2, f.Y2)
}

// FieldsFromRegions projects the text regions of one parsed template side
// into field rows with defaults: display name equal to the layer name,
// editable, ordered as they appear in the document.
func FieldsFromRegions(side string, regions []psd.Region) []Field {
	fields := []Field{}
	for _, r := range regions {
		if r.Kind != psd.KindText {
			continue
		}
		fields = append(fields, Field{
			Side:         side,
			OriginalName: r.Name,
			DisplayName:  r.Name,
			X1:           r.BBox.Min.X,
			Y1:           r.BBox.Min.Y,
			X2:           r.BBox.Max.X,
			Y2:           r.BBox.Max.Y,
			Editable:     true,
			SortOrder:    len(fields),
		})
	}
	return fields
}

// ReplaceFields swaps the whole field set of one side for the set derived
// from a fresh parse. Delete and insert run in a single transaction, so a
// failed replace leaves the previous schema intact. Operator customizations
// (renames, editable flags) are reset on purpose.
func ReplaceFields(side string, regions []psd.Region) (int, error) {
	fields := FieldsFromRegions(side, regions)
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("side = ?", side).Delete(&Field{}).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Create(&fields).Error
	})
	if err != nil {
		return 0, err
	}
	return len(fields), nil
}

func FieldsForSide(side string) ([]Field, error) {
	fields := []Field{}
	err := db.Instance.Where("side = ?", side).Order("sort_order ASC").Find(&fields).Error
	return fields, err
}

// UpdateFieldConfig applies an operator edit to a single field. Only the
// display name and the editable flag can change; position and original name
// always come from the template. Unknown IDs report ErrRecordNotFound
// instead of silently updating nothing.
func UpdateFieldConfig(id uint64, displayName string, editable bool) error {
	result := db.Instance.Model(&Field{ID: id}).
		Updates(map[string]interface{}{"display_name": displayName, "editable": editable})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
