package models

import (
	"errors"
	"image"

	"cardserver/db"

	"gorm.io/gorm"
)

// SystemConfig is the single template configuration of the service: where
// the two template sides live and where the holder photo goes on the front.
// It is loaded explicitly at the start of an operation and saved explicitly,
// never kept as ambient state.
type SystemConfig struct {
	ID                uint64 `gorm:"primaryKey"`
	UpdatedAt         int64
	FrontTemplatePath string `gorm:"type:varchar(500)"`
	BackTemplatePath  string `gorm:"type:varchar(500)"`
	PhotoX1           int
	PhotoY1           int
	PhotoX2           int
	PhotoY2           int
	PhotoRegionSet    bool
}

// LoadSystemConfig reads the configuration row, creating an empty one on
// first use.
func LoadSystemConfig() (*SystemConfig, error) {
	cfg := &SystemConfig{}
	err := db.Instance.First(cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Instance.Create(cfg).Error
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SystemConfig) Save() error {
	return db.Instance.Save(c).Error
}

// Ready reports whether both sides have been configured - compositing is
// refused until then.
func (c *SystemConfig) Ready() bool {
	return c.FrontTemplatePath != "" && c.BackTemplatePath != ""
}

func (c *SystemConfig) TemplatePath(side string) string {
	if side == SideFront {
		return c.FrontTemplatePath
	}
	return c.BackTemplatePath
}

func (c *SystemConfig) SetTemplatePath(side, path string) {
	if side == SideFront {
		c.FrontTemplatePath = path
	} else {
		c.BackTemplatePath = path
	}
}

// PhotoRegion returns the configured photo rectangle in base-image pixel
// space, or nil when none has been selected yet.
func (c *SystemConfig) PhotoRegion() *image.Rectangle {
	if !c.PhotoRegionSet {
		return nil
	}
	r := image.Rect(c.PhotoX1, c.PhotoY1, c.PhotoX2, c.PhotoY2)
	return &r
}

// SetPhotoRegion overwrites the system-wide photo region. There is at most
// one at any time.
func (c *SystemConfig) SetPhotoRegion(r image.Rectangle) {
	c.PhotoX1 = r.Min.X
	c.PhotoY1 = r.Min.Y
	c.PhotoX2 = r.Max.X
	c.PhotoY2 = r.Max.Y
	c.PhotoRegionSet = true
}
