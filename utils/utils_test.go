package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCacheRouterHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name      string
		cacheTime int
		want      string
	}{
		{name: "no cache default", cacheTime: CacheNoCache, want: "no-cache"},
		{name: "max age when configured", cacheTime: 3600, want: "private, max-age=3600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			_, router := gin.CreateTestContext(rec)
			router.Use((&CacheRouter{CacheTime: tt.cacheTime}).Handler())
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			if got := rec.Header().Get("cache-control"); got != tt.want {
				t.Errorf("cache-control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateThumb(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          uint
		wantX, wantY  uint16
	}{
		{name: "landscape downscaled", width: 1280, height: 960, size: 320, wantX: 320, wantY: 240},
		{name: "portrait downscaled", width: 300, height: 400, size: 200, wantX: 150, wantY: 200},
		{name: "small image untouched", width: 100, height: 80, size: 320, wantX: 100, wantY: 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.width, tt.height))
			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
				}
			}
			var in, out bytes.Buffer
			if err := png.Encode(&in, src); err != nil {
				t.Fatalf("png encode: %v", err)
			}
			result, err := CreateThumb(tt.size, &in, &out)
			if err != nil {
				t.Fatalf("CreateThumb: %v", err)
			}
			if result.NewX != tt.wantX || result.NewY != tt.wantY {
				t.Errorf("thumb size = %dx%d, want %dx%d", result.NewX, result.NewY, tt.wantX, tt.wantY)
			}
			if result.OldX != uint16(tt.width) || result.OldY != uint16(tt.height) {
				t.Errorf("original size = %dx%d, want %dx%d", result.OldX, result.OldY, tt.width, tt.height)
			}
			if int64(out.Len()) != result.ThumbSize || result.ThumbSize == 0 {
				t.Errorf("ThumbSize = %d, wrote %d bytes", result.ThumbSize, out.Len())
			}
		})
	}
}
