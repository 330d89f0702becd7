package imageutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageGetAlpha(t *testing.T) {
	img := NewRGBAImage(2, 2)
	img.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0})
	img.SetRGB(1, 1, RGB{R: 1, G: 2, B: 3})

	if a := img.GetAlpha(0, 0); a != 0 {
		t.Errorf("Expected alpha 0, got %d", a)
	}
	if a := img.GetAlpha(1, 1); a != 255 {
		t.Errorf("Expected alpha 255, got %d", a)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	src.SetNRGBA(2, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	img := RGBAImageFromImage(src)
	if img.Width() != 4 || img.Height() != 4 {
		t.Errorf("Expected 4x4, got %dx%d", img.Width(), img.Height())
	}
	// Bounds must be normalized to the origin
	if got := img.GetRGB(0, 0); got != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("Expected RGB{10 20 30}, got %v", got)
	}

	// Passing an RGBAImage back through is a no-op
	if again := RGBAImageFromImage(img); again != img {
		t.Error("RGBAImageFromImage should return RGBAImage inputs unchanged")
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized := Resize(img, 50, 50, InterpolationNearest)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	// Upscale
	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeSolidStaysSolid(t *testing.T) {
	c := RGB{R: 40, G: 90, B: 200}
	img := CreateSolidImage(8, 8, c)

	for _, interp := range []Interpolation{
		InterpolationNearest, InterpolationLinear, InterpolationArea,
	} {
		resized := Resize(img, 4, 4, interp)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if got := resized.GetRGB(x, y); got != c {
					t.Errorf("interp %d: expected %v at (%d,%d), got %v",
						interp, c, x, y, got)
				}
			}
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		name string
		want Interpolation
		ok   bool
	}{
		{"nearest", InterpolationNearest, true},
		{"linear", InterpolationLinear, true},
		{"area", InterpolationArea, true},
		{"cubic", InterpolationNearest, false},
		{"", InterpolationNearest, false},
	}
	for _, tc := range tests {
		got, ok := ParseInterpolation(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseInterpolation(%q) = (%d, %v), want (%d, %v)",
				tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()

	img := CreateColorBarsImage(64, 64)

	pngPath := filepath.Join(tmpDir, "test.png")
	err := SaveImage(img.RGBA, pngPath)
	if err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	mse := CalculateMSE(img, loaded)
	if mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadImageGarbage(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadImage(path)
	if err == nil {
		t.Fatal("Expected decode error for garbage data")
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := NewRGBAImage(10, 10)
	img2 := NewRGBAImage(10, 10)

	// Same images should have MSE of 0
	mse := CalculateMSE(img1, img2)
	if mse != 0 {
		t.Errorf("Identical images should have MSE=0, got %f", mse)
	}

	// Different images
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img1.SetRGB(x, y, RGB{R: 0, G: 0, B: 0})
			img2.SetRGB(x, y, RGB{R: 10, G: 10, B: 10})
		}
	}
	mse = CalculateMSE(img1, img2)
	expected := 100.0 // 10^2 = 100
	if mse != expected {
		t.Errorf("Expected MSE=%f, got %f", expected, mse)
	}
}
