//go:build windows

package img2term

import (
	"fmt"
	"io"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wbrown/img2term/imageutil"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetConsoleScreenBufferInfoEx = kernel32.NewProc("GetConsoleScreenBufferInfoEx")
	procFillConsoleOutputAttribute   = kernel32.NewProc("FillConsoleOutputAttribute")
)

// consoleScreenBufferInfoEx mirrors CONSOLE_SCREEN_BUFFER_INFOEX. The
// interesting part is ColorTable, the 16 RGB values the console is
// actually displaying for the legacy attribute colors.
type consoleScreenBufferInfoEx struct {
	cbSize               uint32
	dwSize               windows.Coord
	dwCursorPosition     windows.Coord
	wAttributes          uint16
	srWindow             windows.SmallRect
	dwMaximumWindowSize  windows.Coord
	wPopupAttributes     uint16
	bFullscreenSupported int32
	colorTable           [16]uint32
}

// WriteConsole renders img through the console's own 16-color
// attribute table instead of ANSI escapes. It prints a block of
// half-block glyphs, then recolors each cell in place with
// FillConsoleOutputAttribute, matching pixels against the palette the
// console reports for its attribute colors.
func (r *Renderer) WriteConsole(w io.Writer, img *imageutil.RGBAImage) error {
	handle, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return fmt.Errorf("failed to get console handle: %w", err)
	}

	var info consoleScreenBufferInfoEx
	info.cbSize = uint32(unsafe.Sizeof(info))
	ret, _, callErr := procGetConsoleScreenBufferInfoEx.Call(
		uintptr(handle), uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return fmt.Errorf("failed to query console info: %w", callErr)
	}

	// COLORREF is laid out 0x00BBGGRR.
	palette := make(Palette, len(info.colorTable))
	for i, ref := range info.colorTable {
		palette[i] = RGB{
			R: uint8(ref),
			G: uint8(ref >> 8),
			B: uint8(ref >> 16),
		}
	}

	table, err := r.BuildColorTable(img, palette, palette)
	if err != nil {
		return err
	}
	rows := len(table)
	if rows == 0 {
		return nil
	}
	cols := len(table[0])

	// Print the glyphs first so the attribute writes below have
	// buffer cells to recolor.
	line := strings.Repeat(string(HalfBlock), cols) + "\n"
	for i := 0; i < rows; i++ {
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write console glyphs: %w", err)
		}
	}

	var after windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &after); err != nil {
		return fmt.Errorf("failed to locate console cursor: %w", err)
	}

	for y, row := range table {
		cellY := after.CursorPosition.Y - int16(rows-y)
		for x, cell := range row {
			attr := info.wAttributes&0xFF00 |
				uint16(cell.Lower)<<4 | uint16(cell.Upper)
			coord := uint32(uint16(int16(x))) | uint32(uint16(cellY))<<16
			var written uint32
			ret, _, callErr := procFillConsoleOutputAttribute.Call(
				uintptr(handle),
				uintptr(attr),
				1,
				uintptr(coord),
				uintptr(unsafe.Pointer(&written)))
			if ret == 0 {
				return fmt.Errorf("failed to set console attributes: %w", callErr)
			}
		}
	}

	return nil
}
