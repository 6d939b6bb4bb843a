// Package banner prints the title shown before human output.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thirukguru/sg-audit/shared/ansi"
	"github.com/thirukguru/sg-audit/shared/console"
	"golang.org/x/term"
)

// ColorEnv overrides the title color. It accepts a color name or a raw escape sequence.
const ColorEnv = "SG_AUDIT_BANNER_COLOR"

const reset = "\x1b[0m"

type titleColor struct {
	name string
	code string
}

var titleColors = []titleColor{
	{"AmazonOrange", "\x1b[38;2;255;153;0m"},
	{"AlertRed", "\x1b[38;2;229;9;20m"},
	{"SignalYellow", "\x1b[38;2;255;204;0m"},
	{"SafeGreen", "\x1b[38;2;30;215;96m"},
	{"SkyBlue", "\x1b[38;2;0;175;240m"},
	{"TwilightPurple", "\x1b[38;2;145;70;255m"},
}

const (
	defaultColor        = 0
	blueBackgroundColor = 2
)

var titleLines = []string{
	" ███████╗  ██████╗         █████╗  ██╗   ██╗ ██████╗  ██╗ ████████╗",
	" ██╔════╝ ██╔════╝        ██╔══██╗ ██║   ██║ ██╔══██╗ ██║ ╚══██╔══╝",
	" ███████╗ ██║  ███╗ █████╗███████║ ██║   ██║ ██║  ██║ ██║    ██║   ",
	" ╚════██║ ██║   ██║ ╚════╝██╔══██║ ██║   ██║ ██║  ██║ ██║    ██║   ",
	" ███████║ ╚██████╔╝       ██║  ██║ ╚██████╔╝ ██████╔╝ ██║    ██║   ",
	" ╚══════╝  ╚═════╝        ╚═╝  ╚═╝  ╚═════╝  ╚═════╝  ╚═╝    ╚═╝   ",
}

// DrawBannerTitle prints the title to stdout, centered on the terminal.
func DrawBannerTitle() {
	ansi.EnableANSI()

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	Draw(os.Stdout, width, colorCode())
}

// Draw writes the title centered within width using the given color escape.
func Draw(w io.Writer, width int, color string) {
	fmt.Fprint(w, color)
	for _, line := range titleLines {
		// Box-drawing runes are multi-byte; center on rune count.
		lineWidth := len([]rune(line))
		if width > lineWidth {
			fmt.Fprint(w, strings.Repeat(" ", (width-lineWidth)/2))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprint(w, reset)
}

func colorCode() string {
	if code, ok := colorFromEnv(os.Getenv(ColorEnv)); ok {
		return code
	}
	if console.IsBlueBackground() {
		return titleColors[blueBackgroundColor].code
	}
	return titleColors[defaultColor].code
}

func colorFromEnv(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, c := range titleColors {
		if strings.EqualFold(raw, c.name) || raw == c.code {
			return c.code, true
		}
	}
	return "", false
}
