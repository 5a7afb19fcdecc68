package excel

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// Config holds the formatting defaults applied while binding data.
type Config struct {
	// NumberFormat is used by number placeholders without an explicit format.
	NumberFormat string
	// DateFormat is used by date placeholders without an explicit format.
	DateFormat string
	// DateLayouts are tried in order to parse string values bound to date
	// placeholders.
	DateLayouts []string
	// LinkRef is the hyperlink target of links without a ref.
	LinkRef string
	// LinkColor is the RGB font color of link cells.
	LinkColor string
	// LinkUnderline is the underline type of link cells (single or double).
	LinkUnderline string
	// QRCodeSize is the edge length in pixels of generated QR codes.
	QRCodeSize int
	// QRCodeLevel is the QR error correction level: low, medium, high or highest.
	QRCodeLevel string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NumberFormat:  "General",
		DateFormat:    "dd-mm-yyyy",
		DateLayouts:   []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"},
		LinkRef:       "#",
		LinkColor:     "0563C1",
		LinkUnderline: "single",
		QRCodeSize:    256,
		QRCodeLevel:   "medium",
	}
}

// ConfigFromEnvironment returns DefaultConfig overridden by the
// XLSX_TEMPLATE_* environment variables that are set.
func ConfigFromEnvironment() Config {
	cfg := DefaultConfig()

	if val := os.Getenv("XLSX_TEMPLATE_NUMBER_FORMAT"); val != "" {
		cfg.NumberFormat = val
	}
	if val := os.Getenv("XLSX_TEMPLATE_DATE_FORMAT"); val != "" {
		cfg.DateFormat = val
	}
	// Layouts are separated by "|" since they may contain commas and spaces.
	if val := os.Getenv("XLSX_TEMPLATE_DATE_LAYOUTS"); val != "" {
		cfg.DateLayouts = strings.Split(val, "|")
	}
	if val := os.Getenv("XLSX_TEMPLATE_LINK_REF"); val != "" {
		cfg.LinkRef = val
	}
	if val := os.Getenv("XLSX_TEMPLATE_LINK_COLOR"); val != "" {
		cfg.LinkColor = strings.TrimPrefix(val, "#")
	}
	if val := os.Getenv("XLSX_TEMPLATE_LINK_UNDERLINE"); val != "" {
		cfg.LinkUnderline = strings.ToLower(val)
	}
	if val := os.Getenv("XLSX_TEMPLATE_QRCODE_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			cfg.QRCodeSize = size
		}
	}
	if val := os.Getenv("XLSX_TEMPLATE_QRCODE_LEVEL"); val != "" {
		cfg.QRCodeLevel = strings.ToLower(val)
	}

	return cfg
}

var (
	rgbColor = regexp.MustCompile(`^(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

	qrLevels = map[string]qrcode.RecoveryLevel{
		"low":     qrcode.Low,
		"medium":  qrcode.Medium,
		"high":    qrcode.High,
		"highest": qrcode.Highest,
	}
)

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.NumberFormat == "" {
		return errors.New("number format cannot be empty")
	}
	if c.DateFormat == "" {
		return errors.New("date format cannot be empty")
	}
	if c.LinkRef == "" {
		return errors.New("link ref cannot be empty")
	}
	if !rgbColor.MatchString(c.LinkColor) {
		return errors.New("invalid link color: " + c.LinkColor)
	}
	switch c.LinkUnderline {
	case "single", "double", "":
	default:
		return errors.New("invalid link underline: " + c.LinkUnderline)
	}
	if c.QRCodeSize <= 0 {
		return errors.New("qrcode size must be positive")
	}
	if _, ok := qrLevels[c.QRCodeLevel]; !ok {
		return errors.New("invalid qrcode level: " + c.QRCodeLevel)
	}
	return nil
}

func (c Config) qrLevel() qrcode.RecoveryLevel {
	if level, ok := qrLevels[c.QRCodeLevel]; ok {
		return level
	}
	return qrcode.Medium
}

// Option configures a Template.
type Option func(*Template)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(t *Template) {
		t.cfg = cfg
	}
}

// WithLogger sets the logger receiving binding diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Template) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithNumberFormat sets the default format of number placeholders.
func WithNumberFormat(format string) Option {
	return func(t *Template) {
		t.cfg.NumberFormat = format
	}
}

// WithDateFormat sets the default format of date placeholders.
func WithDateFormat(format string) Option {
	return func(t *Template) {
		t.cfg.DateFormat = format
	}
}

// WithLinkStyle sets the font color and underline of link cells.
func WithLinkStyle(color, underline string) Option {
	return func(t *Template) {
		t.cfg.LinkColor = strings.TrimPrefix(color, "#")
		t.cfg.LinkUnderline = underline
	}
}

// WithDefaultLinkRef sets the target of links bound without a ref.
func WithDefaultLinkRef(ref string) Option {
	return func(t *Template) {
		t.cfg.LinkRef = ref
	}
}

// WithQRCode sets the size and recovery level of generated QR codes.
func WithQRCode(size int, level string) Option {
	return func(t *Template) {
		t.cfg.QRCodeSize = size
		t.cfg.QRCodeLevel = strings.ToLower(level)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
