// Package browser fills the destination web form with go-rod. Forms are
// never submitted.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"docfill/internal/config"
	"docfill/internal/domain"
)

var errNoElement = errors.New("no matching element")

// FormFiller implements port.FormFiller on a lazily started Chrome.
type FormFiller struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewFormFiller creates a FormFiller. Chrome is started on first use.
func NewFormFiller(cfg config.BrowserConfig) *FormFiller {
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = 60
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	return &FormFiller{cfg: cfg}
}

// Fill opens formURL in a new tab and injects every field. A field that
// cannot be found or set is recorded and the rest continue.
func (f *FormFiller) Fill(ctx context.Context, formURL string, fields domain.FormFieldMap) (*domain.FillReport, error) {
	if formURL == "" {
		return nil, domain.ErrFormFillerDisabled
	}

	b, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(f.cfg.TimeoutSecs)*time.Second)
	defer cancel()

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(formURL); err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", formURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		log.Printf("browser.FormFiller.Fill: wait load %s: %v", formURL, err)
	}

	report := &domain.FillReport{Fields: make([]domain.FieldFill, 0, len(fields))}
	for _, id := range fields.Keys() {
		fill := fillField(page, id, fields[id])
		if fill.Filled {
			report.FilledCount++
		} else {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", id, fill.Error))
		}
		report.Fields = append(report.Fields, fill)
	}
	report.Success = report.FilledCount > 0

	shot, err := f.screenshot(page)
	if err != nil {
		log.Printf("browser.FormFiller.Fill: screenshot: %v", err)
	} else {
		report.Screenshot = shot
	}

	log.Printf("browser.FormFiller.Fill: %s filled %d/%d fields", formURL, report.FilledCount, len(fields))
	return report, nil
}

// Close shuts the browser down.
func (f *FormFiller) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.lnch != nil {
		f.lnch.Cleanup()
		f.lnch = nil
	}
	return err
}

func (f *FormFiller) connect(ctx context.Context) (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	wsURL := f.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(f.cfg.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		f.lnch = l
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	log.Printf("browser.FormFiller.connect: connected (remote=%t)", f.cfg.RemoteURL != "")
	f.browser = b
	return b, nil
}

func (f *FormFiller) screenshot(page *rod.Page) (string, error) {
	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(f.cfg.ScreenshotDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(f.cfg.ScreenshotDir, fmt.Sprintf("fill-%s.png", time.Now().UTC().Format("20060102T150405.000")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func fillField(page *rod.Page, id, value string) domain.FieldFill {
	fill := domain.FieldFill{Field: id, Value: value, Kind: domain.FillKindInput}

	el, selector, err := find(page, id)
	if err != nil {
		// Radio groups have no element carrying the bare id.
		if radioErr := clickRadio(page, id, value); radioErr == nil {
			fill.Kind = domain.FillKindRadio
			fill.Filled = true
			return fill
		}
		fill.Error = err.Error()
		return fill
	}
	fill.Selector = selector

	tag, err := el.Property("tagName")
	if err != nil {
		fill.Error = err.Error()
		return fill
	}

	switch {
	case strings.EqualFold(tag.Str(), "select"):
		fill.Kind = domain.FillKindSelect
		err = selectOption(el, value)
	case isRadio(el):
		fill.Kind = domain.FillKindRadio
		err = clickRadio(page, id, value)
	default:
		err = typeInto(el, value)
	}
	if err != nil {
		fill.Error = err.Error()
		return fill
	}
	fill.Filled = true
	return fill
}

// find walks the selector cascade and returns the first match.
func find(page *rod.Page, id string) (*rod.Element, string, error) {
	for _, sel := range Selectors(id) {
		has, el, err := page.Has(sel)
		if err != nil {
			continue
		}
		if has {
			return el, sel, nil
		}
	}
	return nil, "", errNoElement
}

func isRadio(el *rod.Element) bool {
	t, err := el.Attribute("type")
	return err == nil && t != nil && strings.EqualFold(*t, "radio")
}

func typeInto(el *rod.Element, value string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

const selectScript = `function (value, label) {
	for (const opt of this.options) {
		if (opt.value === value || opt.value.toLowerCase() === value.toLowerCase()) {
			this.value = opt.value;
			this.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		}
	}
	for (const opt of this.options) {
		if (opt.text.trim().toLowerCase() === label.toLowerCase()) {
			this.value = opt.value;
			this.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		}
	}
	return false;
}`

// selectOption picks an option by value, then by visible label.
func selectOption(el *rod.Element, value string) error {
	res, err := el.Eval(selectScript, value, OptionLabel(value))
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return fmt.Errorf("no option matching %q", value)
	}
	return nil
}

func clickRadio(page *rod.Page, id, value string) error {
	els, err := page.Elements(fmt.Sprintf("input[type='radio'][name*='%s'], input[type='radio'][id*='%s']", id, id))
	if err != nil {
		return err
	}
	for _, el := range els {
		v, err := el.Attribute("value")
		if err != nil || v == nil {
			continue
		}
		if RadioMatches(value, *v) {
			return el.Click(proto.InputMouseButtonLeft, 1)
		}
	}
	return fmt.Errorf("no radio option matching %q", value)
}
