// Command taulayout wraps text and prints the frame a widget would render,
// as JSON. It measures with the Go Regular font unless -font is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/phanxgames/tau"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/image/font/gofont/goregular"
)

type params struct {
	configPath string
	kind       string
	text       string
	width      float64
	fontPath   string
	progress   float64
	view       float64
	seconds    float64
	scriptPath string
}

func main() {
	var p params
	flag.StringVar(&p.configPath, "config", "", "widget config JSON path")
	flag.StringVar(&p.kind, "kind", "", "widget kind when no config is given (animatorAppear, animatorScroll, highlighterAppear, highlighterScroll)")
	flag.StringVar(&p.text, "text", "", "text override")
	flag.Float64Var(&p.width, "width", 0, "container width override in px")
	flag.StringVar(&p.fontPath, "font", "", "TTF/OTF font used for measuring (default Go Regular)")
	flag.Float64Var(&p.progress, "progress", 0, "scroll progress in [0, 1] for scroll widgets")
	flag.Float64Var(&p.view, "view", 1, "visible fraction fed to appear widgets")
	flag.Float64Var(&p.seconds, "t", 0, "seconds to advance appear widgets after the view is observed")
	flag.StringVar(&p.scriptPath, "script", "", "test script JSON; prints its snapshots instead of a single frame")
	out := flag.String("out", "", "output path (default stdout)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := run(p, w, logger); err != nil {
		log.Fatalf("taulayout: %v", err)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// run builds the widget, drives it and writes JSON to w.
func run(p params, w io.Writer, logger *zap.Logger) error {
	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}

	fontData := goregular.TTF
	if p.fontPath != "" {
		if fontData, err = os.ReadFile(p.fontPath); err != nil {
			return fmt.Errorf("read font: %w", err)
		}
	}
	font, err := tau.LoadShapedFont(fontData)
	if err != nil {
		return err
	}

	progress := tau.NewProgressValue(0)
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Measurer = font
	opts.Source = progress
	opts.NoSmoothing = true
	opts.Logger = logger
	widget := tau.NewWidget(cfg.WidgetKind(), opts)
	defer widget.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if p.scriptPath != "" {
		data, err := os.ReadFile(p.scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := tau.LoadTestScript(data)
		if err != nil {
			return err
		}
		return enc.Encode(runner.Run(widget, progress, 1<<16))
	}

	progress.Publish(p.progress)
	if o, ok := widget.(tau.Observer); ok {
		o.Observe(p.view)
		const dt = 1.0 / 60
		for t := 0.0; t < p.seconds; t += dt {
			widget.Update(dt)
		}
	}
	return enc.Encode(widget.Frame())
}

func loadConfig(p params) (tau.Config, error) {
	var cfg tau.Config
	switch {
	case p.configPath != "":
		c, err := tau.LoadConfig(p.configPath)
		if err != nil {
			return tau.Config{}, err
		}
		cfg = c
	case p.kind != "":
		k, ok := tau.ParseWidgetKind(p.kind)
		if !ok {
			return tau.Config{}, fmt.Errorf("unknown kind %q", p.kind)
		}
		cfg = tau.DefaultConfig(k)
	default:
		cfg = tau.DefaultConfig(tau.KindAnimatorAppear)
	}
	if p.text != "" {
		cfg.Text = p.text
	}
	if p.width > 0 {
		cfg.Width = p.width
	}
	return cfg, nil
}
